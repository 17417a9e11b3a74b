//go:build integration && !windows

package rod_test

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/fwojciec/chatshare/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func processAlive(pid int) bool {
	return syscall.Kill(pid, syscall.Signal(0)) == nil
}

func TestFetcher_Close_TerminatesBrowserAfterFetch(t *testing.T) {
	t.Parallel()

	srv := serve(t, `<html><body><div data-message-author-role="user">hi</div></body></html>`)

	fetcher, err := rod.NewFetcher(rod.WithHydrationDelay(0))
	require.NoError(t, err)

	_, err = fetcher.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	pid := fetcher.LauncherPID()
	require.NotZero(t, pid)
	require.True(t, processAlive(pid), "browser should be running while the fetcher is open")

	require.NoError(t, fetcher.Close())

	assert.Eventually(t, func() bool { return !processAlive(pid) },
		2*time.Second, 50*time.Millisecond, "browser should exit after Close")
}
