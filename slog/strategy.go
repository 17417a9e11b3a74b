package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/chatshare"
)

// Ensure LoggingStrategy implements chatshare.Strategy.
var _ chatshare.Strategy = (*LoggingStrategy)(nil)

// LoggingStrategy wraps a Strategy with debug logging.
type LoggingStrategy struct {
	next   chatshare.Strategy
	logger *slog.Logger
}

// NewLoggingStrategy creates a new LoggingStrategy.
func NewLoggingStrategy(next chatshare.Strategy, logger *slog.Logger) *LoggingStrategy {
	return &LoggingStrategy{next: next, logger: logger}
}

// Parse delegates to the wrapped strategy and logs how many turns it found.
func (s *LoggingStrategy) Parse(markup string) (turns []chatshare.Turn, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("parse",
			"strategy", s.next.Name(),
			"turns", len(turns),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Parse(markup)
}

// Name delegates to the wrapped strategy.
func (s *LoggingStrategy) Name() string {
	return s.next.Name()
}
