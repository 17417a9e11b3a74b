package main

import (
	"fmt"

	"github.com/fwojciec/chatshare"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	enc, err := encoderFor(c.Format)
	if err != nil {
		return err
	}

	conv, err := deps.Conversations.FindConversationByID(deps.Ctx, c.ID)
	if chatshare.ErrorCode(err) == chatshare.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: conversation %q not found. Use 'chatshare list' to see archived conversations.\n", c.ID)
		return err
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", chatshare.ErrorMessage(err))
		return err
	}

	return enc.Encode(deps.Stdout, conv)
}
