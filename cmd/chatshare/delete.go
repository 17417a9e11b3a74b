package main

import (
	"fmt"

	"github.com/fwojciec/chatshare"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return chatshare.Errorf(chatshare.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Conversations.DeleteConversation(deps.Ctx, c.ID); err != nil {
		if chatshare.ErrorCode(err) == chatshare.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: conversation %q not found. Use 'chatshare list' to see archived conversations.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", chatshare.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted conversation %s\n", c.ID)
	return nil
}
