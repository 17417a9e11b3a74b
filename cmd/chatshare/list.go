package main

import (
	"fmt"

	"github.com/fwojciec/chatshare"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := chatshare.ConversationFilter{Limit: c.Limit}
	if c.ShareID != "" {
		filter.ShareID = &c.ShareID
	}

	conversations, err := deps.Conversations.FindConversations(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", chatshare.ErrorMessage(err))
		return err
	}

	if len(conversations) == 0 {
		fmt.Fprintln(deps.Stdout, "No conversations archived. Use 'chatshare fetch --archive' to add one.")
		return nil
	}

	for _, conv := range conversations {
		title := conv.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", conv.ID, conv.FetchedAt.Format("2006-01-02 15:04"), conv.ShareID, title)
	}

	return nil
}
