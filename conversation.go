package chatshare

import (
	"context"
	"time"
	"unicode/utf8"
)

// Conversation is the set of turns recovered from one share page.
type Conversation struct {
	ID          string    `json:"id"`
	ShareID     string    `json:"shareId"`
	SourceURL   string    `json:"sourceUrl"`
	Title       string    `json:"title"`
	Strategy    string    `json:"strategy"`
	ContentHash string    `json:"contentHash"`
	Turns       []Turn    `json:"turns"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the conversation contains invalid fields.
func (c *Conversation) Validate() error {
	if c.SourceURL == "" {
		return Errorf(EINVALID, "conversation source URL required")
	}
	if len(c.Turns) == 0 {
		return Errorf(EINVALID, "conversation requires at least one turn")
	}
	for i := range c.Turns {
		if err := c.Turns[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Stats summarizes a conversation.
type Stats struct {
	Total      int
	User       int
	Assistant  int
	System     int
	Characters int
}

// Stats counts turns per role and the total number of text characters.
func (c *Conversation) Stats() Stats {
	s := Stats{Total: len(c.Turns)}
	for _, t := range c.Turns {
		switch t.Role {
		case RoleUser:
			s.User++
		case RoleAssistant:
			s.Assistant++
		case RoleSystem:
			s.System++
		}
		s.Characters += utf8.RuneCountInString(t.Text)
	}
	return s
}

// ConversationService represents a service for archiving conversations.
type ConversationService interface {
	// CreateConversation stores a conversation and its turns.
	CreateConversation(ctx context.Context, c *Conversation) error

	// FindConversationByID retrieves a conversation, including its turns.
	// Returns ENOTFOUND if the conversation does not exist.
	FindConversationByID(ctx context.Context, id string) (*Conversation, error)

	// FindConversations retrieves conversations matching the filter.
	// Turns are not loaded.
	FindConversations(ctx context.Context, filter ConversationFilter) ([]*Conversation, error)

	// DeleteConversation permanently removes a conversation and its turns.
	// Returns ENOTFOUND if the conversation does not exist.
	DeleteConversation(ctx context.Context, id string) error
}

// ConversationFilter represents a filter for FindConversations.
type ConversationFilter struct {
	ID        *string `json:"id"`
	ShareID   *string `json:"shareId"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
