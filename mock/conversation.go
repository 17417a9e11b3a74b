package mock

import (
	"context"

	"github.com/fwojciec/chatshare"
)

var _ chatshare.ConversationService = (*ConversationService)(nil)

// ConversationService is a mock implementation of chatshare.ConversationService.
type ConversationService struct {
	CreateConversationFn   func(ctx context.Context, c *chatshare.Conversation) error
	FindConversationByIDFn func(ctx context.Context, id string) (*chatshare.Conversation, error)
	FindConversationsFn    func(ctx context.Context, filter chatshare.ConversationFilter) ([]*chatshare.Conversation, error)
	DeleteConversationFn   func(ctx context.Context, id string) error
}

func (s *ConversationService) CreateConversation(ctx context.Context, c *chatshare.Conversation) error {
	return s.CreateConversationFn(ctx, c)
}

func (s *ConversationService) FindConversationByID(ctx context.Context, id string) (*chatshare.Conversation, error) {
	return s.FindConversationByIDFn(ctx, id)
}

func (s *ConversationService) FindConversations(ctx context.Context, filter chatshare.ConversationFilter) ([]*chatshare.Conversation, error) {
	return s.FindConversationsFn(ctx, filter)
}

func (s *ConversationService) DeleteConversation(ctx context.Context, id string) error {
	return s.DeleteConversationFn(ctx, id)
}
