package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/chatshare"
)

// Ensure LoggingConversationService implements chatshare.ConversationService.
var _ chatshare.ConversationService = (*LoggingConversationService)(nil)

// LoggingConversationService wraps a ConversationService with debug logging
// of writes.
type LoggingConversationService struct {
	next   chatshare.ConversationService
	logger *slog.Logger
}

// NewLoggingConversationService creates a new LoggingConversationService.
func NewLoggingConversationService(next chatshare.ConversationService, logger *slog.Logger) *LoggingConversationService {
	return &LoggingConversationService{next: next, logger: logger}
}

// CreateConversation delegates to the wrapped service and logs the stored
// conversation.
func (s *LoggingConversationService) CreateConversation(ctx context.Context, c *chatshare.Conversation) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("archive conversation",
			"id", c.ID,
			"share_id", c.ShareID,
			"turns", len(c.Turns),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateConversation(ctx, c)
}

// FindConversationByID delegates to the wrapped service.
func (s *LoggingConversationService) FindConversationByID(ctx context.Context, id string) (*chatshare.Conversation, error) {
	return s.next.FindConversationByID(ctx, id)
}

// FindConversations delegates to the wrapped service.
func (s *LoggingConversationService) FindConversations(ctx context.Context, filter chatshare.ConversationFilter) ([]*chatshare.Conversation, error) {
	return s.next.FindConversations(ctx, filter)
}

// DeleteConversation delegates to the wrapped service and logs the removal.
func (s *LoggingConversationService) DeleteConversation(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("delete conversation",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteConversation(ctx, id)
}
