package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/chatshare"
	"github.com/fwojciec/chatshare/xxhash"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ chatshare.ConversationService = (*ConversationService)(nil)

// ConversationService implements chatshare.ConversationService using SQLite.
type ConversationService struct {
	db *DB
}

// NewConversationService creates a new ConversationService.
func NewConversationService(db *DB) *ConversationService {
	return &ConversationService{db: db}
}

// CreateConversation stores a conversation and its turns in one transaction.
// A conversation whose share ID and content hash are already archived is
// rejected with ECONFLICT.
func (s *ConversationService) CreateConversation(ctx context.Context, c *chatshare.Conversation) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if c.ShareID == "" {
		c.ShareID = chatshare.ShareID(c.SourceURL)
	}
	if c.ContentHash == "" {
		c.ContentHash = xxhash.ContentHash(c.Turns)
	}
	if c.FetchedAt.IsZero() {
		c.FetchedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var existing string
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM conversations WHERE share_id = ? AND content_hash = ?
	`, c.ShareID, c.ContentHash).Scan(&existing)
	switch {
	case err == nil:
		return chatshare.Errorf(chatshare.ECONFLICT, "conversation already archived as %s", existing)
	case err != sql.ErrNoRows:
		return err
	}

	id := uuid.New().String()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO conversations (id, share_id, source_url, title, strategy, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, c.ShareID, c.SourceURL, c.Title, c.Strategy, c.ContentHash, c.FetchedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	for _, t := range c.Turns {
		if err := insertTurn(ctx, tx, id, t); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	c.ID = id
	return nil
}

func insertTurn(ctx context.Context, tx *sql.Tx, conversationID string, t chatshare.Turn) error {
	codeBlocks, err := encodeList(t.CodeBlocks)
	if err != nil {
		return err
	}
	links, err := encodeList(t.Links)
	if err != nil {
		return err
	}
	images, err := encodeList(t.Images)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO turns (conversation_id, number, role, text, markdown, code_blocks, links, images, raw_html)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, conversationID, t.Number, string(t.Role), t.Text, t.Markdown, codeBlocks, links, images, t.RawHTML)
	if err != nil {
		return fmt.Errorf("failed to insert turn %d: %w", t.Number, err)
	}
	return nil
}

// FindConversationByID retrieves a conversation and its turns.
func (s *ConversationService) FindConversationByID(ctx context.Context, id string) (*chatshare.Conversation, error) {
	var c chatshare.Conversation
	var fetchedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, share_id, source_url, title, strategy, content_hash, fetched_at
		FROM conversations
		WHERE id = ?
	`, id).Scan(&c.ID, &c.ShareID, &c.SourceURL, &c.Title, &c.Strategy, &c.ContentHash, &fetchedAt)

	if err == sql.ErrNoRows {
		return nil, chatshare.Errorf(chatshare.ENOTFOUND, "conversation not found")
	}
	if err != nil {
		return nil, err
	}

	if c.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}

	if c.Turns, err = s.findTurns(ctx, c.ID); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *ConversationService) findTurns(ctx context.Context, conversationID string) ([]chatshare.Turn, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT number, role, text, markdown, code_blocks, links, images, raw_html
		FROM turns
		WHERE conversation_id = ?
		ORDER BY number ASC
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turns []chatshare.Turn
	for rows.Next() {
		var t chatshare.Turn
		var role, codeBlocks, links, images string

		if err := rows.Scan(&t.Number, &role, &t.Text, &t.Markdown, &codeBlocks, &links, &images, &t.RawHTML); err != nil {
			return nil, err
		}
		t.Role = chatshare.Role(role)

		if t.CodeBlocks, err = decodeList(codeBlocks, "code_blocks"); err != nil {
			return nil, err
		}
		if t.Links, err = decodeList(links, "links"); err != nil {
			return nil, err
		}
		if t.Images, err = decodeList(images, "images"); err != nil {
			return nil, err
		}

		turns = append(turns, t)
	}

	return turns, rows.Err()
}

// FindConversations retrieves conversations matching the filter, newest
// first. Turns are not loaded.
func (s *ConversationService) FindConversations(ctx context.Context, filter chatshare.ConversationFilter) ([]*chatshare.Conversation, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, share_id, source_url, title, strategy, content_hash, fetched_at FROM conversations WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.ShareID != nil {
		query.WriteString(" AND share_id = ?")
		args = append(args, *filter.ShareID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY fetched_at DESC, id ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversations []*chatshare.Conversation
	for rows.Next() {
		var c chatshare.Conversation
		var fetchedAt string

		if err := rows.Scan(&c.ID, &c.ShareID, &c.SourceURL, &c.Title, &c.Strategy, &c.ContentHash, &fetchedAt); err != nil {
			return nil, err
		}

		if c.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
			return nil, err
		}

		conversations = append(conversations, &c)
	}

	return conversations, rows.Err()
}

// DeleteConversation permanently removes a conversation. Its turns are
// removed by the foreign key cascade.
func (s *ConversationService) DeleteConversation(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM conversations WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return chatshare.Errorf(chatshare.ENOTFOUND, "conversation not found")
	}

	return nil
}

func encodeList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeList(value, fieldName string) ([]string, error) {
	var values []string
	if err := json.Unmarshal([]byte(value), &values); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values, nil
}
