package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shamba-ai/backend/internal/model"
)

type sqliteConversationRepository struct {
	db *sql.DB
}

func NewSQLiteConversationRepository(db *sql.DB) ConversationRepository {
	return &sqliteConversationRepository{db: db}
}

func (r *sqliteConversationRepository) CreateConversation(ctx context.Context, conv *model.Conversation) error {
	query := "INSERT INTO conversations (id, user_id, title, metadata, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query,
		conv.ConversationID, conv.UserID, conv.Title, rawToNullString(conv.Metadata), conv.CreatedAt, conv.UpdatedAt)
	return err
}

func (r *sqliteConversationRepository) GetConversation(ctx context.Context, conversationID string) (*model.Conversation, error) {
	query := "SELECT id, user_id, title, metadata, created_at, updated_at FROM conversations WHERE id = ?"
	row := r.db.QueryRowContext(ctx, query, conversationID)

	var conv model.Conversation
	var metadata sql.NullString
	err := row.Scan(&conv.ConversationID, &conv.UserID, &conv.Title, &metadata, &conv.CreatedAt, &conv.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if metadata.Valid {
		conv.Metadata = json.RawMessage(metadata.String)
	}
	return &conv, nil
}

func (r *sqliteConversationRepository) GetMessages(ctx context.Context, conversationID string) ([]model.Message, error) {
	query := `
		SELECT id, role, content, timestamp, contexts
		FROM messages
		WHERE conversation_id = ?
		ORDER BY timestamp ASC, rowid ASC
	`
	rows, err := r.db.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var msg model.Message
		var contexts sql.NullString

		if err := rows.Scan(&msg.ID, &msg.Role, &msg.Content, &msg.Timestamp, &contexts); err != nil {
			return nil, err
		}
		if contexts.Valid {
			if err := json.Unmarshal([]byte(contexts.String), &msg.Contexts); err != nil {
				return nil, fmt.Errorf("could not decode message contexts: %w", err)
			}
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (r *sqliteConversationRepository) ListConversations(ctx context.Context, userID string, limit, offset int) ([]model.ConversationSummary, error) {
	// message_count and last_message are derived on read so the summary can
	// never drift from the message log.
	query := `
		SELECT c.id, c.user_id, c.title, c.created_at, c.updated_at,
			(SELECT COUNT(*) FROM messages m WHERE m.conversation_id = c.id),
			COALESCE((SELECT m.content FROM messages m WHERE m.conversation_id = c.id ORDER BY m.timestamp DESC, m.rowid DESC LIMIT 1), '')
		FROM conversations c
		WHERE c.user_id = ?
		ORDER BY c.updated_at DESC
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []model.ConversationSummary
	for rows.Next() {
		var s model.ConversationSummary
		if err := rows.Scan(&s.ConversationID, &s.UserID, &s.Title, &s.CreatedAt, &s.UpdatedAt, &s.MessageCount, &s.LastMessage); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *sqliteConversationRepository) UpdateConversation(ctx context.Context, conversationID string, title *string, metadata json.RawMessage) error {
	query := "UPDATE conversations SET title = COALESCE(?, title), metadata = COALESCE(?, metadata), updated_at = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, query, title, rawToNullString(metadata), time.Now().UTC(), conversationID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sqliteConversationRepository) DeleteConversation(ctx context.Context, conversationID string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM conversations WHERE id = ?", conversationID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddMessage inserts the message and bumps the conversation's updated_at in
// one transaction, so a partially appended turn can never be observed.
func (r *sqliteConversationRepository) AddMessage(ctx context.Context, conversationID string, msg *model.Message) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	var contexts sql.NullString
	if len(msg.Contexts) > 0 {
		encoded, err := json.Marshal(msg.Contexts)
		if err != nil {
			return fmt.Errorf("could not encode message contexts: %w", err)
		}
		contexts = sql.NullString{String: string(encoded), Valid: true}
	}

	// The timestamp bump doubles as the existence check: zero rows affected
	// means there is no such conversation and nothing was inserted.
	res, err := tx.ExecContext(ctx, "UPDATE conversations SET updated_at = ? WHERE id = ?", msg.Timestamp, conversationID)
	if err != nil {
		return fmt.Errorf("could not update conversation timestamp: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	insertQuery := "INSERT INTO messages (id, conversation_id, role, content, timestamp, contexts) VALUES (?, ?, ?, ?, ?, ?)"
	_, err = tx.ExecContext(ctx, insertQuery, msg.ID, conversationID, msg.Role, msg.Content, msg.Timestamp, contexts)
	if err != nil {
		return fmt.Errorf("could not insert message: %w", err)
	}

	return tx.Commit()
}

func rawToNullString(raw json.RawMessage) sql.NullString {
	if len(raw) == 0 || string(raw) == "null" {
		return sql.NullString{}
	}
	return sql.NullString{String: string(raw), Valid: true}
}
