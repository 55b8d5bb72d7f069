package queries

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/edumetric/edumetric/pkg/models"
)

type ChatLogRepository struct {
	db *sql.DB
}

func NewChatLogRepository(db *sql.DB) *ChatLogRepository {
	return &ChatLogRepository{db: db}
}

func (r *ChatLogRepository) Insert(ctx context.Context, entry *models.ChatLogEntry) error {
	query := `
		INSERT INTO chat_log (username, query, action, response)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		entry.Username, entry.Query, entry.Action, entry.Response,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert chat log entry: %w", err)
	}

	return nil
}

// Recent returns the latest exchanges, newest first.
func (r *ChatLogRepository) Recent(ctx context.Context, limit int) ([]models.ChatLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, username, query, action, COALESCE(response, ''), created_at
		FROM chat_log
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat log: %w", err)
	}
	defer rows.Close()

	var entries []models.ChatLogEntry
	for rows.Next() {
		var e models.ChatLogEntry
		if err := rows.Scan(&e.ID, &e.Username, &e.Query, &e.Action, &e.Response, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
