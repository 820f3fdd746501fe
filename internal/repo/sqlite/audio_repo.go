package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// AudioRepo is the append-only catalog of saved voice messages. The table
// is created lazily on first write; before that, Exists reports false and
// retrieval treats the catalog as empty.
//
// user_id holds the sender display name, not a numeric id. The schema is
// kept byte-compatible with existing databases, column name included.
type AudioRepo struct {
	db *sql.DB
}

func NewAudioRepo(db *sql.DB) *AudioRepo {
	return &AudioRepo{db: db}
}

func (r *AudioRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS audio_messages
		(user_id TEXT, audio_path TEXT)
	`)
	if err != nil {
		return fmt.Errorf("ensure audio_messages schema: %w", err)
	}
	return nil
}

func (r *AudioRepo) Append(ctx context.Context, sender, path string) error {
	if err := r.EnsureSchema(ctx); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audio_messages (user_id, audio_path) VALUES (?, ?)
	`, sender, path)
	if err != nil {
		return fmt.Errorf("append audio message: %w", err)
	}
	return nil
}

func (r *AudioRepo) Exists(ctx context.Context) (bool, error) {
	var name string
	err := r.db.QueryRowContext(ctx, `
		SELECT name FROM sqlite_master WHERE type='table' AND name='audio_messages'
	`).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("probe audio_messages table: %w", err)
	}
	return true, nil
}

// AllPaths returns every stored original-audio path in insertion order.
func (r *AudioRepo) AllPaths(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT audio_path FROM audio_messages ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("list audio messages: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("scan audio message row: %w", err)
		}
		paths = append(paths, path)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audio message rows: %w", err)
	}

	return paths, nil
}
