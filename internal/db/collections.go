package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sakura-comic/backend/internal/db/models"
)

// CreateCollection records that userID collected videoID. The UNIQUE(user_id, video_id)
// constraint makes a duplicate insert fail with ErrConflict, including under races.
func (d *Database) CreateCollection(ctx context.Context, userID, videoID int64) (err error) {
	start := time.Now()
	defer func() { observe("create_collection", start, err) }()

	return d.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO collections (user_id, video_id, collected_at) VALUES (?, ?, ?)",
			userID, videoID, d.now(),
		)
		if isUniqueViolation(err) {
			return ErrConflict
		}
		if err != nil {
			return fmt.Errorf("insert collection: %w", err)
		}
		return nil
	})
}

// DeleteCollection returns ErrNotFound when the pair was not collected.
func (d *Database) DeleteCollection(ctx context.Context, userID, videoID int64) (err error) {
	start := time.Now()
	defer func() { observe("delete_collection", start, err) }()

	return d.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"DELETE FROM collections WHERE user_id = ? AND video_id = ?", userID, videoID)
		if err != nil {
			return fmt.Errorf("delete collection: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (d *Database) CollectionExists(ctx context.Context, userID, videoID int64) (ok bool, err error) {
	start := time.Now()
	defer func() { observe("collection_exists", start, err) }()

	err = d.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM collections WHERE user_id = ? AND video_id = ?)", userID, videoID,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("collection exists: %w", err)
	}
	return ok, nil
}

// ListCollections returns one page of a user's collection rows in insertion order
// and the user's total row count.
func (d *Database) ListCollections(ctx context.Context, userID int64, offset, limit int) (out []models.Collection, total int, err error) {
	start := time.Now()
	defer func() { observe("list_collections", start, err) }()

	if err = d.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM collections WHERE user_id = ?", userID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count collections: %w", err)
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT id, user_id, video_id, collected_at FROM collections
		WHERE user_id = ? ORDER BY id ASC LIMIT ? OFFSET ?`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	out = []models.Collection{}
	for rows.Next() {
		var c models.Collection
		if err := rows.Scan(&c.ID, &c.UserID, &c.VideoID, &c.CollectedAt); err != nil {
			return nil, 0, fmt.Errorf("scan collection: %w", err)
		}
		out = append(out, c)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
