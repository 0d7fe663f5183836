package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sakura-comic/backend/internal/db/models"
)

// CreateComment inserts c and sets its ID and CreatedAt. The video id is stored as given.
func (d *Database) CreateComment(ctx context.Context, c *models.Comment) (err error) {
	start := time.Now()
	defer func() { observe("create_comment", start, err) }()

	if c.CreatedAt.IsZero() {
		c.CreatedAt = d.now()
	}
	return d.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO comments (user_id, video_id, content, parent_id, created_at) VALUES (?, ?, ?, ?, ?)",
			c.UserID, c.VideoID, c.Content, c.ParentID, c.CreatedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("insert comment: %w", err)
		}
		c.ID, err = res.LastInsertId()
		return err
	})
}

func (d *Database) GetCommentByID(ctx context.Context, id int64) (c *models.Comment, err error) {
	start := time.Now()
	defer func() { observe("get_comment", start, err) }()

	c = &models.Comment{}
	var parent sql.NullInt64
	err = d.db.QueryRowContext(ctx,
		"SELECT id, user_id, video_id, content, parent_id, created_at FROM comments WHERE id = ?", id,
	).Scan(&c.ID, &c.UserID, &c.VideoID, &c.Content, &parent, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select comment: %w", err)
	}
	if parent.Valid {
		c.ParentID = &parent.Int64
	}
	return c, nil
}

const commentWithAuthor = `
	SELECT c.id, c.user_id, c.video_id, c.content, c.parent_id, c.created_at, COALESCE(u.username, '')
	FROM comments c
	LEFT JOIN users u ON u.id = c.user_id`

// ListRootComments returns the comments of a video that have no parent, newest first,
// with the author's username filled in.
func (d *Database) ListRootComments(ctx context.Context, videoID int64) (out []models.Comment, err error) {
	start := time.Now()
	defer func() { observe("list_root_comments", start, err) }()

	return d.queryComments(ctx,
		commentWithAuthor+" WHERE c.video_id = ? AND c.parent_id IS NULL ORDER BY c.created_at DESC, c.id DESC",
		videoID,
	)
}

// ListReplies returns direct replies to the root comments of a video, oldest first.
// Replies whose parent is itself a reply are not included.
func (d *Database) ListReplies(ctx context.Context, videoID int64) (out []models.Comment, err error) {
	start := time.Now()
	defer func() { observe("list_replies", start, err) }()

	return d.queryComments(ctx,
		commentWithAuthor+` WHERE c.parent_id IN (
			SELECT id FROM comments WHERE video_id = ? AND parent_id IS NULL
		) ORDER BY c.created_at ASC, c.id ASC`,
		videoID,
	)
}

func (d *Database) queryComments(ctx context.Context, query string, args ...any) ([]models.Comment, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	out := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		var parent sql.NullInt64
		if err := rows.Scan(&c.ID, &c.UserID, &c.VideoID, &c.Content, &parent, &c.CreatedAt, &c.Username); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		if parent.Valid {
			p := parent.Int64
			c.ParentID = &p
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
