package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sakura-comic/backend/internal/db/models"
)

const videoColumns = "id, title, cover_url, video_url, category, description, release_year, views, update_time"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVideo(row rowScanner) (*models.Video, error) {
	v := &models.Video{}
	err := row.Scan(&v.ID, &v.Title, &v.CoverURL, &v.VideoURL, &v.Category,
		&v.Description, &v.ReleaseYear, &v.Views, &v.UpdateTime)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// CreateVideo inserts a catalog entry. A zero UpdateTime is set to now.
func (d *Database) CreateVideo(ctx context.Context, v *models.Video) (id int64, err error) {
	start := time.Now()
	defer func() { observe("create_video", start, err) }()

	if v.UpdateTime.IsZero() {
		v.UpdateTime = d.now()
	}
	err = d.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO videos (title, cover_url, video_url, category, description, release_year, views, update_time)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			v.Title, v.CoverURL, v.VideoURL, v.Category, v.Description, v.ReleaseYear, v.Views, v.UpdateTime.UTC(),
		)
		if err != nil {
			return fmt.Errorf("insert video: %w", err)
		}
		id, err = res.LastInsertId()
		return err
	})
	if err == nil {
		v.ID = id
	}
	return id, err
}

// ListVideos returns one page of videos matching f, newest update first, and the
// total number of matches. Keyword matching uses instr() so it is case-sensitive
// and treats % and _ literally.
func (d *Database) ListVideos(ctx context.Context, f models.VideoFilter, offset, limit int) (videos []models.Video, total int, err error) {
	start := time.Now()
	defer func() { observe("list_videos", start, err) }()

	var conds []string
	var args []any
	if f.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, f.Category)
	}
	if f.Keyword != "" {
		conds = append(conds, "instr(title, ?) > 0")
		args = append(args, f.Keyword)
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	if err = d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM videos"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count videos: %w", err)
	}

	rows, err := d.db.QueryContext(ctx,
		"SELECT "+videoColumns+" FROM videos"+where+" ORDER BY update_time DESC, id DESC LIMIT ? OFFSET ?",
		append(args, limit, offset)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()

	videos = []models.Video{}
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, *v)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

func (d *Database) GetVideoByID(ctx context.Context, id int64) (v *models.Video, err error) {
	start := time.Now()
	defer func() { observe("get_video", start, err) }()

	v, err = scanVideo(d.db.QueryRowContext(ctx, "SELECT "+videoColumns+" FROM videos WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select video: %w", err)
	}
	return v, nil
}

// IncrementVideoViews adds one to the view counter in a single UPDATE and returns
// the updated row from the same transaction, so concurrent calls never lose increments.
func (d *Database) IncrementVideoViews(ctx context.Context, id int64) (v *models.Video, err error) {
	start := time.Now()
	defer func() { observe("increment_views", start, err) }()

	err = d.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "UPDATE videos SET views = views + 1 WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("update views: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		v, err = scanVideo(tx.QueryRowContext(ctx, "SELECT "+videoColumns+" FROM videos WHERE id = ?", id))
		if err != nil {
			return fmt.Errorf("reload video: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// DeleteVideo removes a catalog entry. Comments and collections referencing it are kept.
func (d *Database) DeleteVideo(ctx context.Context, id int64) (err error) {
	start := time.Now()
	defer func() { observe("delete_video", start, err) }()

	return d.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM videos WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("delete video: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (d *Database) CountVideos(ctx context.Context) (int, error) {
	var n int
	err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM videos").Scan(&n)
	return n, err
}
