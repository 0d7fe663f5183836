package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sakura-comic/backend/internal/db/models"
)

// CreateUser inserts a user with an already-hashed password.
// Returns ErrConflict if the username is taken.
func (d *Database) CreateUser(ctx context.Context, username, passwordHash string) (id int64, err error) {
	start := time.Now()
	defer func() { observe("create_user", start, err) }()

	err = d.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO users (username, password, created_at) VALUES (?, ?, ?)",
			username, passwordHash, d.now(),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrConflict
			}
			return fmt.Errorf("insert user: %w", err)
		}
		id, err = res.LastInsertId()
		return err
	})
	return id, err
}

func (d *Database) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return d.getUser(ctx, "get_user_by_username", "username = ?", username)
}

func (d *Database) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return d.getUser(ctx, "get_user_by_id", "id = ?", id)
}

func (d *Database) getUser(ctx context.Context, op, where string, arg any) (u *models.User, err error) {
	start := time.Now()
	defer func() { observe(op, start, err) }()

	u = &models.User{}
	err = d.db.QueryRowContext(ctx,
		"SELECT id, username, password, created_at FROM users WHERE "+where, arg,
	).Scan(&u.ID, &u.Username, &u.Password, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}

func (d *Database) CountUsers(ctx context.Context) (int, error) {
	var n int
	err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n)
	return n, err
}
