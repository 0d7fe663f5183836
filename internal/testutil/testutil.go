// Package testutil provides SQLite-backed fixtures for package tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sakura-comic/backend/internal/db"
	"github.com/sakura-comic/backend/internal/db/models"
)

// NewDatabase opens a fresh database file in a temp dir, closed on cleanup.
func NewDatabase(t testing.TB) *db.Database {
	t.Helper()
	d, err := db.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

// CreateUser inserts a user whose password is "password" (hashed at minimum cost).
func CreateUser(t testing.TB, d *db.Database, username string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	ctx := context.Background()
	id, err := d.CreateUser(ctx, username, string(hash))
	if err != nil {
		t.Fatalf("create user %q: %v", username, err)
	}
	u, err := d.GetUserByID(ctx, id)
	if err != nil {
		t.Fatalf("reload user %q: %v", username, err)
	}
	return u
}

// CreateVideo inserts a video with the given title, category and update time.
func CreateVideo(t testing.TB, d *db.Database, title, category string, updated time.Time) *models.Video {
	t.Helper()
	v := &models.Video{
		Title:       title,
		CoverURL:    "/imgs/test.jpg",
		VideoURL:    "http://example.com/v.mp4",
		Category:    category,
		Description: title + " description",
		ReleaseYear: 2023,
		UpdateTime:  updated,
	}
	if _, err := d.CreateVideo(context.Background(), v); err != nil {
		t.Fatalf("create video %q: %v", title, err)
	}
	return v
}

// Base is a fixed reference time for ordering fixtures.
var Base = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
