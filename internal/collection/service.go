// Package collection manages each user's list of favorite videos.
package collection

import (
	"context"
	"errors"

	"github.com/sakura-comic/backend/internal/apperr"
	"github.com/sakura-comic/backend/internal/db"
	"github.com/sakura-comic/backend/internal/db/models"
	"github.com/sakura-comic/backend/internal/logging"
	"github.com/sakura-comic/backend/internal/metrics"
	"github.com/sakura-comic/backend/internal/pagination"
)

type Store interface {
	GetVideoByID(ctx context.Context, id int64) (*models.Video, error)
	CreateCollection(ctx context.Context, userID, videoID int64) error
	DeleteCollection(ctx context.Context, userID, videoID int64) error
	CollectionExists(ctx context.Context, userID, videoID int64) (bool, error)
	ListCollections(ctx context.Context, userID int64, offset, limit int) ([]models.Collection, int, error)
}

type Service struct {
	store        Store
	defaultLimit int
	maxLimit     int
}

func NewService(store Store, defaultLimit, maxLimit int) *Service {
	return &Service{store: store, defaultLimit: defaultLimit, maxLimit: maxLimit}
}

var errMissingVideo = apperr.Validation("vod_id is required")

// Add collects a video. A duplicate is reported by the storage constraint, never by a pre-check.
func (s *Service) Add(ctx context.Context, id models.Identity, videoID int64) error {
	if videoID <= 0 {
		return errMissingVideo
	}
	_, err := s.store.GetVideoByID(ctx, videoID)
	if errors.Is(err, db.ErrNotFound) {
		return apperr.NotFound("video not found")
	}
	if err != nil {
		return apperr.Internal("failed to add collection", err)
	}

	err = s.store.CreateCollection(ctx, id.UserID, videoID)
	switch {
	case errors.Is(err, db.ErrConflict):
		return apperr.Conflict("video already collected")
	case err != nil:
		return apperr.Internal("failed to add collection", err)
	}
	metrics.CollectionChanges.WithLabelValues("add").Inc()
	return nil
}

func (s *Service) Remove(ctx context.Context, id models.Identity, videoID int64) error {
	if videoID <= 0 {
		return errMissingVideo
	}
	err := s.store.DeleteCollection(ctx, id.UserID, videoID)
	switch {
	case errors.Is(err, db.ErrNotFound):
		return apperr.NotFound("collection not found")
	case err != nil:
		return apperr.Internal("failed to remove collection", err)
	}
	metrics.CollectionChanges.WithLabelValues("remove").Inc()
	return nil
}

// IsCollected reports whether the user has collected the video. Absence is not an error.
func (s *Service) IsCollected(ctx context.Context, id models.Identity, videoID int64) (bool, error) {
	if videoID <= 0 {
		return false, errMissingVideo
	}
	ok, err := s.store.CollectionExists(ctx, id.UserID, videoID)
	if err != nil {
		return false, apperr.Internal("failed to check collection", err)
	}
	return ok, nil
}

// ListCollected pages through the user's collection in insertion order. Videos
// deleted since they were collected are left out of the page but still count in total.
func (s *Service) ListCollected(ctx context.Context, id models.Identity, page, limit int) (pagination.Page[models.Video], error) {
	p := pagination.Normalize(page, limit, s.defaultLimit, s.maxLimit)

	rows, total, err := s.store.ListCollections(ctx, id.UserID, p.Offset(), p.Limit)
	if err != nil {
		return pagination.Page[models.Video]{}, apperr.Internal("failed to list collections", err)
	}

	videos := make([]models.Video, 0, len(rows))
	for _, row := range rows {
		v, err := s.store.GetVideoByID(ctx, row.VideoID)
		if errors.Is(err, db.ErrNotFound) {
			logging.Ctx(ctx).Debug().
				Int64("user_id", id.UserID).
				Int64("video_id", row.VideoID).
				Msg("Skipping collected video that no longer exists")
			continue
		}
		if err != nil {
			return pagination.Page[models.Video]{}, apperr.Internal("failed to list collections", err)
		}
		videos = append(videos, *v)
	}
	return pagination.New(videos, total, p), nil
}
