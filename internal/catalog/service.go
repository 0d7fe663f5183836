// Package catalog serves video listings and details.
package catalog

import (
	"context"
	"errors"

	"github.com/sakura-comic/backend/internal/apperr"
	"github.com/sakura-comic/backend/internal/db"
	"github.com/sakura-comic/backend/internal/db/models"
	"github.com/sakura-comic/backend/internal/metrics"
	"github.com/sakura-comic/backend/internal/pagination"
)

type VideoStore interface {
	ListVideos(ctx context.Context, f models.VideoFilter, offset, limit int) ([]models.Video, int, error)
	IncrementVideoViews(ctx context.Context, id int64) (*models.Video, error)
}

type Service struct {
	videos       VideoStore
	defaultLimit int
	maxLimit     int
}

func NewService(videos VideoStore, defaultLimit, maxLimit int) *Service {
	return &Service{videos: videos, defaultLimit: defaultLimit, maxLimit: maxLimit}
}

// ListQuery is a catalog listing request. Zero Page/Limit select the defaults.
type ListQuery struct {
	Page     int
	Limit    int
	Category string
	Keyword  string
}

// ListVideos returns one page of videos, most recently updated first.
func (s *Service) ListVideos(ctx context.Context, q ListQuery) (pagination.Page[models.Video], error) {
	p := pagination.Normalize(q.Page, q.Limit, s.defaultLimit, s.maxLimit)
	filter := models.VideoFilter{Category: q.Category, Keyword: q.Keyword}

	videos, total, err := s.videos.ListVideos(ctx, filter, p.Offset(), p.Limit)
	if err != nil {
		return pagination.Page[models.Video]{}, apperr.Internal("failed to list videos", err)
	}
	return pagination.New(videos, total, p), nil
}

// GetVideoDetail counts one view and returns the updated video.
func (s *Service) GetVideoDetail(ctx context.Context, id int64) (*models.Video, error) {
	if id <= 0 {
		return nil, apperr.NotFound("video not found")
	}
	v, err := s.videos.IncrementVideoViews(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return nil, apperr.NotFound("video not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to load video", err)
	}
	metrics.VideoViews.Inc()
	return v, nil
}
