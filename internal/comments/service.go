// Package comments implements two-level comment threads on videos.
//
// A reply may target another reply; it is stored, but ListThread only renders
// direct replies to root comments, so such replies never appear in a thread.
package comments

import (
	"context"
	"errors"

	"github.com/sakura-comic/backend/internal/apperr"
	"github.com/sakura-comic/backend/internal/db"
	"github.com/sakura-comic/backend/internal/db/models"
	"github.com/sakura-comic/backend/internal/metrics"
)

type CommentStore interface {
	CreateComment(ctx context.Context, c *models.Comment) error
	GetCommentByID(ctx context.Context, id int64) (*models.Comment, error)
	ListRootComments(ctx context.Context, videoID int64) ([]models.Comment, error)
	ListReplies(ctx context.Context, videoID int64) ([]models.Comment, error)
}

type Service struct {
	store CommentStore
}

func NewService(store CommentStore) *Service {
	return &Service{store: store}
}

// ThreadList is the response of ListThread. Total counts root comments only.
type ThreadList struct {
	List  []models.Thread `json:"list"`
	Total int             `json:"total"`
}

// PublishRoot adds a top-level comment. The video id is not checked against the catalog.
func (s *Service) PublishRoot(ctx context.Context, id models.Identity, videoID int64, content string) (*models.Comment, error) {
	if content == "" {
		return nil, apperr.Validation("comment content must not be empty")
	}
	c := &models.Comment{UserID: id.UserID, VideoID: videoID, Content: content}
	if err := s.store.CreateComment(ctx, c); err != nil {
		return nil, apperr.Internal("failed to publish comment", err)
	}
	c.Username = id.Username
	metrics.CommentsPublished.WithLabelValues("root").Inc()
	return c, nil
}

// PublishReply adds a reply under parentID, on the parent's video.
func (s *Service) PublishReply(ctx context.Context, id models.Identity, parentID int64, content string) (*models.Comment, error) {
	if content == "" {
		return nil, apperr.Validation("reply content must not be empty")
	}
	parent, err := s.store.GetCommentByID(ctx, parentID)
	if errors.Is(err, db.ErrNotFound) {
		return nil, apperr.NotFound("parent comment not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to publish reply", err)
	}

	c := &models.Comment{
		UserID:   id.UserID,
		VideoID:  parent.VideoID,
		Content:  content,
		ParentID: &parent.ID,
	}
	if err := s.store.CreateComment(ctx, c); err != nil {
		return nil, apperr.Internal("failed to publish reply", err)
	}
	c.Username = id.Username
	metrics.CommentsPublished.WithLabelValues("reply").Inc()
	return c, nil
}

// ListThread returns the root comments of a video, newest first, each with its
// direct replies oldest first.
func (s *Service) ListThread(ctx context.Context, videoID int64) (ThreadList, error) {
	roots, err := s.store.ListRootComments(ctx, videoID)
	if err != nil {
		return ThreadList{}, apperr.Internal("failed to load comments", err)
	}
	replies, err := s.store.ListReplies(ctx, videoID)
	if err != nil {
		return ThreadList{}, apperr.Internal("failed to load replies", err)
	}

	byParent := make(map[int64][]models.Comment, len(roots))
	for _, r := range replies {
		if r.ParentID != nil {
			byParent[*r.ParentID] = append(byParent[*r.ParentID], r)
		}
	}

	list := make([]models.Thread, 0, len(roots))
	for _, root := range roots {
		rs := byParent[root.ID]
		if rs == nil {
			rs = []models.Comment{}
		}
		list = append(list, models.Thread{Comment: root, Replies: rs})
	}
	return ThreadList{List: list, Total: len(list)}, nil
}
