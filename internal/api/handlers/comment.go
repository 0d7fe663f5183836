package handlers

import (
	"net/http"

	"github.com/sakura-comic/backend/internal/api/response"
	"github.com/sakura-comic/backend/internal/comments"
)

type CommentHandler struct {
	svc *comments.Service
}

func NewCommentHandler(svc *comments.Service) *CommentHandler {
	return &CommentHandler{svc: svc}
}

type commentRequest struct {
	Content string `json:"content" validate:"required"`
}

// Publish serves POST /publish/comment/{videoId}.
func (h *CommentHandler) Publish(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	videoID, err := pathID(r, "videoId")
	if err != nil {
		response.Error(w, r, err)
		return
	}
	var req commentRequest
	if err := decodeJSON(r, &req, "comment content must not be empty"); err != nil {
		response.Error(w, r, err)
		return
	}
	if _, err := h.svc.PublishRoot(r.Context(), id, videoID, req.Content); err != nil {
		response.Error(w, r, err)
		return
	}
	response.Message(w, "comment published")
}

// Reply serves POST /reply/comment/{commentId}.
func (h *CommentHandler) Reply(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	parentID, err := pathID(r, "commentId")
	if err != nil {
		response.Error(w, r, err)
		return
	}
	var req commentRequest
	if err := decodeJSON(r, &req, "reply content must not be empty"); err != nil {
		response.Error(w, r, err)
		return
	}
	if _, err := h.svc.PublishReply(r.Context(), id, parentID, req.Content); err != nil {
		response.Error(w, r, err)
		return
	}
	response.Message(w, "reply published")
}

// Show serves GET /show/comment/{videoId}.
func (h *CommentHandler) Show(w http.ResponseWriter, r *http.Request) {
	videoID, err := pathID(r, "videoId")
	if err != nil {
		response.Error(w, r, err)
		return
	}
	thread, err := h.svc.ListThread(r.Context(), videoID)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, thread)
}
