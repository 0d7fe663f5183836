package handlers

import (
	"net/http"

	"github.com/sakura-comic/backend/internal/api/response"
	"github.com/sakura-comic/backend/internal/catalog"
)

type VideoHandler struct {
	svc *catalog.Service
}

func NewVideoHandler(svc *catalog.Service) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// List serves GET /vod_list?page=&limit=&category=&keyword=.
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.svc.ListVideos(r.Context(), catalog.ListQuery{
		Page:     queryInt(r, "page"),
		Limit:    queryInt(r, "limit"),
		Category: q.Get("category"),
		Keyword:  q.Get("keyword"),
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, page)
}

// Detail serves GET /vod_detail?vod_id=. A missing id is reported as not found.
func (h *VideoHandler) Detail(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.GetVideoDetail(r.Context(), queryID(r, "vod_id"))
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, v)
}
