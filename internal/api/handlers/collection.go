package handlers

import (
	"net/http"

	"github.com/sakura-comic/backend/internal/api/response"
	"github.com/sakura-comic/backend/internal/collection"
)

type CollectionHandler struct {
	svc *collection.Service
}

func NewCollectionHandler(svc *collection.Service) *CollectionHandler {
	return &CollectionHandler{svc: svc}
}

type collectedData struct {
	IsCollected bool `json:"is_collected"`
}

func (h *CollectionHandler) Add(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	if err := h.svc.Add(r.Context(), id, queryID(r, "vod_id")); err != nil {
		response.Error(w, r, err)
		return
	}
	response.Message(w, "collected")
}

func (h *CollectionHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	if err := h.svc.Remove(r.Context(), id, queryID(r, "vod_id")); err != nil {
		response.Error(w, r, err)
		return
	}
	response.Message(w, "collection removed")
}

func (h *CollectionHandler) IsCollected(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	ok, err := h.svc.IsCollected(r.Context(), id, queryID(r, "vod_id"))
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, collectedData{IsCollected: ok})
}

func (h *CollectionHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	page, err := h.svc.ListCollected(r.Context(), id, queryInt(r, "page"), queryInt(r, "limit"))
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, page)
}
