package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/sakura-comic/backend/internal/api/response"
	"github.com/sakura-comic/backend/internal/logging"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Root is the banner clients poll to see whether the backend is up.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"message": "Sakura Comic Backend is running!"})
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Health check failed")
		response.Status(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	response.OK(w, map[string]string{"status": "ok"})
}
