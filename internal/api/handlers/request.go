package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/sakura-comic/backend/internal/apperr"
	"github.com/sakura-comic/backend/internal/api/middleware"
	"github.com/sakura-comic/backend/internal/db/models"
	"github.com/sakura-comic/backend/internal/validation"
)

// decodeJSON reads a JSON body into dst and validates it. Validation failures
// are reported with invalidMsg.
func decodeJSON(r *http.Request, dst any, invalidMsg string) error {
	body, err := io.ReadAll(r.Body)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperr.Validation("request body too large")
	}
	if err != nil {
		return apperr.Validation("invalid request body")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return apperr.Validation("invalid request body")
	}
	if _, err := validation.Struct(dst); err != nil {
		return apperr.Validation(invalidMsg)
	}
	return nil
}

// queryInt returns 0 when the parameter is absent or not an integer.
func queryInt(r *http.Request, name string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return n
}

func queryID(r *http.Request, name string) int64 {
	n, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// pathID parses a numeric chi URL parameter. Routes constrain it to digits, so
// only overflow can fail.
func pathID(r *http.Request, name string) (int64, error) {
	n, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, apperr.NotFound("resource not found")
	}
	return n, nil
}

func identity(r *http.Request) (models.Identity, error) {
	u := middleware.CurrentUser(r)
	if u == nil {
		return models.Identity{}, apperr.Auth("token is missing")
	}
	return u.Identity(), nil
}
