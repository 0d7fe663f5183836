// Package response writes the API's JSON envelope: {code, msg} or {code, data}.
// The HTTP status always equals code.
package response

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/sakura-comic/backend/internal/apperr"
	"github.com/sakura-comic/backend/internal/logging"
)

type Envelope struct {
	Code int    `json:"code"`
	Msg  string `json:"msg,omitempty"`
	Data any    `json:"data,omitempty"`
	// Token is set only by login; clients read it at the top level.
	Token string `json:"token,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn().Err(err).Msg("Failed to write response")
	}
}

func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Envelope{Code: http.StatusOK, Data: data})
}

func Message(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusOK, Envelope{Code: http.StatusOK, Msg: msg})
}

// Error maps err to its kind's status. Causes of internal errors are logged, never sent.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		logging.Ctx(r.Context()).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Request failed")
	}
	status := kind.Status()
	JSON(w, status, Envelope{Code: status, Msg: apperr.Message(err)})
}

// Status writes a bare {code, msg} envelope for failures that do not come from a service.
func Status(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, Envelope{Code: status, Msg: msg})
}
