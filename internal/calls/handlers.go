package calls

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/museflow/call-links/pkg/apierror"
)

// maxRequestBody matches the 100kb default of common JSON body parsers.
const maxRequestBody = 100 << 10

type CallCreator interface {
	CreateCall(ctx context.Context, req CallRequest, correlationID string) (CallLinks, error)
}

type Handler struct {
	svc    CallCreator
	logger zerolog.Logger
	newID  func() (string, error)
}

func NewHandler(svc CallCreator, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger, newID: newUUID}
}

// Register must run before any catch-all route so other methods get 405.
func (h *Handler) Register(r chi.Router) {
	r.HandleFunc("/api/create-call", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Allow", http.MethodPost)
		apierror.Write(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	r.Post("/api/create-call", h.handleCreateCall)
}

func (h *Handler) handleCreateCall(w http.ResponseWriter, r *http.Request) {
	var req CallRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		apierror.WriteDetails(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}

	correlationID := strings.TrimSpace(r.Header.Get("X-Correlation-Id"))
	if correlationID == "" {
		id, err := h.newID()
		if err != nil {
			h.logger.Error().Err(err).Msg("generate correlation id")
			apierror.WriteDetails(w, http.StatusInternalServerError, "Server error", err.Error())
			return
		}
		correlationID = id
	}
	w.Header().Set("X-Correlation-Id", correlationID)

	resp, err := h.svc.CreateCall(r.Context(), req, correlationID)
	if err != nil {
		var providerErr *ProviderError
		switch {
		case errors.Is(err, ErrUnauthorized):
			apierror.Write(w, http.StatusUnauthorized, "Invalid manager password")
		case errors.As(err, &providerErr):
			apierror.WriteDetails(w, http.StatusBadRequest, "Daily API error", providerErr.Body)
		default:
			h.logger.Error().Err(err).Str("correlation_id", correlationID).Msg("create call failed")
			apierror.WriteDetails(w, http.StatusInternalServerError, "Server error", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}
