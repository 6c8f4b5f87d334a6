// Package httphandler is the REST driving adapter of the store service.
package httphandler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/ericfisherdev/passop/internal/application"
	"github.com/ericfisherdev/passop/internal/domain/port/driven"
)

// Response messages. Clients display these verbatim.
const (
	msgFetchFailed    = "Error fetching passwords"
	msgSaveFailed     = "Error saving password"
	msgInvalidData    = "Invalid data"
	msgNotUpdated     = "Password not found or not updated"
	msgUpdated        = "Password updated successfully"
	msgUpdateFailed   = "Error updating password"
	msgNotFound       = "Password not found"
	msgDeleteFailed   = "Error deleting password"
	msgInternalServer = "Internal server error"
)

// maxBodyBytes bounds request bodies; records are three short strings.
const maxBodyBytes = 64 << 10

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	svc    *application.CredentialService
	logger *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(svc *application.CredentialService, logger *slog.Logger) *Handler {
	return &Handler{
		svc:    svc,
		logger: logger,
	}
}

// RegisterRoutes registers the credential API and health routes on mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /{$}", h.List)
	mux.HandleFunc("POST /{$}", h.Create)
	mux.HandleFunc("PUT /password", h.UpdatePassword)
	mux.HandleFunc("DELETE /{$}", h.Delete)
	mux.HandleFunc("GET /health", h.Health)
}

// NewServeMux creates an http.Handler with the API routes registered and
// wrapped with the standard middleware chain.
func NewServeMux(h *Handler, logger *slog.Logger, cors *Cors) http.Handler {
	mux := http.NewServeMux()
	RegisterRoutes(mux, h)
	return ApplyMiddleware(mux, logger, cors)
}

// List returns every stored credential as a JSON array.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	creds, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list credentials", "error", err)
		writeMessage(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	resp := make([]CredentialResponse, 0, len(creds))
	for _, c := range creds {
		resp = append(resp, toCredentialResponse(c))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Create stores the posted credential as given.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CredentialRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidData)
		return
	}

	result, err := h.svc.Create(r.Context(), req.toCredential())
	if err != nil {
		h.logger.Error("failed to save credential", "site", req.Site, "error", err)
		writeMessage(w, http.StatusInternalServerError, msgSaveFailed)
		return
	}

	writeJSON(w, http.StatusOK, CreateResponse{
		Success: true,
		Result: InsertResultResponse{
			Acknowledged: true,
			InsertedID:   result.InsertedID,
		},
	})
}

// UpdatePassword overwrites the password of the record selected by
// site and username, narrowed by _id when present.
func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req CredentialRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidData)
		return
	}

	h.logger.Debug("update password requested", "id", req.ID, "site", req.Site, "username", req.Username)

	err := h.svc.Update(r.Context(), req.key(), req.Password)
	switch {
	case err == nil:
		writeMessage(w, http.StatusOK, msgUpdated)
	case errors.Is(err, application.ErrInvalidData):
		writeMessage(w, http.StatusBadRequest, msgInvalidData)
	case errors.Is(err, driven.ErrNotUpdated):
		writeMessage(w, http.StatusBadRequest, msgNotUpdated)
	default:
		h.logger.Error("failed to update credential", "site", req.Site, "username", req.Username, "error", err)
		writeMessage(w, http.StatusInternalServerError, msgUpdateFailed)
	}
}

// Delete removes the record selected by site and username, narrowed by
// _id when present.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	var req CredentialRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidData)
		return
	}

	err := h.svc.Delete(r.Context(), req.key())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, DeleteResponse{Success: true})
	case errors.Is(err, application.ErrInvalidData):
		writeMessage(w, http.StatusBadRequest, msgInvalidData)
	case errors.Is(err, driven.ErrNotFound):
		writeJSON(w, http.StatusNotFound, DeleteResponse{Success: false, Message: msgNotFound})
	default:
		h.logger.Error("failed to delete credential", "site", req.Site, "username", req.Username, "error", err)
		writeMessage(w, http.StatusInternalServerError, msgDeleteFailed)
	}
}

// Health reports service liveness and store reachability.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	}

	if err := h.svc.Ping(r.Context()); err != nil {
		h.logger.Warn("health check: store unreachable", "error", err)
		resp.Status = "store unreachable"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// decodeBody decodes a JSON request body into v. An empty body decodes as
// an empty object so that validation reports "Invalid data" uniformly.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
