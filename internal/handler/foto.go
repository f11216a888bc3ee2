// Package handler contains the HTTP handlers for the oficiogen API.
//
// This file implements the photo attachment endpoints.
package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dasrj/oficiogen/internal/domain"
	"github.com/dasrj/oficiogen/internal/service"
)

// =============================================================================
// Handler Configuration
// =============================================================================

// FotoHandler handles attachment-related HTTP requests.
type FotoHandler struct {
	store  *service.AttachmentStore
	logger *slog.Logger
}

// NewFotoHandler creates a new FotoHandler.
func NewFotoHandler(store *service.AttachmentStore, logger *slog.Logger) *FotoHandler {
	return &FotoHandler{
		store:  store,
		logger: logger,
	}
}

// =============================================================================
// Route Registration
// =============================================================================

// RegisterRoutes registers all attachment routes with the provided mux.
//
// Routes:
// - POST   /api/fotos                   -> Upload
// - GET    /api/fotos                   -> List
// - DELETE /api/fotos                   -> Clear
// - DELETE /api/fotos/{index}           -> Remove
// - GET    /api/fotos/{index}/thumbnail -> ServeThumbnail
func (h *FotoHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/fotos", h.Upload)
	mux.HandleFunc("GET /api/fotos", h.List)
	mux.HandleFunc("DELETE /api/fotos", h.Clear)
	mux.HandleFunc("DELETE /api/fotos/{index}", h.Remove)
	mux.HandleFunc("GET /api/fotos/{index}/thumbnail", h.ServeThumbnail)
}

// uploadResponse reports the outcome of one upload batch.
type uploadResponse struct {
	Accepted  []domain.Summary    `json:"accepted"`
	Rejected  []service.Rejection `json:"rejected"`
	Remaining int                 `json:"remaining"`
}

// listResponse is the attachment listing payload.
type listResponse struct {
	Photos    []domain.Summary `json:"photos"`
	Remaining int              `json:"remaining"`
}

// =============================================================================
// POST /api/fotos - Upload Photos
// =============================================================================

// Upload accepts a multipart batch of photos under the "fotos" field.
// Rejections are reported per file, never as a batch failure.
func (h *FotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (32MB memory limit)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.logger.Error("failed to parse multipart form", "error", err)
		ErrorResponse(w, r, h.logger, domain.Invalid("foto.upload", "Envio de arquivos inválido."))
		return
	}

	files := r.MultipartForm.File["fotos"]
	if len(files) == 0 {
		ErrorResponse(w, r, h.logger, domain.Invalid("foto.upload", "Nenhuma foto enviada."))
		return
	}

	var candidates []service.Candidate
	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			h.logger.Error("failed to open uploaded file", "error", err, "filename", fileHeader.Filename)
			continue
		}

		data, err := io.ReadAll(io.LimitReader(file, domain.MaxAttachmentSize+1))
		_ = file.Close()
		if err != nil {
			h.logger.Error("failed to read uploaded file", "error", err, "filename", fileHeader.Filename)
			continue
		}

		candidates = append(candidates, service.Candidate{
			Name:         fileHeader.Filename,
			ContentType:  fileHeader.Header.Get("Content-Type"),
			LastModified: parseLastModified(r.FormValue("lastModified")),
			Data:         data,
		})
	}

	accepted, rejected := h.store.Add(candidates)

	if accepted == nil {
		accepted = []domain.Summary{}
	}
	if rejected == nil {
		rejected = []service.Rejection{}
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Accepted:  accepted,
		Rejected:  rejected,
		Remaining: h.store.Remaining(),
	})
}

// =============================================================================
// GET /api/fotos - List Photos
// =============================================================================

// List returns the current attachment manifest in insertion order.
func (h *FotoHandler) List(w http.ResponseWriter, r *http.Request) {
	photos := h.store.Summaries()
	if photos == nil {
		photos = []domain.Summary{}
	}

	writeJSON(w, http.StatusOK, listResponse{
		Photos:    photos,
		Remaining: h.store.Remaining(),
	})
}

// =============================================================================
// DELETE /api/fotos/{index} - Remove Photo
// =============================================================================

// Remove deletes the photo at the given position.
func (h *FotoHandler) Remove(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid("foto.remove", "Índice de foto inválido."))
		return
	}

	if err := h.store.Remove(index); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// DELETE /api/fotos - Clear Photos
// =============================================================================

// Clear removes every photo.
func (h *FotoHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.store.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// GET /api/fotos/{index}/thumbnail - Serve Thumbnail
// =============================================================================

// ServeThumbnail streams the JPEG listing thumbnail for one photo.
func (h *FotoHandler) ServeThumbnail(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid("foto.thumbnail", "Índice de foto inválido."))
		return
	}

	thumb, err := h.store.Thumbnail(index)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(thumb)
}

// =============================================================================
// Helpers
// =============================================================================

// parseLastModified interprets an optional unix-millisecond form value.
// A zero time means "unknown"; the store substitutes the current time.
func parseLastModified(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	millis, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(millis)
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
