// Package handler contains the HTTP handlers for the oficiogen API.
//
// This file implements document preview and generation endpoints.
package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dasrj/oficiogen/internal/domain"
	"github.com/dasrj/oficiogen/internal/report"
	"github.com/dasrj/oficiogen/internal/service"
)

// =============================================================================
// Handler Configuration
// =============================================================================

// OficioHandler handles document generation HTTP requests.
type OficioHandler struct {
	exporter *service.Exporter
	pdf      report.Generator
	text     report.Generator
	logger   *slog.Logger
}

// NewOficioHandler creates a new OficioHandler.
func NewOficioHandler(exporter *service.Exporter, logger *slog.Logger) *OficioHandler {
	return &OficioHandler{
		exporter: exporter,
		pdf:      report.NewPDFGenerator(),
		text:     report.NewTextGenerator(),
		logger:   logger,
	}
}

// =============================================================================
// Route Registration
// =============================================================================

// RegisterRoutes registers document routes with the provided mux.
//
// Routes:
// - POST /api/oficio/preview -> Preview (plain-text document body)
// - POST /api/oficio/pdf     -> GeneratePDF (paginated artifact download)
func (h *OficioHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/oficio/preview", h.Preview)
	mux.HandleFunc("POST /api/oficio/pdf", h.GeneratePDF)
}

// =============================================================================
// POST /api/oficio/preview - Text Preview
// =============================================================================

// Preview composes the document body without generating a PDF, so the
// operator can read exactly what the artifact will say.
func (h *OficioHandler) Preview(w http.ResponseWriter, r *http.Request) {
	form, ok := h.decodeForm(w, r)
	if !ok {
		return
	}

	artifact, err := h.exporter.Export(r.Context(), form, h.text)
	if err != nil {
		ValidationErrorResponse(w, r, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(artifact.Data)
}

// =============================================================================
// POST /api/oficio/pdf - Generate PDF
// =============================================================================

// GeneratePDF validates the form, renders the paginated artifact, and serves
// it as a download.
func (h *OficioHandler) GeneratePDF(w http.ResponseWriter, r *http.Request) {
	form, ok := h.decodeForm(w, r)
	if !ok {
		return
	}

	artifact, err := h.exporter.Export(r.Context(), form, h.pdf)
	if err != nil {
		ValidationErrorResponse(w, r, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.Header().Set("Content-Length", fmt.Sprint(len(artifact.Data)))
	_, _ = w.Write(artifact.Data)
}

// decodeForm reads the JSON form payload from the request body.
func (h *OficioHandler) decodeForm(w http.ResponseWriter, r *http.Request) (domain.FormData, bool) {
	var form domain.FormData
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid("oficio.decode", "Dados do formulário inválidos."))
		return form, false
	}
	return form, true
}
