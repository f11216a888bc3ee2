// Package handler contains the HTTP handlers for the oficiogen API.
//
// This file implements session backup export and import.
package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dasrj/oficiogen/internal/backup"
	"github.com/dasrj/oficiogen/internal/domain"
	"github.com/dasrj/oficiogen/internal/service"
)

// maxBackupSize bounds an imported snapshot (1 MiB is generous for
// metadata-only content).
const maxBackupSize = 1 << 20

// =============================================================================
// Handler Configuration
// =============================================================================

// BackupHandler handles session snapshot HTTP requests.
type BackupHandler struct {
	store  *service.AttachmentStore
	logger *slog.Logger
	now    func() time.Time
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(store *service.AttachmentStore, logger *slog.Logger) *BackupHandler {
	return &BackupHandler{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// =============================================================================
// Route Registration
// =============================================================================

// RegisterRoutes registers backup routes with the provided mux.
//
// Routes:
// - POST /api/backup/export -> Export (snapshot download)
// - POST /api/backup/import -> Import (restore form fields)
func (h *BackupHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/backup/export", h.Export)
	mux.HandleFunc("POST /api/backup/import", h.Import)
}

// importResponse carries the restored form plus the snapshot's photo
// manifest. The manifest is informational: photo bytes never travel in a
// snapshot, so the photos must be re-attached manually.
type importResponse struct {
	FormData domain.FormData `json:"formData"`
	Photos   []backup.Photo  `json:"photos"`
}

// =============================================================================
// POST /api/backup/export - Export Snapshot
// =============================================================================

// Export serializes the submitted form plus the current attachment manifest
// into a downloadable JSON snapshot.
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	var form domain.FormData
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid("backup.export", "Dados do formulário inválidos."))
		return
	}

	photos := make([]backup.Photo, 0, h.store.Count())
	for _, s := range h.store.Summaries() {
		photos = append(photos, backup.PhotoFromSummary(s))
	}

	data, filename, err := backup.Export(form.Normalized(), photos, h.now())
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(data)
}

// =============================================================================
// POST /api/backup/import - Import Snapshot
// =============================================================================

// Import restores form fields from an uploaded snapshot. Fields absent from
// the snapshot are left empty rather than invented.
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBackupSize))
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid("backup.import", "Falha ao ler o arquivo de backup."))
		return
	}

	form, photos, err := backup.Import(data, domain.FormData{})
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	if photos == nil {
		photos = []backup.Photo{}
	}

	h.logger.Info("backup imported", "photo_count", len(photos))

	writeJSON(w, http.StatusOK, importResponse{
		FormData: form,
		Photos:   photos,
	})
}
