package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dasrj/oficiogen/internal/backup"
	"github.com/dasrj/oficiogen/internal/domain"
	"github.com/dasrj/oficiogen/internal/service"
)

func newBackupServer(t *testing.T) (*service.AttachmentStore, *http.ServeMux) {
	t.Helper()
	store := service.NewAttachmentStore(
		service.NewSHA256Hasher(),
		service.NewImagingProcessor(),
		testLogger(),
	)
	mux := http.NewServeMux()
	NewBackupHandler(store, testLogger()).RegisterRoutes(mux)
	return store, mux
}

func TestBackupHandler_ExportThenImport(t *testing.T) {
	store, mux := newBackupServer(t)
	store.Add([]service.Candidate{{Name: "porta.png", ContentType: "image/png", Data: pngBytes(t)}})

	req := httptest.NewRequest("POST", "/api/backup/export", bytes.NewReader(validFormJSON(t)))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "oficio_123_45_2024_")
	snapshot := rec.Body.Bytes()

	// Feed the exported snapshot straight back in.
	req = httptest.NewRequest("POST", "/api/backup/import", bytes.NewReader(snapshot))
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var restored struct {
		FormData domain.FormData `json:"formData"`
		Photos   []backup.Photo  `json:"photos"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&restored))
	assert.Equal(t, "123-45/2024", restored.FormData.NProc)
	require.Len(t, restored.Photos, 1)
	assert.Equal(t, "porta.png", restored.Photos[0].Name)
}

func TestBackupHandler_ImportRejectsMalformedSnapshot(t *testing.T) {
	_, mux := newBackupServer(t)

	req := httptest.NewRequest("POST", "/api/backup/import", strings.NewReader("{nope"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
