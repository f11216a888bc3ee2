// Package backup serializes form sessions to a portable JSON snapshot and
// restores them. Snapshots carry the form fields, the attachment manifest
// (metadata and digests only, never image bytes), and a capture timestamp.
package backup

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/dasrj/oficiogen/internal/domain"
	"github.com/dasrj/oficiogen/internal/metrics"
)

// =============================================================================
// Snapshot Format
// =============================================================================

// Photo is one manifest entry in a snapshot. It extends the attachment
// summary with the capture metadata block the snapshot format carries.
type Photo struct {
	domain.Summary
	ExifData map[string]any `json:"exifData"`
}

// PhotoFromSummary builds a manifest entry for one attachment. The metadata
// block holds the decoded dimensions plus size and type; it is null for
// photos whose image could not be decoded.
func PhotoFromSummary(s domain.Summary) Photo {
	p := Photo{Summary: s}
	if s.PreviewDimensions != nil {
		p.ExifData = map[string]any{
			"width":        s.PreviewDimensions.Width,
			"height":       s.PreviewDimensions.Height,
			"size":         s.Size,
			"type":         s.ContentType,
			"lastModified": s.LastModified,
		}
	}
	return p
}

// File is the on-disk snapshot shape.
type File struct {
	FormData  domain.FormData `json:"formData"`
	Photos    []Photo         `json:"photos"`
	Timestamp string          `json:"timestamp"` // RFC 3339 capture instant
}

// =============================================================================
// Export / Import
// =============================================================================

// Export serializes a session snapshot, returning the JSON bytes and the
// suggested download filename.
func Export(form domain.FormData, photos []Photo, now time.Time) ([]byte, string, error) {
	const op = "backup.Export"

	snapshot := File{
		FormData:  form,
		Photos:    photos,
		Timestamp: now.Format(time.RFC3339),
	}
	if snapshot.Photos == nil {
		snapshot.Photos = []Photo{}
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, "", domain.Internal(err, op, "Falha ao gerar o backup.")
	}

	metrics.BackupsTotal.WithLabelValues("export").Inc()

	return data, Filename(form.NProc, now), nil
}

// Import restores a snapshot over the given base form. Fields present in the
// snapshot replace the base values; fields absent from it keep the base
// values; unknown fields are ignored. The restored manifest is reference
// material only: image bytes are not part of a snapshot, so the photos must
// be re-attached by the operator.
func Import(data []byte, base domain.FormData) (domain.FormData, []Photo, error) {
	const op = "backup.Import"

	var raw struct {
		FormData  json.RawMessage `json:"formData"`
		Photos    []Photo         `json:"photos"`
		Timestamp string          `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return base, nil, domain.Invalid(op, "Arquivo de backup inválido.")
	}
	if len(raw.FormData) > 0 {
		// Unmarshal over the base so absent fields keep their values.
		if err := json.Unmarshal(raw.FormData, &base); err != nil {
			return base, nil, domain.Invalid(op, "Arquivo de backup inválido.")
		}
	}

	metrics.BackupsTotal.WithLabelValues("import").Inc()

	return base.Normalized(), raw.Photos, nil
}

// Filename builds the snapshot download name, e.g. "oficio_123_45_2024_2024-03-07.json".
func Filename(nProc string, now time.Time) string {
	proc := "dados"
	if nProc != "" {
		proc = strings.NewReplacer("/", "_", "-", "_").Replace(nProc)
	}
	return "oficio_" + proc + "_" + now.UTC().Format("2006-01-02") + ".json"
}
