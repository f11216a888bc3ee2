// Package domain contains core business types and interfaces.
//
// This file defines the Attachment type for photographic evidence items and
// the policy constants governing their acceptance.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Attachment Constants
// =============================================================================

const (
	// MaxAttachments is the attachment capacity of one document.
	MaxAttachments = 3

	// MaxAttachmentSize is the maximum accepted photo size (10 MiB).
	MaxAttachmentSize = 10 * 1024 * 1024

	// DigestPending marks an attachment whose SHA-256 has not resolved yet.
	DigestPending = "pendente"

	// DigestUnavailable marks an attachment whose SHA-256 computation
	// failed. It is never a valid proof: two unavailable digests do not
	// identify equal content.
	DigestUnavailable = "erro-calculo-hash"

	// ThumbnailMaxWidth is the maximum width for listing thumbnails.
	ThumbnailMaxWidth = 200

	// ThumbnailMaxHeight is the maximum height for listing thumbnails.
	ThumbnailMaxHeight = 200

	// ThumbnailJPEGQuality is the JPEG quality for thumbnail generation (0-100).
	ThumbnailJPEGQuality = 85
)

// =============================================================================
// Attachment
// =============================================================================

// PreviewDimensions holds the decoded pixel dimensions of an attachment.
// Nil dimensions mean the image could not be decoded; the attachment is
// still accepted and hashed.
type PreviewDimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Attachment is one piece of photographic evidence. The raw byte buffer is
// owned exclusively by the attachment store; consumers only ever see the
// derived Summary.
type Attachment struct {
	ID           uuid.UUID          // Process-unique identity, never reused
	Name         string             // Original filename
	ContentType  string             // Declared media type
	Size         int64              // Byte size
	LastModified time.Time          // Last-modified timestamp from capture
	Data         []byte             // Raw bytes (store-owned)
	Digest       string             // SHA-256 hex; DigestPending until resolved
	Preview      *PreviewDimensions // Decoded dimensions, nil on decode failure
	Thumbnail    []byte             // JPEG thumbnail for listing, nil on decode failure
}

// Summary is the consumer-visible projection of an attachment: metadata and
// integrity proof, never raw bytes.
type Summary struct {
	Name              string             `json:"name"`
	Size              int64              `json:"size"`
	Digest            string             `json:"hash"`
	ContentType       string             `json:"type"`
	LastModified      int64              `json:"lastModified"` // Unix milliseconds
	PreviewDimensions *PreviewDimensions `json:"previewDimensions,omitempty"`
}

// Summarize derives the consumer-visible summary for an attachment.
func (a *Attachment) Summarize() Summary {
	return Summary{
		Name:              a.Name,
		Size:              a.Size,
		Digest:            a.Digest,
		ContentType:       a.ContentType,
		LastModified:      a.LastModified.UnixMilli(),
		PreviewDimensions: a.Preview,
	}
}

// =============================================================================
// Acceptance Policy
// =============================================================================

// IsValidAttachmentType reports whether the declared media type is an image.
func IsValidAttachmentType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

// ValidateAttachmentSize checks the byte size against the acceptance policy.
func ValidateAttachmentSize(size int64) error {
	if size > MaxAttachmentSize {
		return Errorf(ETOOLARGE, "foto.validate", "Arquivo muito grande. Máximo 10MB por foto.")
	}
	if size == 0 {
		return Invalid("foto.validate", "Arquivo de imagem vazio.")
	}
	return nil
}
