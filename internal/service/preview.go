// Package service contains business logic for the oficiogen application.
//
// This file implements preview derivation (decoded dimensions plus a listing
// thumbnail) for evidence photos.
package service

import (
	"bytes"
	"fmt"
	"image"

	"github.com/dasrj/oficiogen/internal/domain"
	"github.com/disintegration/imaging"
)

// =============================================================================
// Interface Definition
// =============================================================================

// PreviewProcessor derives display metadata from raw image bytes.
type PreviewProcessor interface {
	// Preview decodes the image and returns its pixel dimensions plus a
	// JPEG thumbnail fitting within the listing bounds. A decode failure is
	// an error; callers treat it as non-fatal (the attachment keeps no
	// preview).
	Preview(data []byte) (*domain.PreviewDimensions, []byte, error)
}

// =============================================================================
// Implementation
// =============================================================================

// imagingProcessor implements PreviewProcessor using the imaging library.
type imagingProcessor struct{}

// NewImagingProcessor creates a preview processor backed by the imaging library.
func NewImagingProcessor() PreviewProcessor {
	return &imagingProcessor{}
}

// Preview decodes data, records the original dimensions, and renders a
// thumbnail fitting within ThumbnailMaxWidth x ThumbnailMaxHeight while
// preserving aspect ratio.
func (p *imagingProcessor) Preview(data []byte) (*domain.PreviewDimensions, []byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	dims := &domain.PreviewDimensions{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}

	thumbnail := imaging.Fit(img, domain.ThumbnailMaxWidth, domain.ThumbnailMaxHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumbnail, imaging.JPEG, imaging.JPEGQuality(domain.ThumbnailJPEGQuality)); err != nil {
		return dims, nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return dims, buf.Bytes(), nil
}
