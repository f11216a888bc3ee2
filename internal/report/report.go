// Package report renders composed documents to their output artifacts.
//
// This package defines a Generator interface implemented by PDFGenerator
// (the paginated artifact) and TextGenerator (the pre-generation preview),
// along with shared formatting helpers.
package report

import (
	"context"
	"io"
	"time"

	"github.com/dasrj/oficiogen/internal/domain"
)

// =============================================================================
// Generator Interface
// =============================================================================

// Format identifies an output format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatText Format = "txt"
)

// Data carries everything a generator needs for one document: the composed
// body text, the form snapshot it was derived from, the attachment manifest,
// and the generation instant.
type Data struct {
	Text        string           // Composed document body
	Form        domain.FormData  // Form snapshot (already normalized)
	Attachments []domain.Summary // Manifest in display order
	GeneratedAt time.Time        // Generation instant
}

// Generator defines the interface for document generators.
type Generator interface {
	// Generate creates the artifact and writes it to the provided writer.
	// Returns the number of bytes written and any error.
	Generate(ctx context.Context, data *Data, w io.Writer) (int64, error)

	// Format returns the output format of this generator.
	Format() Format
}

// =============================================================================
// Formatting Helpers
// =============================================================================

// saoPaulo is the fixed display timezone for generation timestamps.
// LoadLocation only fails without tzdata; UTC is the degraded fallback.
var saoPaulo = func() *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		return time.UTC
	}
	return loc
}()

// FormatGeneratedAt renders a generation instant in the fixed display
// timezone, e.g. "07/03/2024 14:05:33".
func FormatGeneratedAt(t time.Time) string {
	return t.In(saoPaulo).Format("02/01/2006 15:04:05")
}
