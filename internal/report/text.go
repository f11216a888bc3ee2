package report

import (
	"context"
	"io"
)

// TextGenerator emits the composed body as plain UTF-8 text. It backs the
// pre-generation preview, which shows the operator exactly what the PDF body
// will contain.
type TextGenerator struct{}

// NewTextGenerator creates a plain-text generator.
func NewTextGenerator() *TextGenerator {
	return &TextGenerator{}
}

// Format returns the output format of this generator.
func (g *TextGenerator) Format() Format {
	return FormatText
}

// Generate writes the composed body to w.
func (g *TextGenerator) Generate(ctx context.Context, data *Data, w io.Writer) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	n, err := io.WriteString(w, data.Text)
	return int64(n), err
}
