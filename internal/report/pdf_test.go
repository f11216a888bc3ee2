package report

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dasrj/oficiogen/internal/domain"
)

func testData(text string) *Data {
	return &Data{
		Text: text,
		Form: domain.FormData{
			NProc:    "123-45/2024",
			Endereco: "Rua das Laranjeiras, 100, Laranjeiras, Rio de Janeiro",
		},
		GeneratedAt: time.Date(2024, 3, 7, 17, 30, 0, 0, time.UTC),
	}
}

// =============================================================================
// Pagination
// =============================================================================

func TestPDFGenerator_Paginate_ShortTextOnePage(t *testing.T) {
	g := NewPDFGenerator()

	lines := []string{"linha 1", "linha 2", "linha 3"}
	pages := g.paginate(lines, 50)

	require.Len(t, pages, 1)
	assert.Equal(t, lines, pages[0])
}

func TestPDFGenerator_Paginate_BreaksBeforeBottomMargin(t *testing.T) {
	g := NewPDFGenerator()

	// From y=50, the content zone ends at 297-40=257; each line advances
	// 5mm, so at most 42 lines fit before the cursor crosses the boundary.
	var lines []string
	for i := 0; i < 100; i++ {
		lines = append(lines, fmt.Sprintf("linha %d", i))
	}
	pages := g.paginate(lines, 50)

	require.Greater(t, len(pages), 1)

	// No page loses or duplicates lines.
	var total int
	for _, page := range pages {
		total += len(page)
	}
	assert.Equal(t, len(lines), total)

	// Later pages start at the top margin, which fits more lines.
	assert.Greater(t, len(pages[1]), len(pages[0]))
}

func TestPDFGenerator_Paginate_FirstPageCapacity(t *testing.T) {
	g := NewPDFGenerator()

	var lines []string
	for i := 0; i < 200; i++ {
		lines = append(lines, "x")
	}
	pages := g.paginate(lines, g.margin)

	// From the top margin the cursor runs 20, 25, ... and breaks once it
	// passes 257: 48 lines per full page.
	assert.Len(t, pages[0], 48)
	assert.Len(t, pages[1], 48)
}

// =============================================================================
// Generation
// =============================================================================

func TestPDFGenerator_Generate(t *testing.T) {
	g := NewPDFGenerator()

	var buf bytes.Buffer
	n, err := g.Generate(context.Background(), testData("Corpo do documento."), &buf)
	require.NoError(t, err)

	assert.Equal(t, int64(buf.Len()), n)
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF"))
}

func TestPDFGenerator_Generate_LongTextSpansPages(t *testing.T) {
	g := NewPDFGenerator()

	// 120 short lines never wrap: the body starts at y=50 on page one
	// (42 lines) and fills 48-line pages after that, so three pages total.
	long := strings.Repeat("linha\n", 120)

	var buf bytes.Buffer
	_, err := g.Generate(context.Background(), testData(long), &buf)
	require.NoError(t, err)

	// The page tree node carries the page count in clear text.
	assert.Contains(t, buf.String(), "/Count 3")
}

func TestPDFGenerator_Generate_CancelledContext(t *testing.T) {
	g := NewPDFGenerator()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	_, err := g.Generate(ctx, testData("corpo"), &buf)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, buf.Len())
}

func TestPDFGenerator_Format(t *testing.T) {
	assert.Equal(t, FormatPDF, NewPDFGenerator().Format())
	assert.Equal(t, FormatText, NewTextGenerator().Format())
}

// =============================================================================
// Reference Line
// =============================================================================

func TestExtractBairro(t *testing.T) {
	tests := []struct {
		name     string
		endereco string
		want     string
	}{
		{"full address", "Rua X, Centro, Niterói", "Centro"},
		{"two segments", "Rua X, Tijuca", "Tijuca"},
		{"no comma", "Rua X", "N/A"},
		{"empty", "", "N/A"},
		{"padded segment", "Rua X,   Botafogo  , Rio de Janeiro", "Botafogo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractBairro(tt.endereco))
		})
	}
}

func TestExtractCidade(t *testing.T) {
	tests := []struct {
		name     string
		endereco string
		want     string
	}{
		{"full address", "Rua X, Centro, Niterói", "Niterói"},
		{"city from mention", "Avenida Atlântica 500 rio de janeiro", "Rio de Janeiro"},
		{"city from state abbreviation", "Rua X, Tijuca - RJ", "Rio de Janeiro"},
		{"no city hint", "Rua X", "N/A"},
		{"empty", "", "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCidade(tt.endereco))
		})
	}
}

// =============================================================================
// Timestamp Formatting
// =============================================================================

func TestFormatGeneratedAt(t *testing.T) {
	// 17:30 UTC is 14:30 in São Paulo (UTC-3).
	at := time.Date(2024, 3, 7, 17, 30, 0, 0, time.UTC)
	assert.Equal(t, "07/03/2024 14:30:00", FormatGeneratedAt(at))
}
