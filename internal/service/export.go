package service

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/dasrj/oficiogen/internal/compose"
	"github.com/dasrj/oficiogen/internal/domain"
	"github.com/dasrj/oficiogen/internal/metrics"
	"github.com/dasrj/oficiogen/internal/report"
	"github.com/dasrj/oficiogen/internal/storage"
)

// =============================================================================
// Exporter Service
// =============================================================================

// Artifact is a generated document ready to be served to the operator.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
	GeneratedAt time.Time
}

// Exporter turns a validated form plus the current attachment set into an
// output artifact. Generated artifacts are also handed off to the outbox on
// a best-effort basis; a hand-off failure never fails the export itself.
type Exporter struct {
	attachments *AttachmentStore
	outbox      storage.Outbox
	logger      *slog.Logger
	now         func() time.Time
}

// NewExporter creates an Exporter. The outbox may be nil to disable hand-off.
func NewExporter(attachments *AttachmentStore, outbox storage.Outbox, logger *slog.Logger) *Exporter {
	return &Exporter{
		attachments: attachments,
		outbox:      outbox,
		logger:      logger,
		now:         time.Now,
	}
}

// Export validates the form, composes the document, and renders it with the
// given generator. The form is normalized before composition so identical
// input always yields identical bytes.
func (e *Exporter) Export(ctx context.Context, form domain.FormData, gen report.Generator) (*Artifact, error) {
	const op = "Exporter.Export"

	if err := form.Validate(); err != nil {
		return nil, err
	}

	form = form.Normalized()
	generatedAt := e.now()

	data := &report.Data{
		Text:        compose.Compose(form),
		Form:        form,
		Attachments: e.attachments.Summaries(),
		GeneratedAt: generatedAt,
	}

	var buf bytes.Buffer
	if _, err := gen.Generate(ctx, data, &buf); err != nil {
		return nil, domain.Internal(err, op, "Falha ao gerar o documento.")
	}

	artifact := &Artifact{
		Filename:    Filename(form.NProc, generatedAt, string(gen.Format())),
		ContentType: contentTypeForFormat(gen.Format()),
		Data:        buf.Bytes(),
		GeneratedAt: generatedAt,
	}

	metrics.DocumentsGenerated.WithLabelValues(string(gen.Format())).Inc()

	e.logger.Info("document generated",
		"format", gen.Format(),
		"filename", artifact.Filename,
		"size", len(artifact.Data),
		"attachments", len(data.Attachments),
	)

	e.handoff(ctx, artifact)

	return artifact, nil
}

// handoff copies the artifact into the outbox. Failures are logged and
// counted but never surfaced to the caller.
func (e *Exporter) handoff(ctx context.Context, artifact *Artifact) {
	if e.outbox == nil {
		return
	}

	err := e.outbox.Put(ctx, artifact.Filename, bytes.NewReader(artifact.Data), storage.PutOptions{
		ContentType: artifact.ContentType,
		Overwrite:   true,
	})
	if err != nil {
		metrics.HandoffFailures.Inc()
		e.logger.Warn("outbox hand-off failed",
			"filename", artifact.Filename,
			"error", err,
		)
		return
	}

	e.logger.Debug("artifact handed off to outbox", "filename", artifact.Filename)
}

// =============================================================================
// Filename Construction
// =============================================================================

// Filename builds the download name for a generated artifact, e.g.
// "Oficio_Requisicao_Imagens_123_45_2024_2024-03-07.pdf".
func Filename(nProc string, generatedAt time.Time, ext string) string {
	return "Oficio_Requisicao_Imagens_" + sanitizeProc(nProc) + "_" +
		generatedAt.UTC().Format("2006-01-02") + "." + ext
}

// sanitizeProc makes a procedure number filesystem-safe by replacing its
// separators with underscores. An empty procedure yields "sem_proc".
func sanitizeProc(nProc string) string {
	if nProc == "" {
		return "sem_proc"
	}
	return strings.NewReplacer("/", "_", "-", "_").Replace(nProc)
}

func contentTypeForFormat(f report.Format) string {
	switch f {
	case report.FormatPDF:
		return "application/pdf"
	case report.FormatText:
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
