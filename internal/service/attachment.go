// Package service contains business logic for the oficiogen application.
//
// This file implements the evidence attachment store: an ordered collection
// of at most three photos, each with an asynchronously computed SHA-256
// content digest.
package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/dasrj/oficiogen/internal/domain"
	"github.com/dasrj/oficiogen/internal/metrics"
	"github.com/google/uuid"
)

// =============================================================================
// Input / Output Types
// =============================================================================

// Candidate is one raw file offered for attachment.
type Candidate struct {
	Name         string
	ContentType  string
	LastModified time.Time
	Data         []byte
}

// Rejection explains why one candidate was not accepted.
type Rejection struct {
	Name    string `json:"name"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// =============================================================================
// AttachmentStore
// =============================================================================

// AttachmentStore owns the evidence photos for the current session. Raw
// bytes never leave the store; consumers receive Summary projections.
//
// Digest computation runs in its own goroutine per attachment, so accepting
// item N+1 never waits on item N's digest, and digests may resolve out of
// order. A digest resolving after its attachment was removed is discarded.
type AttachmentStore struct {
	mu      sync.Mutex
	items   []*domain.Attachment
	hasher  Hasher
	preview PreviewProcessor
	logger  *slog.Logger
}

// NewAttachmentStore creates an empty store.
func NewAttachmentStore(hasher Hasher, preview PreviewProcessor, logger *slog.Logger) *AttachmentStore {
	return &AttachmentStore{
		hasher:  hasher,
		preview: preview,
		logger:  logger,
	}
}

// Add validates and accepts candidates in input order, up to the remaining
// capacity. Each rejected candidate produces its own Rejection (wrong type,
// oversized, or capacity exhausted); rejections never abort the batch.
// Accepted attachments start with a pending digest that resolves
// asynchronously.
func (s *AttachmentStore) Add(candidates []Candidate) (accepted []domain.Summary, rejected []Rejection) {
	const op = "foto.add"

	for _, c := range candidates {
		if !domain.IsValidAttachmentType(c.ContentType) {
			rejected = append(rejected, Rejection{
				Name:    c.Name,
				Code:    domain.EINVALID,
				Message: "Apenas arquivos de imagem são permitidos.",
			})
			metrics.AttachmentsRejected.WithLabelValues("type").Inc()
			continue
		}
		if err := domain.ValidateAttachmentSize(int64(len(c.Data))); err != nil {
			rejected = append(rejected, Rejection{
				Name:    c.Name,
				Code:    domain.ErrorCode(err),
				Message: domain.ErrorMessage(err),
			})
			metrics.AttachmentsRejected.WithLabelValues("size").Inc()
			continue
		}

		s.mu.Lock()
		if len(s.items) >= domain.MaxAttachments {
			s.mu.Unlock()
			rejected = append(rejected, Rejection{
				Name:    c.Name,
				Code:    domain.ECONFLICT,
				Message: "Máximo de 3 fotos permitidas.",
			})
			metrics.AttachmentsRejected.WithLabelValues("capacity").Inc()
			continue
		}

		att := &domain.Attachment{
			ID:           uuid.New(),
			Name:         c.Name,
			ContentType:  c.ContentType,
			Size:         int64(len(c.Data)),
			LastModified: c.LastModified,
			Data:         c.Data,
			Digest:       domain.DigestPending,
		}
		if att.LastModified.IsZero() {
			att.LastModified = time.Now()
		}

		// Decode failure is non-fatal: the photo is still accepted and
		// hashed, it just carries no dimensions.
		dims, thumb, err := s.preview.Preview(c.Data)
		if err != nil {
			s.logger.Warn("preview derivation failed", "op", op, "name", c.Name, "error", err)
		}
		att.Preview = dims
		att.Thumbnail = thumb

		s.items = append(s.items, att)
		// Snapshot before unlocking: the digest goroutine may write back
		// the moment the lock is released.
		summary := att.Summarize()
		s.mu.Unlock()

		go s.computeDigest(att.ID, c.Data)

		accepted = append(accepted, summary)
		metrics.AttachmentsAccepted.Inc()
		s.logger.Info("attachment accepted", "op", op, "id", att.ID, "name", att.Name, "size", att.Size)
	}

	return accepted, rejected
}

// computeDigest hashes data and writes the result back, unless the owning
// attachment has been removed in the meantime.
func (s *AttachmentStore) computeDigest(id uuid.UUID, data []byte) {
	start := time.Now()
	digest := s.hasher.Digest(data)

	status := "ok"
	if digest == domain.DigestUnavailable {
		status = "unavailable"
	}
	metrics.DigestsComputed.WithLabelValues(status).Inc()
	metrics.DigestDuration.Observe(time.Since(start).Seconds())

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, att := range s.items {
		if att.ID == id {
			att.Digest = digest
			return
		}
	}
	// The attachment was removed while hashing ran; the orphaned result is
	// dropped instead of being written to a non-existent entry.
	s.logger.Debug("discarded digest for removed attachment", "id", id)
}

// Remove deletes the attachment at index, shifting later entries down one
// position. Sibling ids and digests are untouched.
func (s *AttachmentStore) Remove(index int) error {
	const op = "foto.remove"

	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.items) {
		return domain.Errorf(domain.ENOTFOUND, op, "Foto %d não existe.", index)
	}
	name := s.items[index].Name
	s.items = append(s.items[:index], s.items[index+1:]...)
	s.logger.Info("attachment removed", "op", op, "index", index, "name", name)
	return nil
}

// Clear empties the collection unconditionally.
func (s *AttachmentStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Summaries returns the consumer-visible projection of every attachment in
// insertion order. An unresolved digest appears as domain.DigestPending.
func (s *AttachmentStore) Summaries() []domain.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	summaries := make([]domain.Summary, len(s.items))
	for i, att := range s.items {
		summaries[i] = att.Summarize()
	}
	return summaries
}

// Count returns the number of attachments currently held.
func (s *AttachmentStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Remaining returns how many more attachments the store accepts.
func (s *AttachmentStore) Remaining() int {
	return domain.MaxAttachments - s.Count()
}

// Thumbnail returns the listing thumbnail for the attachment at index.
// Attachments whose image could not be decoded have no thumbnail.
func (s *AttachmentStore) Thumbnail(index int) ([]byte, error) {
	const op = "foto.thumbnail"

	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.items) {
		return nil, domain.Errorf(domain.ENOTFOUND, op, "Foto %d não existe.", index)
	}
	if s.items[index].Thumbnail == nil {
		return nil, domain.Errorf(domain.ENOTFOUND, op, "Foto %d não possui miniatura.", index)
	}
	return s.items[index].Thumbnail, nil
}
