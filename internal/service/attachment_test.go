package service

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dasrj/oficiogen/internal/domain"
)

// =============================================================================
// Test Doubles
// =============================================================================

// stubHasher resolves digests from content so tests can predict them.
type stubHasher struct{}

func (stubHasher) Digest(data []byte) string {
	return fmt.Sprintf("digest-of-%s", data)
}

// blockingHasher holds every digest until release is closed.
type blockingHasher struct {
	release chan struct{}
}

func (h *blockingHasher) Digest(data []byte) string {
	<-h.release
	return fmt.Sprintf("digest-of-%s", data)
}

// stubPreview reports fixed dimensions without decoding anything.
type stubPreview struct{}

func (stubPreview) Preview(data []byte) (*domain.PreviewDimensions, []byte, error) {
	return &domain.PreviewDimensions{Width: 640, Height: 480}, []byte("thumb"), nil
}

// failingPreview simulates an undecodable image.
type failingPreview struct{}

func (failingPreview) Preview(data []byte) (*domain.PreviewDimensions, []byte, error) {
	return nil, nil, fmt.Errorf("decode failed")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore() *AttachmentStore {
	return NewAttachmentStore(stubHasher{}, stubPreview{}, testLogger())
}

func photo(name, content string) Candidate {
	return Candidate{
		Name:        name,
		ContentType: "image/jpeg",
		Data:        []byte(content),
	}
}

// =============================================================================
// Acceptance
// =============================================================================

func TestAttachmentStore_AddAcceptsAndResolvesDigest(t *testing.T) {
	store := newTestStore()

	accepted, rejected := store.Add([]Candidate{photo("porta.jpg", "abc")})
	require.Len(t, accepted, 1)
	assert.Empty(t, rejected)

	// The summary returned from Add reflects the state at acceptance time.
	assert.Equal(t, "porta.jpg", accepted[0].Name)
	assert.Equal(t, int64(3), accepted[0].Size)
	assert.Equal(t, &domain.PreviewDimensions{Width: 640, Height: 480}, accepted[0].PreviewDimensions)

	assert.Eventually(t, func() bool {
		return store.Summaries()[0].Digest == "digest-of-abc"
	}, time.Second, 5*time.Millisecond)
}

func TestAttachmentStore_DigestPendingWhileComputing(t *testing.T) {
	hasher := &blockingHasher{release: make(chan struct{})}
	store := NewAttachmentStore(hasher, stubPreview{}, testLogger())

	store.Add([]Candidate{photo("fachada.jpg", "xyz")})
	assert.Equal(t, domain.DigestPending, store.Summaries()[0].Digest)

	close(hasher.release)
	assert.Eventually(t, func() bool {
		return store.Summaries()[0].Digest == "digest-of-xyz"
	}, time.Second, 5*time.Millisecond)
}

func TestAttachmentStore_PreviewFailureIsNotFatal(t *testing.T) {
	store := NewAttachmentStore(stubHasher{}, failingPreview{}, testLogger())

	accepted, rejected := store.Add([]Candidate{photo("corrompida.jpg", "zzz")})
	require.Len(t, accepted, 1)
	assert.Empty(t, rejected)
	assert.Nil(t, accepted[0].PreviewDimensions)

	_, err := store.Thumbnail(0)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}

// =============================================================================
// Rejection
// =============================================================================

func TestAttachmentStore_RejectsNonImage(t *testing.T) {
	store := newTestStore()

	accepted, rejected := store.Add([]Candidate{{
		Name:        "laudo.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF"),
	}})

	assert.Empty(t, accepted)
	require.Len(t, rejected, 1)
	assert.Equal(t, domain.EINVALID, rejected[0].Code)
	assert.Equal(t, 0, store.Count())
}

func TestAttachmentStore_RejectsOversized(t *testing.T) {
	store := newTestStore()

	big := Candidate{
		Name:        "gigante.jpg",
		ContentType: "image/jpeg",
		Data:        make([]byte, domain.MaxAttachmentSize+1),
	}
	accepted, rejected := store.Add([]Candidate{big})

	assert.Empty(t, accepted)
	require.Len(t, rejected, 1)
	assert.Equal(t, domain.ETOOLARGE, rejected[0].Code)

	// Exactly at the limit is still accepted.
	atLimit := Candidate{
		Name:        "limite.jpg",
		ContentType: "image/jpeg",
		Data:        make([]byte, domain.MaxAttachmentSize),
	}
	accepted, rejected = store.Add([]Candidate{atLimit})
	assert.Len(t, accepted, 1)
	assert.Empty(t, rejected)
}

func TestAttachmentStore_CapacityIsThree(t *testing.T) {
	store := newTestStore()

	store.Add([]Candidate{photo("a.jpg", "a"), photo("b.jpg", "b")})
	require.Equal(t, 2, store.Count())

	// A batch of five against one free slot: first in wins, rest rejected.
	var batch []Candidate
	for i := 0; i < 5; i++ {
		batch = append(batch, photo(fmt.Sprintf("lote-%d.jpg", i), fmt.Sprintf("c%d", i)))
	}
	accepted, rejected := store.Add(batch)

	require.Len(t, accepted, 1)
	assert.Equal(t, "lote-0.jpg", accepted[0].Name)
	require.Len(t, rejected, 4)
	for _, r := range rejected {
		assert.Equal(t, domain.ECONFLICT, r.Code)
	}
	assert.Equal(t, 3, store.Count())
	assert.Equal(t, 0, store.Remaining())
}

// =============================================================================
// Removal
// =============================================================================

func TestAttachmentStore_RemoveShiftsPositions(t *testing.T) {
	store := newTestStore()
	store.Add([]Candidate{photo("a.jpg", "a"), photo("b.jpg", "b"), photo("c.jpg", "c")})

	require.NoError(t, store.Remove(1))

	summaries := store.Summaries()
	require.Len(t, summaries, 2)
	assert.Equal(t, "a.jpg", summaries[0].Name)
	assert.Equal(t, "c.jpg", summaries[1].Name)

	// Sibling digests still resolve to their own content.
	assert.Eventually(t, func() bool {
		s := store.Summaries()
		return s[0].Digest == "digest-of-a" && s[1].Digest == "digest-of-c"
	}, time.Second, 5*time.Millisecond)
}

func TestAttachmentStore_RemoveOutOfRange(t *testing.T) {
	store := newTestStore()
	store.Add([]Candidate{photo("a.jpg", "a")})

	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(store.Remove(-1)))
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(store.Remove(1)))
	assert.Equal(t, 1, store.Count())
}

func TestAttachmentStore_OrphanedDigestIsDiscarded(t *testing.T) {
	hasher := &blockingHasher{release: make(chan struct{})}
	store := NewAttachmentStore(hasher, stubPreview{}, testLogger())

	store.Add([]Candidate{photo("removida.jpg", "gone")})
	require.NoError(t, store.Remove(0))

	store.Add([]Candidate{photo("restante.jpg", "kept")})
	close(hasher.release)

	// The late digest of the removed photo must not land on the survivor.
	assert.Eventually(t, func() bool {
		return store.Summaries()[0].Digest == "digest-of-kept"
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, store.Count())
}

func TestAttachmentStore_Clear(t *testing.T) {
	store := newTestStore()
	store.Add([]Candidate{photo("a.jpg", "a"), photo("b.jpg", "b")})

	store.Clear()

	assert.Equal(t, 0, store.Count())
	assert.Equal(t, domain.MaxAttachments, store.Remaining())
	assert.Empty(t, store.Summaries())
}

// =============================================================================
// Thumbnails
// =============================================================================

func TestAttachmentStore_Thumbnail(t *testing.T) {
	store := newTestStore()
	store.Add([]Candidate{photo("a.jpg", "a")})

	thumb, err := store.Thumbnail(0)
	require.NoError(t, err)
	assert.Equal(t, []byte("thumb"), thumb)

	_, err = store.Thumbnail(3)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}
