// Package service contains business logic for the oficiogen application.
//
// This file implements content digest computation for evidence attachments.
package service

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/dasrj/oficiogen/internal/domain"
)

// =============================================================================
// Interface Definition
// =============================================================================

// Hasher computes content digests for attachment byte buffers.
type Hasher interface {
	// Digest returns the 64-character lowercase hex SHA-256 of data, or the
	// domain.DigestUnavailable sentinel if the computation fails. Identical
	// byte sequences always yield identical output.
	Digest(data []byte) string
}

// =============================================================================
// Implementation
// =============================================================================

// sha256Hasher implements Hasher with the standard library SHA-256.
type sha256Hasher struct{}

// NewSHA256Hasher creates the production Hasher.
func NewSHA256Hasher() Hasher {
	return &sha256Hasher{}
}

// Digest computes the SHA-256 hex digest of data.
//
// A failing primitive is reported as the sentinel value rather than a panic:
// callers treat the sentinel as "digest unavailable", never as a valid
// proof, and never as equal to another sentinel.
func (h *sha256Hasher) Digest(data []byte) (digest string) {
	defer func() {
		if recover() != nil {
			digest = domain.DigestUnavailable
		}
	}()
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
