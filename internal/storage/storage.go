// Package storage provides the outbox file store for generated artifacts.
//
// The Outbox interface abstracts where exported documents and backups are
// handed off after generation; the only implementation is the local
// filesystem store, matching the tool's single-operator, local-only design.
package storage

import (
	"context"
	"io"
	"time"
)

// =============================================================================
// Interface Definition
// =============================================================================

// Outbox defines the interface for artifact hand-off storage.
//
// All methods are context-aware for timeout and cancellation support.
type Outbox interface {
	// Put stores data at the specified key with the given options.
	// Returns an error if the operation fails or if the key already exists
	// (unless overwrite is enabled in opts).
	Put(ctx context.Context, key string, data io.Reader, opts PutOptions) error

	// Get retrieves the data at the specified key.
	// Returns the data as an io.ReadCloser (caller must close), object
	// metadata, and an error. Returns ErrNotFound if the key doesn't exist.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)

	// Delete removes the object at the specified key.
	// This operation is idempotent - no error is returned if the key doesn't exist.
	Delete(ctx context.Context, key string) error

	// URL returns a URL for accessing the object at the specified key.
	URL(ctx context.Context, key string) (string, error)

	// Exists checks if an object exists at the specified key.
	Exists(ctx context.Context, key string) (bool, error)
}

// =============================================================================
// Data Types
// =============================================================================

// PutOptions configures how an object is stored.
type PutOptions struct {
	// ContentType specifies the MIME type of the object.
	ContentType string

	// MaxSize specifies the maximum allowed size in bytes.
	// A value of 0 means no limit.
	MaxSize int64

	// Overwrite allows replacing an existing object at the same key.
	// If false and the key exists, ErrKeyExists is returned.
	Overwrite bool
}

// ObjectInfo contains metadata about a stored object.
type ObjectInfo struct {
	Key          string    // Object key/path
	Size         int64     // Size in bytes
	ContentType  string    // MIME type
	LastModified time.Time // Last modification time
}

// =============================================================================
// Configuration Types
// =============================================================================

// LocalConfig holds configuration for the local filesystem outbox.
type LocalConfig struct {
	// BasePath is the root directory where files are stored.
	// Example: "./outbox" or "/var/lib/oficiogen/outbox"
	BasePath string

	// BaseURL is the URL prefix for accessing files.
	// Example: "http://localhost:8080/outbox"
	BaseURL string
}
