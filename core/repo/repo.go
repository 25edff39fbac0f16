package repo

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// NodeRef identifies a node in the target repository.
type NodeRef struct {
	uuid.UUID
}

// NewNodeRef generates a fresh node reference.
func NewNodeRef() NodeRef {
	return NodeRef{uuid.New()}
}

// ParseNodeRef parses a node reference from its string form.
func ParseNodeRef(s string) (NodeRef, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return NodeRef{}, err
	}
	return NodeRef{id}, nil
}

// Resolver resolves repository paths to node references.
type Resolver interface {
	// ResolvePath walks the given path elements below root. When the
	// path does not fully resolve and createMissing is false, it
	// returns (nil, nil); callers interpret that as an out-of-order
	// batch. With createMissing true, missing folders are created.
	ResolvePath(ctx context.Context, root NodeRef, elements []string, createMissing bool) (*NodeRef, error)
}

// ContentWriter streams one version's content into the repository's
// content store.
//
// GuessMimetype (before writing) and GuessEncoding (after writing) are
// advisory: they influence the stored content type and recorded
// encoding on a best-effort basis and never fail the write.
type ContentWriter interface {
	// GuessMimetype advises the writer of a best-guess MIME type
	// derived from the given filename.
	GuessMimetype(filename string)
	// Put streams the content into the store. size may be -1 when
	// unknown.
	Put(ctx context.Context, r io.Reader, size int64) error
	// GuessEncoding derives a best-guess text encoding from the
	// written content.
	GuessEncoding()
	// Mimetype reports the effective content type after the write.
	Mimetype() string
	// Encoding reports the guessed text encoding, empty if unknown.
	Encoding() string
}

// Store is the node-index surface the import job consumes.
type Store interface {
	Resolver

	// VerifySchema checks that the node tables exist with the
	// expected columns.
	VerifySchema(ctx context.Context) error
	// EnsureRoot finds or creates the import root folder.
	EnsureRoot(ctx context.Context, name string) (NodeRef, error)
	// EnsureFolder finds or creates a folder child of parent.
	EnsureFolder(ctx context.Context, parent NodeRef, name, nodeType, namespace string) (NodeRef, error)
	// EnsureDocument finds or creates a document child of parent.
	EnsureDocument(ctx context.Context, parent NodeRef, name, nodeType, namespace string) (NodeRef, error)
	// AddVersion appends a version row to a node's history.
	AddVersion(ctx context.Context, node NodeRef, record VersionRecord) error
}

// VersionRecord is one entry in a node's version history.
type VersionRecord struct {
	// Label is the decimal version label, empty for the head version.
	Label string
	// ContentKey is the object key in the content store, empty for
	// metadata-only versions and folders.
	ContentKey string
	// ContentType is the stored MIME type.
	ContentType string
	// Encoding is the guessed text encoding.
	Encoding string
	// SizeBytes is the content size.
	SizeBytes int64
	// Properties holds the version's metadata properties.
	Properties map[string]any
	// Aspects holds the version's aspect names.
	Aspects []string
}
