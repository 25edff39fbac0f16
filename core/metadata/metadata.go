package metadata

import "fmt"

// Record is the structured content of one metadata sidecar file.
// A Record is created once by a Loader and must not be mutated
// afterwards; it is owned exclusively by the item version whose
// sidecar produced it.
type Record struct {
	// Type is the repository content type, empty if unspecified.
	Type string

	// Aspects is the set of aspect names applied to the node.
	Aspects []string

	// Properties holds the node's property values by name.
	Properties map[string]any

	// ParentAssoc is the parent association type hint, empty if
	// unspecified.
	ParentAssoc string

	// Namespace is the namespace hint, empty if unspecified.
	Namespace string
}

// Loader parses a metadata sidecar file into a Record.
//
// The reconciliation core calls Load at most once per item version;
// implementations do not need to cache.
type Loader interface {
	Load(path string) (*Record, error)
}

// ParseError reports a sidecar file that could not be parsed. It is
// surfaced to the caller verbatim; this layer never retries.
type ParseError struct {
	// Path is the sidecar file that failed to parse.
	Path string
	// Err is the underlying cause.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse metadata file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
