package item

import "fmt"

// InvalidVersionLabelError reports a raw file entry whose version
// label does not parse as a decimal number. It is fatal for the
// item's construction and is not retried.
type InvalidVersionLabelError struct {
	// Item is the logical item name.
	Item string
	// Label is the offending version label.
	Label string
	// Err is the underlying parse failure.
	Err error
}

func (e *InvalidVersionLabelError) Error() string {
	return fmt.Sprintf("item %q: invalid version label %q: %v", e.Item, e.Label, e.Err)
}

func (e *InvalidVersionLabelError) Unwrap() error {
	return e.Err
}

// MissingMetadataError reports a metadata-dependent accessor invoked
// on a version that has no metadata file. Callers are expected to
// gate such accesses with HasMetadata.
type MissingMetadataError struct {
	// Source identifies the version, by content path where one is
	// known.
	Source string
}

func (e *MissingMetadataError) Error() string {
	return fmt.Sprintf("no metadata file associated with version (source %q)", e.Source)
}

// OutOfOrderBatchError reports that an item's target-relative parent
// path does not yet resolve in the repository: the bulk import driver
// processed a child before its parent folder materialized. This is
// fatal for the affected subtree and must not be silently retried.
type OutOfOrderBatchError struct {
	// Path is the unresolved target-relative path.
	Path string
}

func (e *OutOfOrderBatchError) Error() string {
	return fmt.Sprintf("out-of-order batch: target-relative path %q does not resolve", e.Path)
}
