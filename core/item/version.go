package item

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/harked/alfresco-bulk-import/core/metadata"
	"github.com/harked/alfresco-bulk-import/core/repo"

	"github.com/shopspring/decimal"
)

// Version represents exactly one version of a logical import item.
//
// Versions are built up incrementally from the directory listing: the
// content and metadata file slots fill in as the corresponding raw
// entries arrive, in any order. At least one slot is set from
// construction onwards.
//
// Filesystem facts (directory flag, size) are cached eagerly when the
// content slot is set, so aggregate queries never re-stat. The
// metadata record is loaded lazily, at most once, under a
// per-version mutex; concurrent first accesses all observe the same
// cached result.
type Version struct {
	// label is the raw version label as it appeared in the file name
	// suffix, empty for the unversioned (head) entry. Kept verbatim so
	// "1.10" does not collapse to "1.1" in keys and version rows.
	label string
	// number is nil for the unversioned (head) entry, which sorts
	// after every numbered version.
	number *decimal.Decimal

	contentPath  string
	metadataPath string

	// Cached file info (to avoid repeated stat calls on the same file)
	isDirectory *bool
	sizeInBytes int64

	loader metadata.Loader

	metaMu     sync.Mutex
	metaLoaded bool
	meta       *metadata.Record
	metaErr    error
}

// newVersion parses the version label and creates an empty entry.
// An empty label means "unversioned".
func newVersion(label string, loader metadata.Loader) (*Version, error) {
	v := &Version{label: label, loader: loader}
	if label != "" {
		number, err := decimal.NewFromString(label)
		if err != nil {
			return nil, err
		}
		v.number = &number
	}
	return v, nil
}

// setContentFile fills the content slot and caches the directory flag
// and size from a single stat call.
func (v *Version) setContentFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat content file %q: %w", path, err)
	}
	v.contentPath = path
	isDir := info.IsDir()
	v.isDirectory = &isDir
	if isDir {
		v.sizeInBytes = 0
	} else {
		v.sizeInBytes = info.Size()
	}
	return nil
}

// setMetadataFile fills the metadata slot.
func (v *Version) setMetadataFile(path string) {
	v.metadataPath = path
}

// Number returns the parsed version number, nil for the unversioned
// entry.
func (v *Version) Number() *decimal.Decimal {
	return v.number
}

// Label returns the raw version label, empty for the unversioned
// entry. The label preserves the scale of the file name suffix
// ("1.10" stays "1.10"); ordering is decided by Number, not by the
// label text.
func (v *Version) Label() string {
	return v.label
}

// HasContent reports whether this version carries writable content.
// Directories have a content slot but no content to write.
func (v *Version) HasContent() bool {
	return v.contentPath != "" && v.isDirectory != nil && !*v.isDirectory
}

// HasMetadata reports whether a metadata sidecar is associated.
func (v *Version) HasMetadata() bool {
	return v.metadataPath != ""
}

// IsDirectory returns the cached directory flag, nil while no content
// file is known.
func (v *Version) IsDirectory() *bool {
	return v.isDirectory
}

// SizeInBytes returns the cached content size. It is always 0 for
// directories and for versions without a content file.
func (v *Version) SizeInBytes() int64 {
	return v.sizeInBytes
}

// ContentSource returns the path of the content file, empty if none.
func (v *Version) ContentSource() string {
	return v.contentPath
}

// MetadataSource returns the path of the metadata file, empty if none.
func (v *Version) MetadataSource() string {
	return v.metadataPath
}

// RawMetadata returns the version's metadata record, loading it on
// first access. Without an associated sidecar it fails with
// *MissingMetadataError.
func (v *Version) RawMetadata() (*metadata.Record, error) {
	if !v.HasMetadata() {
		return nil, &MissingMetadataError{Source: v.contentPath}
	}
	return v.loadMetadataOnce()
}

// Type returns the content type from the metadata record.
func (v *Version) Type() (string, error) {
	record, err := v.RawMetadata()
	if err != nil {
		return "", err
	}
	return record.Type, nil
}

// Aspects returns the aspect set from the metadata record. A version
// without metadata yields an empty set rather than an error; aspects
// are an optional facet.
func (v *Version) Aspects() ([]string, error) {
	if !v.HasMetadata() {
		return nil, nil
	}
	record, err := v.loadMetadataOnce()
	if err != nil {
		return nil, err
	}
	return record.Aspects, nil
}

// Metadata returns the property map from the metadata record.
func (v *Version) Metadata() (map[string]any, error) {
	record, err := v.RawMetadata()
	if err != nil {
		return nil, err
	}
	return record.Properties, nil
}

// loadMetadataOnce performs the guarded at-most-once load. The
// outcome, success or failure, is cached for the lifetime of the
// entry; retry policy belongs to the job runner.
func (v *Version) loadMetadataOnce() (*metadata.Record, error) {
	v.metaMu.Lock()
	defer v.metaMu.Unlock()
	if !v.metaLoaded {
		v.meta, v.metaErr = v.loader.Load(v.metadataPath)
		v.metaLoaded = true
	}
	return v.meta, v.metaErr
}

// PutContent streams the version's content file into the writer,
// advising it of a best-guess MIME type first and a text encoding
// afterwards. Both advisories are best-effort and never fail the
// write.
func (v *Version) PutContent(ctx context.Context, w repo.ContentWriter) error {
	f, err := os.Open(v.contentPath)
	if err != nil {
		return fmt.Errorf("failed to open content file %q: %w", v.contentPath, err)
	}
	defer f.Close()

	w.GuessMimetype(filepath.Base(v.contentPath))
	if err := w.Put(ctx, f, v.sizeInBytes); err != nil {
		return err
	}
	w.GuessEncoding()
	return nil
}

// Compare orders versions by number ascending, with the unversioned
// entry sorting after all numbered ones. Equal numbers compare equal;
// upstream deduplication by label guarantees that never happens for
// legitimately distinct versions.
func (v *Version) Compare(other *Version) int {
	if v.number == nil && other.number == nil {
		return 0
	}
	if v.number == nil {
		return 1
	}
	if other.number == nil {
		return -1
	}
	return v.number.Cmp(*other.number)
}
