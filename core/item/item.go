package item

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/harked/alfresco-bulk-import/core/metadata"
	"github.com/harked/alfresco-bulk-import/core/repo"
)

// ImportFile is one raw file entry produced by the source grouping
// step: a filesystem path, the version label it belongs to (empty
// for the unversioned head), and whether it is a metadata sidecar or
// primary content.
type ImportFile struct {
	Path         string
	VersionLabel string
	Metadata     bool
}

// Item is one logical import item reconciled from a batch of raw
// file entries. It owns an ordered set of versions keyed by version
// number and is read-only once constructed.
type Item struct {
	name         string
	relativePath string
	pathElements []string
	versions     []*Version
}

// New folds a batch of raw file entries into one item. Entries
// sharing a version label collapse into a single version with both
// slots populated, regardless of input order. The fold is the only
// place versions are created or mutated; the returned item is
// read-only.
func New(name, relativePath string, files []ImportFile, loader metadata.Loader) (*Item, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("item name must not be empty or blank")
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("item %q: constituent files must not be empty", name)
	}

	it := &Item{
		name:         name,
		relativePath: relativePath,
		pathElements: splitPathElements(relativePath),
	}

	byLabel := make(map[string]*Version)
	for _, file := range files {
		version, ok := byLabel[file.VersionLabel]
		if !ok {
			var err error
			version, err = newVersion(file.VersionLabel, loader)
			if err != nil {
				return nil, &InvalidVersionLabelError{Item: name, Label: file.VersionLabel, Err: err}
			}
			byLabel[file.VersionLabel] = version
			it.versions = append(it.versions, version)
		}

		if file.Metadata {
			version.setMetadataFile(file.Path)
		} else {
			if err := version.setContentFile(file.Path); err != nil {
				return nil, fmt.Errorf("item %q: %w", name, err)
			}
		}
	}

	sort.SliceStable(it.versions, func(i, j int) bool {
		return it.versions[i].Compare(it.versions[j]) < 0
	})

	return it, nil
}

// splitPathElements splits a slash- or backslash-delimited relative
// path, collapsing repeated separators.
func splitPathElements(relativePath string) []string {
	return strings.FieldsFunc(relativePath, func(r rune) bool {
		return r == '/' || r == '\\'
	})
}

// Name returns the logical item name.
func (it *Item) Name() string {
	return it.name
}

// RelativePath returns the target-relative path, empty for items at
// the import root.
func (it *Item) RelativePath() string {
	return it.relativePath
}

// Versions returns the item's versions in ascending order. The
// returned slice must not be modified.
func (it *Item) Versions() []*Version {
	return it.versions
}

// NumberOfVersions returns the number of distinct versions.
func (it *Item) NumberOfVersions() int {
	return len(it.versions)
}

// SizeInBytes sums the content sizes over all versions; directories
// contribute zero.
func (it *Item) SizeInBytes() int64 {
	var total int64
	for _, version := range it.versions {
		if version.HasContent() {
			total += version.SizeInBytes()
		}
	}
	return total
}

// NumberOfMetadataProperties sums the property counts over all
// versions that have metadata. It triggers the lazy metadata load on
// those versions.
func (it *Item) NumberOfMetadataProperties() (int, error) {
	total := 0
	for _, version := range it.versions {
		if !version.HasMetadata() {
			continue
		}
		properties, err := version.Metadata()
		if err != nil {
			return 0, err
		}
		total += len(properties)
	}
	return total, nil
}

// IsDirectory reports whether the item is a folder: the newest
// version with a known directory flag decides, so the answer tracks
// the most recent filesystem state rather than stale older versions.
func (it *Item) IsDirectory() bool {
	for i := len(it.versions) - 1; i >= 0; i-- {
		if flag := it.versions[i].IsDirectory(); flag != nil {
			return *flag
		}
	}
	return false
}

// ParentAssoc returns the parent association type. The scan runs
// newest to oldest and keeps overwriting, so when versions disagree
// the OLDEST version with a value wins. Contrast with Namespace.
func (it *Item) ParentAssoc() (string, error) {
	result := ""
	for i := len(it.versions) - 1; i >= 0; i-- {
		version := it.versions[i]
		if !version.HasMetadata() {
			continue
		}
		record, err := version.RawMetadata()
		if err != nil {
			return "", err
		}
		if record.ParentAssoc != "" {
			result = record.ParentAssoc
		}
	}
	return result, nil
}

// Namespace returns the namespace hint from the NEWEST version that
// specifies one. Unlike ParentAssoc, newer values shadow older ones:
// an item's namespace may evolve across versions while its repository
// location should not.
func (it *Item) Namespace() (string, error) {
	for i := len(it.versions) - 1; i >= 0; i-- {
		version := it.versions[i]
		if !version.HasMetadata() {
			continue
		}
		record, err := version.RawMetadata()
		if err != nil {
			return "", err
		}
		if record.Namespace != "" {
			return record.Namespace, nil
		}
	}
	return "", nil
}

// ResolveParent resolves the item's parent location under the given
// import root. Items without a target-relative path belong directly
// to the root and yield a nil reference (caller supplies the default
// parent). The resolution is non-creating; an absent result means the
// parent folder has not materialized yet and surfaces as
// *OutOfOrderBatchError carrying the unresolved path.
func (it *Item) ResolveParent(ctx context.Context, resolver repo.Resolver, root repo.NodeRef) (*repo.NodeRef, error) {
	if len(it.pathElements) == 0 {
		return nil, nil
	}

	ref, err := resolver.ResolvePath(ctx, root, it.pathElements, false)
	if err != nil {
		return nil, fmt.Errorf("item %q: parent lookup failed: %w", it.name, err)
	}
	if ref == nil {
		// Child arrived before its parent folder.
		return nil, &OutOfOrderBatchError{Path: it.relativePath}
	}
	return ref, nil
}

// String renders the item name with its version count.
func (it *Item) String() string {
	if len(it.versions) == 1 {
		return fmt.Sprintf("%s (1 version)", it.name)
	}
	return fmt.Sprintf("%s (%d versions)", it.name, len(it.versions))
}
