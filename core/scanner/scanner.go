package scanner

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/harked/alfresco-bulk-import/core/item"
)

// Config holds configuration for the import source.
type Config struct {
	// Dir is the source directory to import from.
	Dir string `mapstructure:"dir" default:"./source"`
}

// metadataSuffix marks a sidecar file.
const metadataSuffix = ".metadata.json"

// versionSuffixPattern matches a trailing version suffix such as
// ".v1" or ".v1.10". The label itself is validated downstream by
// the item fold.
var versionSuffixPattern = regexp.MustCompile(`^(.+)\.v([0-9]+(?:\.[0-9]+)*)$`)

// ItemBatch is the grouped raw input for one logical item: every
// source file that belongs to it, in scan order.
type ItemBatch struct {
	// Name is the logical item name.
	Name string
	// RelativePath is the item's directory relative to the source
	// root, slash-delimited, empty at the root.
	RelativePath string
	// Files are the raw entries to fold into the item.
	Files []item.ImportFile
}

// Scan walks the source directory and groups its entries into one
// batch per logical item. Directories become folder items; files are
// classified by the naming convention:
//
//	name                        head content
//	name.metadata.json          head metadata sidecar
//	name.v<label>               content of version <label>
//	name.metadata.json.v<label> metadata of version <label>
//
// Batches are returned sorted by repository path, so parent folders
// always precede their children.
func Scan(root string) ([]ItemBatch, error) {
	batches := make(map[string]*ItemBatch)

	add := func(relDir, name string, file item.ImportFile) {
		key := path.Join(relDir, name)
		batch, ok := batches[key]
		if !ok {
			batch = &ItemBatch{Name: name, RelativePath: relDir}
			batches[key] = batch
		}
		batch.Files = append(batch.Files, file)
	}

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		relDir := filepath.ToSlash(filepath.Dir(rel))
		if relDir == "." {
			relDir = ""
		}

		if d.IsDir() {
			add(relDir, d.Name(), item.ImportFile{Path: p})
			return nil
		}

		name, label, isMetadata := classify(d.Name())
		add(relDir, name, item.ImportFile{Path: p, VersionLabel: label, Metadata: isMetadata})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan source directory %q: %w", root, err)
	}

	keys := make([]string, 0, len(batches))
	for key := range batches {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	result := make([]ItemBatch, 0, len(keys))
	for _, key := range keys {
		result = append(result, *batches[key])
	}
	return result, nil
}

// classify decomposes a file name into the logical item name, the
// version label (empty for head) and the metadata flag. The version
// suffix is stripped first: "doc.txt.metadata.json.v2" is version 2's
// sidecar of item "doc.txt".
func classify(base string) (name, label string, isMetadata bool) {
	name = base
	if m := versionSuffixPattern.FindStringSubmatch(name); m != nil {
		name = m[1]
		label = m[2]
	}
	if strings.HasSuffix(name, metadataSuffix) {
		name = strings.TrimSuffix(name, metadataSuffix)
		isMetadata = true
	}
	return name, label, isMetadata
}
