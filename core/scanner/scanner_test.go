package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, root string, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		base     string
		name     string
		label    string
		metadata bool
	}{
		{"doc.txt", "doc.txt", "", false},
		{"doc.txt.metadata.json", "doc.txt", "", true},
		{"doc.txt.v1", "doc.txt", "1", false},
		{"doc.txt.v1.10", "doc.txt", "1.10", false},
		{"doc.txt.metadata.json.v2", "doc.txt", "2", true},
		{"archive.tar.gz", "archive.tar.gz", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			name, label, isMetadata := classify(tt.base)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.label, label)
			assert.Equal(t, tt.metadata, isMetadata)
		})
	}
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "doc.txt")
	touch(t, root, "doc.txt.metadata.json")
	touch(t, root, "doc.txt.v1")
	touch(t, root, "doc.txt.metadata.json.v1")
	touch(t, root, "reports/q1.pdf")

	batches, err := Scan(root)
	require.NoError(t, err)

	byName := make(map[string]ItemBatch)
	for _, batch := range batches {
		byName[batch.RelativePath+"|"+batch.Name] = batch
	}

	doc, ok := byName["|doc.txt"]
	require.True(t, ok)
	assert.Len(t, doc.Files, 4)

	// The reports folder is itself an item, preceding its child.
	folder, ok := byName["|reports"]
	require.True(t, ok)
	assert.Len(t, folder.Files, 1)

	child, ok := byName["reports|q1.pdf"]
	require.True(t, ok)
	assert.Equal(t, "reports", child.RelativePath)

	// Sorted by repository path: parents before children.
	var order []string
	for _, batch := range batches {
		order = append(order, batch.RelativePath+"|"+batch.Name)
	}
	assert.Equal(t, []string{"|doc.txt", "|reports", "reports|q1.pdf"}, order)
}

func TestScanMissingRoot(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
