package metadata

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSidecar(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.txt.metadata.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestJSONLoaderLoad(t *testing.T) {
	t.Run("FullRecord", func(t *testing.T) {
		path := writeSidecar(t, `{
			"type": "cm:content",
			"namespace": "cm",
			"parent_association": "cm:contains",
			"aspects": ["cm:versionable", "cm:titled", "cm:versionable"],
			"properties": {"cm:title": "Annual Report", "cm:revision": 3}
		}`)

		record, err := NewJSONLoader().Load(path)
		require.NoError(t, err)

		assert.Equal(t, "cm:content", record.Type)
		assert.Equal(t, "cm", record.Namespace)
		assert.Equal(t, "cm:contains", record.ParentAssoc)
		// Duplicates collapsed, sorted
		assert.Equal(t, []string{"cm:titled", "cm:versionable"}, record.Aspects)
		assert.Len(t, record.Properties, 2)
		assert.Equal(t, "Annual Report", record.Properties["cm:title"])
	})

	t.Run("LooselyTypedScalars", func(t *testing.T) {
		path := writeSidecar(t, `{"type": 42, "aspects": [7, ""]}`)

		record, err := NewJSONLoader().Load(path)
		require.NoError(t, err)

		assert.Equal(t, "42", record.Type)
		assert.Equal(t, []string{"7"}, record.Aspects)
		assert.Empty(t, record.Namespace)
		assert.NotNil(t, record.Properties)
		assert.Empty(t, record.Properties)
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		path := writeSidecar(t, `{"type": `)

		record, err := NewJSONLoader().Load(path)
		assert.Nil(t, record)

		var parseErr *ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, path, parseErr.Path)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := NewJSONLoader().Load(filepath.Join(t.TempDir(), "absent.json"))

		var parseErr *ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}
