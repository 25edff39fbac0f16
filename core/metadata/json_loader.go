package metadata

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/harked/alfresco-bulk-import/core/utils"
)

// sidecarDocument is the on-disk shape of a JSON metadata sidecar.
// Scalar fields are decoded loosely and coerced afterwards, since
// hand-written sidecars frequently quote numbers or vice versa.
type sidecarDocument struct {
	Type        any            `json:"type"`
	Namespace   any            `json:"namespace"`
	ParentAssoc any            `json:"parent_association"`
	Aspects     []any          `json:"aspects"`
	Properties  map[string]any `json:"properties"`
}

// JSONLoader loads metadata records from JSON sidecar files.
type JSONLoader struct{}

// NewJSONLoader creates a loader for JSON metadata sidecars.
func NewJSONLoader() *JSONLoader {
	return &JSONLoader{}
}

// Load reads and parses the sidecar at path. Parse and read failures
// are reported as *ParseError.
func (l *JSONLoader) Load(path string) (*Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	var doc sidecarDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	record := &Record{
		Type:        utils.ToString(doc.Type),
		Namespace:   utils.ToString(doc.Namespace),
		ParentAssoc: utils.ToString(doc.ParentAssoc),
		Properties:  doc.Properties,
	}
	if record.Properties == nil {
		record.Properties = map[string]any{}
	}

	// Deduplicate aspects; sidecar authors repeat them surprisingly often.
	seen := make(map[string]struct{}, len(doc.Aspects))
	for _, a := range doc.Aspects {
		name := utils.ToString(a)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		record.Aspects = append(record.Aspects, name)
	}
	sort.Strings(record.Aspects)

	return record, nil
}
