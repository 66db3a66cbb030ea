package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidAssignment is returned for --set values without a field name.
var ErrInvalidAssignment = errors.New("assignment must be name=value")

// Assignment is one --set name=value pair.
type Assignment struct {
	Name  string
	Value string
}

// LoadFormFile reads a schema or prefill file. JSON is returned verbatim so
// that the form receives exactly the file's text; .yaml and .yml files are
// converted to JSON. "-" reads standard input.
func LoadFormFile(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		out, err := yamlToJSON(data)
		if err != nil {
			return "", fmt.Errorf("convert %s: %w", path, err)
		}
		return out, nil
	default:
		return string(data), nil
	}
}

func yamlToJSON(data []byte) (string, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return "", err
	}
	if doc == nil {
		return "", nil
	}
	out, err := json.Marshal(jsonCompatible(doc))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// jsonCompatible rewrites map[any]any nodes, which yaml produces for
// non-string keys, into map[string]any.
func jsonCompatible(v any) any {
	switch node := v.(type) {
	case map[string]any:
		for k, child := range node {
			node[k] = jsonCompatible(child)
		}
		return node
	case map[any]any:
		out := make(map[string]any, len(node))
		for k, child := range node {
			out[fmt.Sprint(k)] = jsonCompatible(child)
		}
		return out
	case []any:
		for i, child := range node {
			node[i] = jsonCompatible(child)
		}
		return node
	default:
		return v
	}
}

// ParseAssignments parses name=value pairs. Values may contain '='.
func ParseAssignments(pairs []string) ([]Assignment, error) {
	out := make([]Assignment, 0, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidAssignment, pair)
		}
		out = append(out, Assignment{Name: name, Value: value})
	}
	return out, nil
}
