// Package document reads and writes the JSON trees exchanged between pipeline
// stages. Trees are plain map[string]any values; JSON numbers are kept as
// json.Number so integers survive a round trip unchanged.
package document

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	"birmerge/internal/domain"
)

// Tree is a decoded JSON object.
type Tree = map[string]any

const indent = "    "

// Load reads a JSON or YAML document from path. The format is chosen by file
// extension; anything that is not .yaml or .yml is treated as JSON.
func Load(path string) (Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", domain.ErrFileIO, path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeYAML(data)
	default:
		return Decode(data)
	}
}

// Decode parses a JSON object, keeping numbers as json.Number.
func Decode(data []byte) (Tree, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var tree Tree
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("decoding json: %w", err)
	}
	if tree == nil {
		return nil, fmt.Errorf("decoding json: document is not an object")
	}
	return tree, nil
}

// DecodeYAML parses a YAML mapping and normalizes it to the same shape Decode
// produces: string keys, []any sequences and json.Number numbers.
func DecodeYAML(data []byte) (Tree, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("decoding yaml: document is not a mapping")
	}
	tree, _ := normalize(raw).(Tree)
	return tree, nil
}

// Encode renders a tree with four-space indentation and a trailing newline.
// HTML characters are written as-is.
func Encode(tree Tree) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(tree); err != nil {
		return nil, fmt.Errorf("encoding json: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes tree to path, creating parent directories as needed.
func Save(path string, tree Tree) error {
	data, err := Encode(tree)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: creating %s: %w", domain.ErrFileIO, dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %w", domain.ErrFileIO, path, err)
	}
	return nil
}

// ResultFileName returns the result file name for an input file:
// the input base name without its extension plus "_updated_target_file.json".
func ResultFileName(inputPath string) string {
	return BaseName(inputPath) + domain.ResultFileSuffix
}

// BaseName returns the file name of path without directory or extension.
func BaseName(path string) string {
	base := filepath.Base(path)
	if trimmed := strings.TrimSuffix(base, filepath.Ext(base)); trimmed != "" {
		return trimmed
	}
	return base
}

func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalize(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return json.Number(fmt.Sprint(val))
	case float32, float64:
		return json.Number(fmt.Sprint(val))
	default:
		return v
	}
}
