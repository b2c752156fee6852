package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/tidwall/jsonc"
)

// document is the on-disk shape: {"context": {"<dir>": {"<key>": "<value>"}}}.
type document struct {
	Context map[string]map[string]string `json:"context"`
}

// EmptyDocument is the serialized form of a store with no entries.
var EmptyDocument = []byte("{\n  \"context\": {}\n}\n")

// decode parses a config file. Comments and trailing commas are stripped
// first so hand-edited files still load. Whitespace-only input is an empty
// store. Directory keys are cleaned; keys that clean to the same directory
// are merged in sorted order of their raw spelling.
func decode(raw []byte) (map[string]map[string]string, error) {
	js := jsonc.ToJSON(raw)
	data := make(map[string]map[string]string)
	if len(bytes.TrimSpace(js)) == 0 {
		return data, nil
	}

	var doc document
	if err := json.Unmarshal(js, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	rawPaths := make([]string, 0, len(doc.Context))
	for p := range doc.Context {
		rawPaths = append(rawPaths, p)
	}
	sort.Strings(rawPaths)

	for _, p := range rawPaths {
		entries := doc.Context[p]
		if len(entries) == 0 {
			continue
		}
		dir := filepath.Clean(p)
		m, ok := data[dir]
		if !ok {
			m = make(map[string]string, len(entries))
			data[dir] = m
		}
		for k, v := range entries {
			m[k] = v
		}
	}
	return data, nil
}

// encode renders data as an indented document with sorted keys.
func encode(data map[string]map[string]string) ([]byte, error) {
	if data == nil {
		data = make(map[string]map[string]string)
	}
	b, err := json.MarshalIndent(document{Context: data}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}
