// Package templvars holds the template-variable substitution table applied
// to raw content before sanitization. The store is built once per
// conversion run and is read-only afterward, so one instance may be shared
// across a whole batch.
package templvars

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store is an immutable substitution table.
type Store struct {
	replacer *strings.Replacer
	n        int
}

// New builds a store from an in-memory map. Keys are replaced verbatim.
func New(vars map[string]string) *Store {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, k, v)
	}
	return &Store{replacer: strings.NewReplacer(pairs...), n: len(vars)}
}

// Load reads a flat key: value YAML file.
func Load(path string) (*Store, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("templvars: %w", err)
	}
	var vars map[string]string
	if err := yaml.Unmarshal(b, &vars); err != nil {
		return nil, fmt.Errorf("templvars: parse %s: %w", path, err)
	}
	return New(vars), nil
}

// Apply substitutes every known key in the text.
func (s *Store) Apply(text string) string {
	if s == nil || s.n == 0 {
		return text
	}
	return s.replacer.Replace(text)
}

// Len reports the number of substitution keys.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return s.n
}
