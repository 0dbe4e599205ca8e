// Package toml renders a boot-state tree as TOML.
package toml

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/iancoleman/orderedmap"

	"github.com/efikit/sdbootconf/internal/report"
)

// Handler implements report.Serializer for TOML output.
type Handler struct{}

// New creates a new TOML handler.
func New() *Handler {
	return &Handler{}
}

// Serialize writes the tree as TOML tables.
func (h *Handler) Serialize(tree *orderedmap.OrderedMap) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(toPlain(tree)); err != nil {
		return nil, fmt.Errorf("failed to serialize TOML: %w", err)
	}
	return buf.Bytes(), nil
}

// toPlain strips ordering for the TOML encoder, which sorts keys
// alphabetically itself.
func toPlain(v any) any {
	switch val := v.(type) {
	case *orderedmap.OrderedMap:
		m := make(map[string]any, len(val.Keys()))
		for _, k := range val.Keys() {
			child, _ := val.Get(k)
			m[k] = toPlain(child)
		}
		return m
	default:
		return val
	}
}

// Ensure Handler implements report.Serializer.
var _ report.Serializer = (*Handler)(nil)
