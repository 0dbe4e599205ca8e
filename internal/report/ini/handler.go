// Package ini renders a boot-state tree as an INI document.
package ini

import (
	"bytes"
	"fmt"

	"github.com/iancoleman/orderedmap"
	"gopkg.in/ini.v1"

	"github.com/efikit/sdbootconf/internal/report"
)

// Handler implements report.Serializer for INI output.
type Handler struct{}

// New creates a new INI handler.
func New() *Handler {
	return &Handler{}
}

// Serialize writes the tree as INI sections. Top-level nodes become
// sections; nested nodes become dotted child sections, so each boot
// entry lands in an "entries.<id>" section.
func (h *Handler) Serialize(tree *orderedmap.OrderedMap) ([]byte, error) {
	cfg := ini.Empty()

	for _, name := range tree.Keys() {
		v, _ := tree.Get(name)
		node, ok := v.(*orderedmap.OrderedMap)
		if !ok {
			continue
		}
		if err := writeSection(cfg, name, node); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := cfg.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize INI: %w", err)
	}
	return buf.Bytes(), nil
}

// writeSection fills one section, recursing into dotted child
// sections for nested nodes.
func writeSection(cfg *ini.File, name string, node *orderedmap.OrderedMap) error {
	section := cfg.Section(name)
	for _, key := range node.Keys() {
		v, _ := node.Get(key)
		if child, ok := v.(*orderedmap.OrderedMap); ok {
			if err := writeSection(cfg, name+"."+key, child); err != nil {
				return err
			}
			continue
		}
		if _, err := section.NewKey(key, toString(v)); err != nil {
			return fmt.Errorf("failed to create key %q: %w", key, err)
		}
	}
	return nil
}

// toString converts any scalar value to its string representation.
// INI files only support string values.
func toString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// Ensure Handler implements report.Serializer.
var _ report.Serializer = (*Handler)(nil)
