// Package json renders a boot-state tree as JSON.
package json

import (
	"encoding/json"
	"fmt"

	"github.com/iancoleman/orderedmap"

	"github.com/efikit/sdbootconf/internal/report"
)

// Handler implements report.Serializer for JSON output.
type Handler struct{}

// New creates a new JSON handler.
func New() *Handler {
	return &Handler{}
}

// Serialize writes the tree as indented JSON with a trailing newline.
// Key order follows the tree; orderedmap preserves it through
// MarshalJSON.
func (h *Handler) Serialize(tree *orderedmap.OrderedMap) ([]byte, error) {
	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Ensure Handler implements report.Serializer.
var _ report.Serializer = (*Handler)(nil)
