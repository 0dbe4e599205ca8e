// Package report renders a loaded boot configuration as a generic
// order-preserving tree, for serialization by the per-format
// subpackages.
package report

import (
	"strings"

	"github.com/iancoleman/orderedmap"

	"github.com/efikit/sdbootconf"
)

// Serializer writes a boot-state tree in one output format.
type Serializer interface {
	// Serialize renders a tree produced by Tree.
	Serialize(tree *orderedmap.OrderedMap) ([]byte, error)
}

// Tree converts a loaded configuration into a two-level tree:
//
//	loader:  default and timeout, each only when set
//	entries: one node per entry keyed by id, in load order, with
//	         title, linux, initrd (when set) and the space-joined
//	         options (when non-empty)
func Tree(c *sdbootconf.Conf) *orderedmap.OrderedMap {
	root := orderedmap.New()

	loaderNode := orderedmap.New()
	if c.Loader.Default != "" {
		loaderNode.Set("default", c.Loader.Default)
	}
	if c.Loader.Timeout != nil {
		loaderNode.Set("timeout", int64(*c.Loader.Timeout))
	}
	root.Set("loader", loaderNode)

	entriesNode := orderedmap.New()
	for _, e := range c.Entries {
		node := orderedmap.New()
		node.Set("title", e.Title)
		node.Set("linux", e.Linux)
		if e.Initrd != "" {
			node.Set("initrd", e.Initrd)
		}
		if len(e.Options) > 0 {
			node.Set("options", strings.Join(e.Options, " "))
		}
		entriesNode.Set(e.ID, node)
	}
	root.Set("entries", entriesNode)

	return root
}
