// Package kcmdline exposes the running kernel's command line as a
// cached, whitespace-split token sequence.
package kcmdline

import (
	"os"
	"strings"
	"sync"
)

// DefaultPath is where Linux exposes the kernel command line.
const DefaultPath = "/proc/cmdline"

// Source reads and tokenizes one command-line file, at most once for
// its lifetime. It is safe for concurrent use: racing first calls to
// Tokens perform a single read and every caller observes the same
// result. Construct with New; the zero value reads the empty path.
type Source struct {
	path   string
	once   sync.Once
	tokens []string
}

// System is the process-wide view of /proc/cmdline.
var System = New(DefaultPath)

// New returns a Source backed by the command-line file at path.
func New(path string) *Source {
	return &Source{path: path}
}

// Tokens returns the whitespace-split tokens of the command line,
// reading the file on first call. An absent or unreadable file yields
// an empty sequence, never an error. Callers must treat the returned
// slice as read-only.
func (s *Source) Tokens() []string {
	s.once.Do(func() {
		data, err := os.ReadFile(s.path)
		if err != nil {
			return
		}
		s.tokens = strings.Fields(string(data))
	})
	return s.tokens
}
