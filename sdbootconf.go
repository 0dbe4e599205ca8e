// Package sdbootconf manages the systemd-boot configuration tree of
// an EFI system partition: the loader.conf policy file and the boot
// entry definitions under loader/entries.
//
// The leaf formats are handled by the entry and loader subpackages;
// this package composes them into a loaded collection with lookup,
// default-entry validation, current-boot detection and write-back.
package sdbootconf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/efikit/sdbootconf/entry"
	"github.com/efikit/sdbootconf/kcmdline"
	"github.com/efikit/sdbootconf/loader"
)

// ErrNotFound is returned when a named entry is not in the collection.
var ErrNotFound = errors.New("entry not found")

// EntryError wraps a per-entry parse failure with the file it came
// from. A single malformed entry fails the whole directory load.
type EntryError struct {
	Path string
	Err  error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("error parsing entry at %s: %v", e.Path, e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }

// LoaderError wraps a loader.conf parse failure with its path.
type LoaderError struct {
	Path string
	Err  error
}

func (e *LoaderError) Error() string {
	return fmt.Sprintf("error parsing loader conf at %s: %v", e.Path, e.Err)
}

func (e *LoaderError) Unwrap() error { return e.Err }

// WriteError wraps a failure writing a configuration file back.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("error writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// DefaultState classifies the loader policy's default entry reference
// against the loaded collection.
type DefaultState int

const (
	// NotDefined means loader.conf names no default entry.
	NotDefined DefaultState = iota
	// Exists means the named default entry is in the collection.
	Exists
	// DoesNotExist means the named default entry is missing.
	DoesNotExist
)

func (s DefaultState) String() string {
	switch s {
	case NotDefined:
		return "not defined"
	case Exists:
		return "exists"
	case DoesNotExist:
		return "does not exist"
	}
	return fmt.Sprintf("DefaultState(%d)", int(s))
}

// Conf aggregates the loader policy and boot entries of one EFI
// system partition.
type Conf struct {
	// ESPPath is the partition mount point, typically /boot/efi.
	ESPPath string
	// EntriesPath is the entry definitions directory, loader/entries.
	EntriesPath string
	// LoaderPath is the policy file, loader/loader.conf.
	LoaderPath string
	// Entries holds the parsed entries in directory order.
	Entries []entry.Entry
	// Loader holds the parsed policy.
	Loader loader.Conf
}

// New loads the loader configuration tree rooted at espPath.
func New(espPath string) (*Conf, error) {
	c := &Conf{
		ESPPath:     espPath,
		EntriesPath: filepath.Join(espPath, "loader", "entries"),
		LoaderPath:  filepath.Join(espPath, "loader", "loader.conf"),
	}
	if err := c.LoadConf(); err != nil {
		return nil, err
	}
	if err := c.LoadEntries(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadConf re-reads the loader policy. A missing loader.conf yields
// the empty policy, not an error.
func (c *Conf) LoadConf() error {
	conf, err := loader.Parse(c.LoaderPath)
	if err != nil {
		return &LoaderError{Path: c.LoaderPath, Err: err}
	}
	c.Loader = conf
	return nil
}

// LoadEntries re-reads every entry definition in the entries
// directory. Only regular files with a .conf extension are
// considered. The first malformed entry aborts the load with its path
// attached; the previously loaded collection is kept untouched.
func (c *Conf) LoadEntries() error {
	dirents, err := os.ReadDir(c.EntriesPath)
	if err != nil {
		return fmt.Errorf("error reading loader entries directory: %w", err)
	}

	entries := make([]entry.Entry, 0, len(dirents))
	for _, d := range dirents {
		if filepath.Ext(d.Name()) != ".conf" {
			continue
		}
		path := filepath.Join(c.EntriesPath, d.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		e, err := entry.Parse(path)
		if err != nil {
			return &EntryError{Path: path, Err: err}
		}
		entries = append(entries, e)
	}

	c.Entries = entries
	return nil
}

// EntryExists reports whether an entry with the given id is loaded.
func (c *Conf) EntryExists(id string) bool {
	return c.Get(id) != nil
}

// Get returns the loaded entry with the given id, or nil. The pointer
// refers into the collection, so a caller may edit the entry and then
// persist it with OverwriteEntryConf.
func (c *Conf) Get(id string) *entry.Entry {
	for i := range c.Entries {
		if c.Entries[i].ID == id {
			return &c.Entries[i]
		}
	}
	return nil
}

// DefaultEntryState reports whether the loader policy's default entry
// reference names a loaded entry.
func (c *Conf) DefaultEntryState() DefaultState {
	if c.Loader.Default == "" {
		return NotDefined
	}
	if c.EntryExists(c.Loader.Default) {
		return Exists
	}
	return DoesNotExist
}

// Current returns the first entry matching the kernel command line
// from src, or nil when none matches. Pass kcmdline.System for the
// running system.
func (c *Conf) Current(src *kcmdline.Source) *entry.Entry {
	cmdline := src.Tokens()
	for i := range c.Entries {
		if c.Entries[i].IsCurrent(cmdline) {
			return &c.Entries[i]
		}
	}
	return nil
}

// OverwriteLoaderConf rewrites loader.conf from the stored policy.
// The output is normalized; comments and formatting of the original
// file are not preserved.
func (c *Conf) OverwriteLoaderConf() error {
	if err := writeConf(c.LoaderPath, c.Loader); err != nil {
		return &WriteError{Path: c.LoaderPath, Err: err}
	}
	return nil
}

// OverwriteEntryConf rewrites the definition file of the named entry
// from its stored value. Returns ErrNotFound for an unknown id.
func (c *Conf) OverwriteEntryConf(id string) error {
	e := c.Get(id)
	if e == nil {
		return ErrNotFound
	}
	path := filepath.Join(c.EntriesPath, e.ID+".conf")
	if err := writeConf(path, *e); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// RemoveEntryConf deletes the named entry's definition file and drops
// the entry from the collection. Returns ErrNotFound for an unknown id.
func (c *Conf) RemoveEntryConf(id string) error {
	for i := range c.Entries {
		if c.Entries[i].ID != id {
			continue
		}
		path := filepath.Join(c.EntriesPath, id+".conf")
		if err := os.Remove(path); err != nil {
			return &WriteError{Path: path, Err: err}
		}
		c.Entries = append(c.Entries[:i], c.Entries[i+1:]...)
		return nil
	}
	return ErrNotFound
}

// writeConf creates or truncates path and writes src through a
// buffered writer, flushing before returning.
func writeConf(path string, src io.WriterTo) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if _, err := src.WriteTo(w); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
