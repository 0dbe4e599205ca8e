// Package entry parses and serializes systemd-boot entry files, the
// per-boot-option definitions found under loader/entries on the EFI
// system partition.
package entry

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Parse failure kinds. All are matchable with errors.Is against the
// error returned by Parse.
var (
	// ErrNotAFile means the path does not name a regular file.
	ErrNotAFile = errors.New("entry is not a file")
	// ErrNoFilename means no file name could be derived from the path.
	ErrNoFilename = errors.New("entry does not have a file name")
	// ErrFilenameNotUTF8 means the file name is not valid UTF-8 and
	// cannot become an entry identifier.
	ErrFilenameNotUTF8 = errors.New("entry has a file name that is not UTF-8")
	// ErrNoValueForLinux means a linux directive had no value token.
	ErrNoValueForLinux = errors.New("linux was defined without a value")
	// ErrNoValueForInitrd means an initrd directive had no value token.
	ErrNoValueForInitrd = errors.New("initrd was defined without a value")
	// ErrMissingTitle means no non-empty title remained after the scan.
	ErrMissingTitle = errors.New("title field is missing")
	// ErrMissingLinux means no non-empty linux remained after the scan.
	ErrMissingLinux = errors.New("linux field is missing")
)

// OpenError reports a failure to open an entry file for reading.
type OpenError struct {
	Err error
}

func (e *OpenError) Error() string { return "error opening entry file: " + e.Err.Error() }

func (e *OpenError) Unwrap() error { return e.Err }

// LineError reports a read failure partway through an entry file.
type LineError struct {
	Err error
}

func (e *LineError) Error() string { return "error reading line in entry file: " + e.Err.Error() }

func (e *LineError) Unwrap() error { return e.Err }

// Entry is one parsed boot entry definition.
//
// A successfully parsed Entry always has a non-empty Title and Linux.
// Parse never modifies the source file; callers may edit a working
// copy and write it back with WriteTo.
type Entry struct {
	// ID is the entry's stable identifier, the definition file's base
	// name without its extension.
	ID string
	// Title is the human-readable name shown in the boot menu.
	Title string
	// Linux is the path of the kernel image on the EFI system partition.
	Linux string
	// Initrd is the path of the initrd image; empty when not set.
	Initrd string
	// Options are the kernel command-line tokens, in order.
	Options []string
}

// Parse reads a boot entry definition from path.
//
// The grammar is one directive per line, fields split on whitespace,
// with the first field naming the directive: title (rest of line,
// rejoined with single spaces), linux (one value token), initrd (one
// value token), options (all remaining tokens). Unknown directives
// and blank lines are ignored. A repeated directive replaces the
// earlier occurrence.
func Parse(path string) (Entry, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return Entry{}, ErrNotAFile
	}

	base := filepath.Base(path)
	if base == "." || base == string(os.PathSeparator) {
		return Entry{}, ErrNoFilename
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		// Dotfiles such as ".conf" have no separate extension.
		stem = base
	}
	if !utf8.ValidString(stem) {
		return Entry{}, ErrFilenameNotUTF8
	}

	f, err := os.Open(path)
	if err != nil {
		return Entry{}, &OpenError{Err: err}
	}
	defer f.Close()

	e := Entry{ID: stem}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "title":
			e.Title = strings.Join(fields[1:], " ")
		case "linux":
			if len(fields) < 2 {
				return Entry{}, ErrNoValueForLinux
			}
			e.Linux = fields[1]
		case "initrd":
			if len(fields) < 2 {
				return Entry{}, ErrNoValueForInitrd
			}
			e.Initrd = fields[1]
		case "options":
			e.Options = fields[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return Entry{}, &LineError{Err: err}
	}

	if e.Title == "" {
		return Entry{}, ErrMissingTitle
	}
	if e.Linux == "" {
		return Entry{}, ErrMissingLinux
	}
	return e, nil
}

// ExpectedCmdline returns the command-line tokens this entry is
// expected to boot with: the initrd as an initrd= token with forward
// slashes flipped to backslashes (the form EFI loaders record),
// followed by the options in order.
func (e Entry) ExpectedCmdline() []string {
	var tokens []string
	if e.Initrd != "" {
		tokens = append(tokens, "initrd="+strings.ReplaceAll(e.Initrd, "/", `\`))
	}
	return append(tokens, e.Options...)
}

// IsCurrent reports whether this entry matches the command line the
// running kernel was booted with.
//
// Tokens are compared positionally from the start of both sequences,
// up to the length of the shorter one. Live tokens past the expected
// sequence are ignored, as are expected tokens past the live
// sequence. A command line the kernel has prefixed with its own
// tokens (root= and friends) therefore never matches; see the package
// tests for the pinned behavior.
func (e Entry) IsCurrent(cmdline []string) bool {
	expected := e.ExpectedCmdline()
	for i := 0; i < len(cmdline) && i < len(expected); i++ {
		if cmdline[i] != expected[i] {
			return false
		}
	}
	return true
}

// WriteTo writes the entry in its normalized file form: title, linux,
// initrd when set, then the options. The options directive is written
// with a trailing colon; on input the parser accepts only the bare
// key, which matches the historical on-disk form.
func (e Entry) WriteTo(w io.Writer) (int64, error) {
	var total int64

	n, err := fmt.Fprintf(w, "title %s\n", e.Title)
	total += int64(n)
	if err != nil {
		return total, err
	}

	n, err = fmt.Fprintf(w, "linux %s\n", e.Linux)
	total += int64(n)
	if err != nil {
		return total, err
	}

	if e.Initrd != "" {
		n, err = fmt.Fprintf(w, "initrd %s\n", e.Initrd)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}

	if len(e.Options) > 0 {
		n, err = fmt.Fprintf(w, "options: %s\n", strings.Join(e.Options, " "))
		total += int64(n)
		if err != nil {
			return total, err
		}
	}

	return total, nil
}
