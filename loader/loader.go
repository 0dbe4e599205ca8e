// Package loader parses and serializes loader.conf, the single
// systemd-boot policy file selecting the default entry and the boot
// menu timeout.
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Parse failure kinds, matchable with errors.Is.
var (
	// ErrNotAFile means the path exists but is not a regular file.
	ErrNotAFile = errors.New("loader conf is not a file")
	// ErrNoValueForDefault means a default directive had no value token.
	ErrNoValueForDefault = errors.New("default was defined without a value")
	// ErrNoValueForTimeout means a timeout directive had no value token.
	ErrNoValueForTimeout = errors.New("timeout was defined without a value")
)

// OpenError reports a failure to open loader.conf for reading.
type OpenError struct {
	Err error
}

func (e *OpenError) Error() string { return "error opening loader file: " + e.Err.Error() }

func (e *OpenError) Unwrap() error { return e.Err }

// LineError reports a read failure partway through loader.conf.
type LineError struct {
	Err error
}

func (e *LineError) Error() string { return "error reading line in loader conf: " + e.Err.Error() }

func (e *LineError) Unwrap() error { return e.Err }

// TimeoutValueError reports a timeout directive whose value is not a
// non-negative integer. Value holds the offending text.
type TimeoutValueError struct {
	Value string
}

func (e *TimeoutValueError) Error() string {
	return fmt.Sprintf("timeout was defined with a value (%s) which is not a number", e.Value)
}

// Conf is the parsed loader policy. Both fields are optional in the
// file; the zero value is the policy of a missing loader.conf.
type Conf struct {
	// Default names the default entry's identifier; empty when not set.
	// Whether it refers to an existing entry is not checked here.
	Default string
	// Timeout is the boot menu timeout in seconds; nil when not set.
	Timeout *uint
}

// Parse reads the loader policy from path. A path that does not exist
// yields the zero Conf and no error. The grammar matches the entry
// file grammar: one directive per line, whitespace-split fields, the
// first field naming the directive (default or timeout), unknown
// directives ignored, last occurrence winning.
func Parse(path string) (Conf, error) {
	var conf Conf

	info, err := os.Stat(path)
	if err != nil {
		return conf, nil
	}
	if !info.Mode().IsRegular() {
		return conf, ErrNotAFile
	}

	f, err := os.Open(path)
	if err != nil {
		return conf, &OpenError{Err: err}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "default":
			if len(fields) < 2 {
				return Conf{}, ErrNoValueForDefault
			}
			conf.Default = fields[1]
		case "timeout":
			if len(fields) < 2 {
				return Conf{}, ErrNoValueForTimeout
			}
			secs, err := strconv.ParseUint(fields[1], 10, 32)
			if err != nil {
				return Conf{}, &TimeoutValueError{Value: fields[1]}
			}
			t := uint(secs)
			conf.Timeout = &t
		}
	}
	if err := scanner.Err(); err != nil {
		return Conf{}, &LineError{Err: err}
	}

	return conf, nil
}

// WriteTo writes the policy in its normalized file form: default then
// timeout, each only when set. An all-empty Conf writes nothing.
func (c Conf) WriteTo(w io.Writer) (int64, error) {
	var total int64

	if c.Default != "" {
		n, err := fmt.Fprintf(w, "default %s\n", c.Default)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}

	if c.Timeout != nil {
		n, err := fmt.Fprintf(w, "timeout %d\n", *c.Timeout)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}

	return total, nil
}
