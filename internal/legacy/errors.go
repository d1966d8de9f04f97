// Package legacy reads and writes the flat, tab-delimited session
// transcript and the global ratings report used before the session store.
//
// The transcript format is lossy: annotations and global ratings are not
// representable in it.
package legacy

import (
	"errors"
	"fmt"
)

// ErrFormat matches every *FormatError via errors.Is.
var ErrFormat = errors.New("malformed transcript")

// IOError reports a file that could not be opened, read, or written.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// FormatError reports transcript content that does not parse. Line is
// 1-based; Err, when set, is the underlying cause.
type FormatError struct {
	Path   string
	Line   int
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrFormat) match any FormatError.
func (e *FormatError) Is(target error) bool { return target == ErrFormat }
