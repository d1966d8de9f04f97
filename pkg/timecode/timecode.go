// Package timecode converts between durations and the H:MM:SS text form
// used in transcripts, reports, and the session store time markers.
package timecode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrMalformed is returned by Parse for text that is not H:MM:SS or MM:SS.
var ErrMalformed = errors.New("malformed time code")

// Format renders d as H:MM:SS. Hours are not padded; sub-second precision
// is truncated. Negative durations render as 0:00:00.
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// Parse reads H:MM:SS or MM:SS text back into a duration.
func Parse(s string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, s)
	}

	fields := make([]int64, len(parts))
	for i, p := range parts {
		if p == "" {
			return 0, fmt.Errorf("%w: %q", ErrMalformed, s)
		}
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: %q", ErrMalformed, s)
		}
		// Minutes and seconds must stay below 60; the leading field is unbounded.
		if i > 0 && n >= 60 {
			return 0, fmt.Errorf("%w: %q", ErrMalformed, s)
		}
		fields[i] = n
	}

	var h, m, sec int64
	if len(fields) == 3 {
		h, m, sec = fields[0], fields[1], fields[2]
	} else {
		m, sec = fields[0], fields[1]
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second, nil
}

// Millis returns d in whole milliseconds.
func Millis(d time.Duration) int64 {
	return d.Milliseconds()
}

// FromMillis converts a millisecond count into a duration.
func FromMillis(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
