package legacy

import (
	"fmt"
	"io"

	"github.com/jling-NM/CACTI-sub000/internal/fileutil"
	"github.com/jling-NM/CACTI-sub000/internal/session"
)

// RatingsExt is the file extension of global rating reports.
const RatingsExt = ".global.txt"

// WriteRatings replaces path with a global ratings report: a fixed title,
// the audio file, one "name:<TAB>rating" line per global, and a Notes
// block that is omitted entirely when notes is empty.
func WriteRatings(path, audioFile string, ratings *session.Ratings, notes string) error {
	err := fileutil.WriteAtomic(path, func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, "Global Ratings\n\n%s\t%s\n\n%s\n", audioHeader, audioFile, ratings.ReportText()); err != nil {
			return err
		}
		if notes == "" {
			return nil
		}
		_, err := fmt.Fprintf(w, "\nNotes:\n%s\n", notes)
		return err
	})
	if err != nil {
		return &IOError{Op: "write ratings", Path: path, Err: err}
	}
	return nil
}
