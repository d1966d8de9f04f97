package export

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jling-NM/CACTI-sub000/internal/fileutil"
	"github.com/jling-NM/CACTI-sub000/internal/session"
	"github.com/jling-NM/CACTI-sub000/internal/sqlite"
	"github.com/jling-NM/CACTI-sub000/pkg/catalog"
	"github.com/jling-NM/CACTI-sub000/pkg/timecode"
	"github.com/jling-NM/CACTI-sub000/pkg/types"
)

const uncodedName = "<uncoded>"

// report is the denormalized content of one session store.
type report struct {
	SessionFile string
	AudioFile   string
	Notes       string
	Utterances  []sqlite.UtteranceRow
	Ratings     *session.Ratings
}

func readReport(ctx context.Context, s *sqlite.Store, cats *catalog.Set) (*report, error) {
	rows, err := s.GetUtterances(ctx)
	if err != nil {
		return nil, err
	}
	audio, err := optionalAttribute(ctx, s, sqlite.AttrSourceAudioFilePath)
	if err != nil {
		return nil, err
	}
	notes, err := optionalAttribute(ctx, s, sqlite.AttrGlobalNotes)
	if err != nil {
		return nil, err
	}
	ratings, err := sqlite.LoadRatings(ctx, s, cats.Globals)
	if err != nil {
		return nil, err
	}
	return &report{
		SessionFile: s.Path(),
		AudioFile:   audio,
		Notes:       notes,
		Utterances:  rows,
		Ratings:     ratings,
	}, nil
}

func optionalAttribute(ctx context.Context, s *sqlite.Store, name string) (string, error) {
	v, err := s.Attribute(ctx, name)
	if errors.Is(err, types.ErrNotFound) {
		return "", nil
	}
	return v, err
}

func codeName(row sqlite.UtteranceRow) string {
	if !row.CodeID.Valid {
		return uncodedName
	}
	return row.CodeName
}

func writeReport(path string, rep *report) error {
	return fileutil.WriteAtomic(path, func(w io.Writer) error {
		return renderReport(w, rep)
	})
}

// renderReport writes the session header, one tab-separated line per
// utterance (id, start, code, annotation), the global ratings, and notes.
func renderReport(w io.Writer, rep *report) error {
	if _, err := fmt.Fprintf(w, "Session File:\t%s\nAudio File:\t%s\n\n", rep.SessionFile, rep.AudioFile); err != nil {
		return err
	}
	for _, u := range rep.Utterances {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			u.ID, timecode.Format(u.Time()), codeName(u), u.Annotation); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "\nGlobal Ratings\n\n%s\n", rep.Ratings.ReportText()); err != nil {
		return err
	}
	if rep.Notes != "" {
		if _, err := fmt.Fprintf(w, "\nNotes:\n%s\n", rep.Notes); err != nil {
			return err
		}
	}
	return nil
}
