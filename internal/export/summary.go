package export

import (
	"encoding/csv"
	"strconv"

	"github.com/jling-NM/CACTI-sub000/internal/fileutil"
	"github.com/jling-NM/CACTI-sub000/pkg/catalog"
)

// summaryHeader lists the summary columns: session and audio file, the
// utterance count, one rating column per global, one count column per code.
func summaryHeader(cats *catalog.Set) []string {
	header := []string{"session_file", "audio_file", "utterance_count"}
	for _, g := range cats.Globals.Codes() {
		header = append(header, g.Name)
	}
	for _, c := range cats.Codes.Codes() {
		header = append(header, c.Name)
	}
	return header
}

func summaryRow(cats *catalog.Set, rep *report) []string {
	row := []string{rep.SessionFile, rep.AudioFile, strconv.Itoa(len(rep.Utterances))}
	for _, e := range rep.Ratings.Entries() {
		row = append(row, strconv.Itoa(e.Rating))
	}
	counts := make(map[string]int)
	for _, u := range rep.Utterances {
		if u.CodeID.Valid {
			counts[u.CodeName]++
		}
	}
	for _, c := range cats.Codes.Codes() {
		row = append(row, strconv.Itoa(counts[c.Name]))
	}
	return row
}

// appendSummary appends one row for rep, writing the header first when the
// file is new.
func appendSummary(path string, cats *catalog.Set, rep *report) error {
	f, fresh, err := fileutil.AppendFile(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(summaryHeader(cats)); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Write(summaryRow(cats, rep)); err != nil {
		f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
