package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jling-NM/CACTI-sub000/internal/sqlite"
	"github.com/jling-NM/CACTI-sub000/pkg/timecode"
	"github.com/jling-NM/CACTI-sub000/pkg/types"
)

type utteranceView struct {
	ID         int64  `json:"id"`
	Time       string `json:"time"`
	TimeMillis int64  `json:"time_ms"`
	Code       string `json:"code,omitempty"`
	Annotation string `json:"annotation,omitempty"`
}

type ratingView struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
}

type sessionView struct {
	Session    string          `json:"session"`
	AudioFile  string          `json:"audio_file"`
	Notes      string          `json:"notes,omitempty"`
	Utterances []utteranceView `json:"utterances"`
	Globals    []ratingView    `json:"globals"`
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <session.cacti>",
		Short: "Display the utterances and ratings of a session store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := loadSessionView(cmd, a, args[0])
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), view)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Session: %s\nAudio:   %s\n", view.Session, view.AudioFile)
			if len(view.Utterances) == 0 {
				fmt.Fprintln(out, "No utterances")
			} else {
				fmt.Fprintln(out, utteranceTable(view.Utterances))
			}
			fmt.Fprintln(out, ratingTable(view.Globals))
			if view.Notes != "" {
				fmt.Fprintf(out, "Notes: %s\n", view.Notes)
			}
			return nil
		},
	}
}

func loadSessionView(cmd *cobra.Command, a *app, path string) (*sessionView, error) {
	ctx := cmd.Context()
	store, err := sqlite.Open(ctx, path, sqlite.ReadOnly(), sqlite.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	defer store.Close()

	rows, err := store.GetUtterances(ctx)
	if err != nil {
		return nil, err
	}
	ratings, err := sqlite.LoadRatings(ctx, store, a.cats.Globals)
	if err != nil {
		return nil, err
	}

	view := &sessionView{Session: path, Utterances: make([]utteranceView, 0, len(rows))}
	if view.AudioFile, err = attributeOrEmpty(cmd, store, sqlite.AttrSourceAudioFilePath); err != nil {
		return nil, err
	}
	if view.Notes, err = attributeOrEmpty(cmd, store, sqlite.AttrGlobalNotes); err != nil {
		return nil, err
	}
	for _, r := range rows {
		view.Utterances = append(view.Utterances, utteranceView{
			ID:         r.ID,
			Time:       timecode.Format(r.Time()),
			TimeMillis: r.TimeMarker,
			Code:       r.CodeName,
			Annotation: r.Annotation,
		})
	}
	for _, e := range ratings.Entries() {
		view.Globals = append(view.Globals, ratingView{Name: e.Code.Name, Rating: e.Rating})
	}
	return view, nil
}

func attributeOrEmpty(cmd *cobra.Command, store *sqlite.Store, name string) (string, error) {
	v, err := store.Attribute(cmd.Context(), name)
	if errors.Is(err, types.ErrNotFound) {
		return "", nil
	}
	return v, err
}
