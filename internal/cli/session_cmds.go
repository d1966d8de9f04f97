package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jling-NM/CACTI-sub000/internal/legacy"
	"github.com/jling-NM/CACTI-sub000/internal/session"
	"github.com/jling-NM/CACTI-sub000/internal/sqlite"
	"github.com/jling-NM/CACTI-sub000/pkg/types"
)

func newInitCmd(a *app) *cobra.Command {
	var audio string
	cmd := &cobra.Command{
		Use:   "init <session.cacti>",
		Short: "Create an empty session store",
		Long: `Create a new session store file with the full schema and record the
audio file it codes. Fails if the file already exists.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("session %s: %w", path, os.ErrExist)
			}

			ctx := cmd.Context()
			store, err := sqlite.Open(ctx, path, sqlite.WithLogger(a.logger))
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.SetAttribute(ctx, sqlite.AttrSourceAudioFilePath, audio); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created session %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&audio, "audio", "", "audio file the session codes")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "import <transcript.casaa>",
		Short: "Import a legacy transcript into a session store",
		Long: `Read a legacy tab-separated transcript and write its utterances into a
session store. Ratings and notes already in the store are kept.

The store defaults to the transcript path with a .cacti extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			if out == "" {
				out = strings.TrimSuffix(src, filepath.Ext(src)) + sqlite.SessionExt
			}

			seq := session.NewSequence()
			audio, err := legacy.LoadTranscript(src, a.cats.Codes, seq)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := sqlite.Open(ctx, out, sqlite.WithLogger(a.logger))
			if err != nil {
				return err
			}
			defer store.Close()

			ratings, err := sqlite.LoadRatings(ctx, store, a.cats.Globals)
			if err != nil {
				return err
			}
			notes, err := store.Attribute(ctx, sqlite.AttrGlobalNotes)
			if err != nil && !errors.Is(err, types.ErrNotFound) {
				return err
			}
			if err := sqlite.SaveSession(ctx, store, seq, ratings, audio, notes); err != nil {
				return err
			}

			a.logger.Info("transcript imported", "transcript", src, "session", out, "utterances", seq.Size())
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d utterances into %s\n", seq.Size(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "session store to write")
	return cmd
}

func newRateCmd(a *app) *cobra.Command {
	var (
		notes  string
		report bool
	)
	cmd := &cobra.Command{
		Use:   "rate <session.cacti> [NAME=VALUE...]",
		Short: "Set global ratings and notes",
		Long: `Set one or more global ratings on a session store. Each value must lie in
the range the catalog defines for that global. With --report the ratings are
also written to a legacy .global.txt file next to the session.`,
		Example: `  cacti rate client01.cacti EMPATHY=4 PARTNERSHIP=3
  cacti rate client01.cacti --notes "strong rapport" --report`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			assignments, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := openExisting(cmd, a, path)
			if err != nil {
				return err
			}
			defer store.Close()

			ratings, err := sqlite.LoadRatings(ctx, store, a.cats.Globals)
			if err != nil {
				return err
			}
			for _, as := range assignments {
				if err := ratings.SetRatingByName(as.name, as.value); err != nil {
					return err
				}
			}

			err = store.WithTx(ctx, func(tx *sqlite.Tx) error {
				for _, e := range ratings.Entries() {
					if _, err := tx.PutGlobal(ctx, e.Code.Name, e.Rating); err != nil {
						return err
					}
				}
				if cmd.Flags().Changed("notes") {
					return tx.SetAttribute(ctx, sqlite.AttrGlobalNotes, notes)
				}
				return nil
			})
			if err != nil {
				return err
			}

			if report {
				if err := writeRatingsReport(cmd, store, ratings); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), ratings.ReportText())
			return nil
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "replace the session notes")
	cmd.Flags().BoolVar(&report, "report", false, "also write a legacy global ratings file")
	return cmd
}

func writeRatingsReport(cmd *cobra.Command, store *sqlite.Store, ratings *session.Ratings) error {
	ctx := cmd.Context()
	audio, err := store.Attribute(ctx, sqlite.AttrSourceAudioFilePath)
	if err != nil {
		return err
	}
	notes, err := store.Attribute(ctx, sqlite.AttrGlobalNotes)
	if err != nil {
		return err
	}
	path := strings.TrimSuffix(store.Path(), filepath.Ext(store.Path())) + legacy.RatingsExt
	if err := legacy.WriteRatings(path, audio, ratings, notes); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

type assignment struct {
	name  string
	value int
}

func parseAssignments(args []string) ([]assignment, error) {
	out := make([]assignment, 0, len(args))
	for _, arg := range args {
		name, raw, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: invalid rating %q (expected NAME=VALUE)", errUsage, arg)
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: rating %s: %v", errUsage, name, err)
		}
		out = append(out, assignment{name: name, value: v})
	}
	return out, nil
}

// openExisting opens a session store for writing without creating it.
func openExisting(cmd *cobra.Command, a *app, path string) (*sqlite.Store, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", sqlite.ErrSessionNotFound, path)
	}
	return sqlite.Open(cmd.Context(), path, sqlite.WithLogger(a.logger))
}
