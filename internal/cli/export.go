package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jling-NM/CACTI-sub000/internal/export"
	"github.com/jling-NM/CACTI-sub000/internal/paths"
)

type exportView struct {
	RunID    string   `json:"run_id"`
	Summary  string   `json:"summary"`
	Exported []string `json:"exported"`
	Skipped  []string `json:"skipped"`
	Failed   []string `json:"failed"`
}

func newExportCmd(a *app) *cobra.Command {
	var dest string
	cmd := &cobra.Command{
		Use:   "export <session.cacti|dir>...",
		Short: "Export session stores to text reports and a CSV summary",
		Long: `Write one <name>_export.txt report per session store and append one row per
session to casaa_summary_export_<timestamp>.csv in the destination directory.
Directories are expanded to the .cacti files directly inside them.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := paths.ResolveExportDir(dest, a.cfg.ExportDir)
			if err != nil {
				return fmt.Errorf("resolve export dir: %w", err)
			}

			exp := export.New(a.cats, export.WithLogger(a.logger))
			if err := exp.SetDestination(dir); err != nil {
				return err
			}
			res, err := exp.Export(cmd.Context(), args)
			if err != nil {
				return err
			}

			view := exportView{
				RunID:    exp.RunID(),
				Summary:  exp.SummaryPath(),
				Exported: res.Exported,
				Skipped:  res.Skipped,
			}
			for _, f := range res.Failed {
				view.Failed = append(view.Failed, f.Error())
			}

			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				if err := writeJSON(out, view); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(out, "Exported %d, skipped %d, failed %d\nSummary: %s\n",
					len(res.Exported), len(res.Skipped), len(res.Failed), view.Summary)
				for _, f := range view.Failed {
					fmt.Fprintf(cmd.ErrOrStderr(), "failed: %s\n", f)
				}
			}
			if len(res.Failed) > 0 {
				return fmt.Errorf("%d session(s) failed to export", len(res.Failed))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dest, "dest", "d", "", "destination directory (default: export_dir config, then $"+paths.EnvExportDir+", then ./cacti-export)")
	return cmd
}
