package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

type codeView struct {
	Value int    `json:"value"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

type globalView struct {
	codeView
	Default int `json:"default"`
	Min     int `json:"min"`
	Max     int `json:"max"`
}

func newCodesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "codes",
		Short: "List the behavioral codes and globals of the active catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			codes := make([]codeView, 0, a.cats.Codes.NumCodes())
			for _, c := range a.cats.Codes.Codes() {
				codes = append(codes, codeView{Value: c.Value, Name: c.Name, Label: c.Label})
			}
			globals := make([]globalView, 0, a.cats.Globals.NumCodes())
			for _, g := range a.cats.Globals.Codes() {
				globals = append(globals, globalView{
					codeView: codeView{Value: g.Value, Name: g.Name, Label: g.Label},
					Default:  g.DefaultRating,
					Min:      g.MinRating,
					Max:      g.MaxRating,
				})
			}

			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), struct {
					Codes   []codeView   `json:"codes"`
					Globals []globalView `json:"globals"`
				}{codes, globals})
			}

			fmt.Fprintln(cmd.OutOrStdout(), codeTable(codes))
			fmt.Fprintln(cmd.OutOrStdout(), globalTable(globals))
			return nil
		},
	}
}
