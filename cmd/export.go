package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/localleads/leads-cli/internal/export"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <run-id>",
	Short: "Export a stored run's leads to CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		run, err := st.GetRun(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "export")
		}
		if run.Result == nil {
			return eris.Errorf("export: run %s has no result (status %s)", run.ID, run.Status)
		}

		name := exportOut
		if name == "" {
			name = export.Filename(run.Params.Location)
		}
		if name == "-" {
			return export.WriteCSV(os.Stdout, run.Result.Leads)
		}

		f, err := os.Create(name)
		if err != nil {
			return eris.Wrapf(err, "export: create %s", name)
		}
		defer f.Close() //nolint:errcheck

		if err := export.WriteCSV(f, run.Result.Leads); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %d leads to %s\n", len(run.Result.Leads), name)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path ('-' for stdout, default derived from the run's location)")
	rootCmd.AddCommand(exportCmd)
}
