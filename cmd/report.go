package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/skyreach/ssot-cli/internal/export"
	"github.com/skyreach/ssot-cli/internal/store"
)

var reportID string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the quality report for a stored snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		id := reportID
		if id == "" {
			metas, err := st.ListSnapshots(ctx, 1)
			if err != nil {
				return err
			}
			if len(metas) == 0 {
				return eris.New("report: no snapshots stored")
			}
			id = metas[0].ID
		}

		snap, err := st.GetSnapshot(ctx, id)
		if err != nil {
			return err
		}
		if snap == nil {
			return eris.Errorf("report: snapshot %s not found", id)
		}

		fmt.Print(export.FormatReport(snap))
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportID, "id", "", "snapshot ID (default most recent)")
	rootCmd.AddCommand(reportCmd)
}
