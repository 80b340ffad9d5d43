package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/skyreach/ssot-cli/internal/export"
	"github.com/skyreach/ssot-cli/internal/schema"
)

var (
	valInput string
	valSheet string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Re-validate an exported SSOT table",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := export.ReadTable(valInput, valSheet)
		if err != nil {
			return err
		}

		report := schema.New(schema.DefaultRules()).Validate(records)

		fmt.Printf("rows: %d\npassed: %d\nfailed: %d\n",
			report.TotalRows(), report.PassedRows, len(report.FailedRows))
		for _, fr := range report.FailedRows {
			for _, v := range fr.Violations {
				fmt.Printf("  row %d: %s: %s\n", fr.RowIndex, v.Column, v.Reason)
			}
		}

		zap.L().Info("validation complete",
			zap.String("input", valInput),
			zap.Int("passed", report.PassedRows),
			zap.Int("failed", len(report.FailedRows)),
		)
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&valInput, "input", "", "SSOT table to validate (xlsx or csv)")
	validateCmd.Flags().StringVar(&valSheet, "sheet", "", "sheet name (default first sheet)")
	validateCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(validateCmd)
}
