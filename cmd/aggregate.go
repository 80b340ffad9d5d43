package main

import (
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/skyreach/ssot-cli/internal/aggregate"
	"github.com/skyreach/ssot-cli/internal/config"
	"github.com/skyreach/ssot-cli/internal/export"
	"github.com/skyreach/ssot-cli/internal/loader"
	"github.com/skyreach/ssot-cli/internal/model"
	"github.com/skyreach/ssot-cli/internal/quality"
	"github.com/skyreach/ssot-cli/internal/schema"
	"github.com/skyreach/ssot-cli/internal/store"
)

var (
	aggInput      string
	aggSheet      string
	aggIntents    string
	aggCountry    string
	aggXLSXOut    string
	aggCSVOut     string
	aggNoSnapshot bool
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Consolidate grouped source rows into the canonical SSOT table",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		table, err := config.LoadPriorityTable(cfg.Sources)
		if err != nil {
			return err
		}

		groups, err := loader.Load(aggInput, aggSheet)
		if err != nil {
			return err
		}

		intents, err := loader.LoadIntents(aggIntents)
		if err != nil {
			return err
		}

		country := aggCountry
		if country == "" {
			country = cfg.Pipeline.Country
		}

		scorer := quality.NewScorer(cfg.Quality.Weights, cfg.Quality.IntentBlend)
		driver := aggregate.New(table, scorer, country)

		records, err := driver.AggregateAll(ctx, groups, intents, cfg.Pipeline.Concurrency)
		if err != nil {
			return eris.Wrap(err, "aggregate")
		}

		report := schema.New(schema.DefaultRules()).Validate(records)
		metrics := quality.Summarize(records)

		if aggXLSXOut != "" {
			if err := export.WriteXLSX(records, aggXLSXOut, cfg.Export.SheetName); err != nil {
				return err
			}
		}
		if aggCSVOut != "" {
			if err := export.WriteCSV(records, aggCSVOut); err != nil {
				return err
			}
		}

		var snapID string
		if !aggNoSnapshot {
			st, err := store.Open(ctx, cfg.Store)
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.Migrate(ctx); err != nil {
				return err
			}
			snapID = uuid.New().String()
			snap := &model.Snapshot{
				ID:        snapID,
				Country:   country,
				Records:   records,
				Report:    report,
				Metrics:   metrics,
				CreatedAt: time.Now().UTC(),
			}
			if err := st.SaveSnapshot(ctx, snap); err != nil {
				return err
			}
		}

		zap.L().Info("run complete", runSummaryFields(snapID, metrics, report)...)
		return nil
	},
}

// runSummaryFields builds the completion log fields. The snapshot ID is
// present only when a snapshot was actually persisted.
func runSummaryFields(snapshotID string, metrics model.QualityMetrics, report model.ValidationReport) []zap.Field {
	fields := []zap.Field{
		zap.Int("rows", metrics.Rows),
		zap.Float64("score_mean", metrics.MeanScore),
		zap.Float64("score_min", metrics.MinScore),
		zap.Float64("score_max", metrics.MaxScore),
		zap.Int("validation_failures", len(report.FailedRows)),
	}
	if snapshotID != "" {
		fields = append(fields, zap.String("snapshot", snapshotID))
	}
	return fields
}

func init() {
	aggregateCmd.Flags().StringVar(&aggInput, "input", "", "grouped source rows (xlsx or csv)")
	aggregateCmd.Flags().StringVar(&aggSheet, "sheet", "", "input sheet name (default first sheet)")
	aggregateCmd.Flags().StringVar(&aggIntents, "intents", "", "optional per-slug intent summary YAML")
	aggregateCmd.Flags().StringVar(&aggCountry, "country", "", "country for all output rows (default from config)")
	aggregateCmd.Flags().StringVar(&aggXLSXOut, "out", "", "output workbook path")
	aggregateCmd.Flags().StringVar(&aggCSVOut, "csv", "", "output CSV path")
	aggregateCmd.Flags().BoolVar(&aggNoSnapshot, "no-snapshot", false, "skip persisting a snapshot")
	aggregateCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(aggregateCmd)
}
