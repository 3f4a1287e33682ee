package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newEstimateCommand(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the price of one property",
		Long: `Estimate the price of one property described by a JSON request.

Examples:
  valuate estimate --file request.json
  cat request.json | valuate estimate --file -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := readInput(file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			ctx, cancel := a.context(cmd.Context())
			defer cancel()

			response, err := a.backend().Estimate(ctx, raw)
			if err != nil {
				a.log.Error("estimate failed", zap.Error(err))
				return err
			}

			a.log.Debug("estimate done", zap.Float64("estimated_price", response.EstimatedPrice))

			return a.print(response, func() error { return printValuation(a.stdout, response) })
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "request JSON file, - for stdin")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newBatchCommand(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Estimate prices for a JSON array of properties",
		Long: `Estimate prices for a JSON array of requests. Invalid elements are
reported as failed results without stopping the rest of the batch.

Examples:
  valuate batch --file requests.json
  valuate batch --file requests.json --server http://localhost:8083 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := readInput(file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			ctx, cancel := a.context(cmd.Context())
			defer cancel()

			response, err := a.backend().Batch(ctx, raw)
			if err != nil {
				a.log.Error("batch failed", zap.Error(err))
				return err
			}

			a.log.Debug(
				"batch done",
				zap.Int("total", response.TotalProcessed),
				zap.Int("failed", response.Failed),
			)

			return a.print(response, func() error { return printBatch(a.stdout, response) })
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "JSON array file, - for stdin")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newTablesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List supported cities, property types and pricing factors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.context(cmd.Context())
			defer cancel()

			t, err := a.backend().Tables(ctx)
			if err != nil {
				a.log.Error("tables failed", zap.Error(err))
				return err
			}

			return a.print(t, func() error { return printTables(a.stdout, t) })
		},
	}
}

func (a *app) print(v any, text func() error) error {
	if a.opts.format == formatText {
		return text()
	}

	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json.Encode: %w", err)
	}

	return nil
}
