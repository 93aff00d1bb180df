package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-ats/internal/observability"
	"github.com/jonathan/resume-ats/internal/types"
	"github.com/jonathan/resume-ats/internal/worker"
)

func newBatchCmd(opts *rootOptions) *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Score and match many résumés concurrently",
		Long:  `Read a JSON document of the form {"items": [{"id", "resume", "jobDescription", "format"}]} and analyze every item.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			heur, err := opts.heuristics(cfg)
			if err != nil {
				return err
			}
			log, err := opts.logger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			data, err := readInput(cmd, inputPath)
			if err != nil {
				return err
			}
			var req types.BatchRequest
			if err := json.Unmarshal(data, &req); err != nil {
				return fmt.Errorf("invalid batch file: %w", err)
			}
			if err := req.Validate(); err != nil {
				return fmt.Errorf("invalid batch file: %w", err)
			}
			if limit := cfg.Analysis.MaxBatchSize; len(req.Items) > limit {
				return fmt.Errorf("batch too large: %d items (max %d)", len(req.Items), limit)
			}

			jobs, err := worker.NewJobs(req.Items)
			if err != nil {
				return err
			}

			start := time.Now()
			pool := worker.NewPool(heur, worker.WithConcurrency(cfg.Analysis.BatchConcurrency))
			results, err := pool.Run(cmd.Context(), jobs)
			if err != nil {
				return fmt.Errorf("batch failed: %w", err)
			}
			log.Debug("batch analyzed",
				zap.Int("items", len(results)),
				zap.Duration("duration", time.Since(start)),
			)

			resp := types.BatchResponse{Results: results}
			return opts.render(cmd.OutOrStdout(), resp, func(p *observability.Printer) {
				p.PrintBatch(results)
			})
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Path to batch JSON file, or - for stdin (required)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
