package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-ats/internal/ingestion"
	"github.com/jonathan/resume-ats/internal/keywords"
	"github.com/jonathan/resume-ats/internal/logger"
	"github.com/jonathan/resume-ats/internal/observability"
	"github.com/jonathan/resume-ats/internal/types"
)

func newKeywordsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "Extract and match job-description keywords",
	}
	cmd.AddCommand(
		newKeywordsExtractCmd(opts),
		newKeywordsAnalyzeCmd(opts),
		newKeywordsPlaceCmd(opts),
	)
	return cmd
}

// jobExcerptLen bounds the job-description excerpt written to debug logs
const jobExcerptLen = 120

// newMatcher resolves configuration and heuristics into a keyword matcher
func (o *rootOptions) newMatcher() (*keywords.Matcher, *zap.Logger, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	heur, err := o.heuristics(cfg)
	if err != nil {
		return nil, nil, err
	}
	log, err := o.logger(cfg)
	if err != nil {
		return nil, nil, err
	}
	return keywords.NewMatcher(heur), log, nil
}

func readJob(log *zap.Logger, path, format string) (string, error) {
	text, meta, err := ingestion.ReadJobDescription(path, format)
	if err != nil {
		return "", fmt.Errorf("failed to read job description: %w", err)
	}
	log.Debug("job description loaded",
		zap.String("path", path),
		zap.String("format", meta.Format),
		zap.String("hash", meta.Hash),
		zap.Int("chars", meta.Chars),
		zap.Int("lines", meta.Lines),
		zap.String("excerpt", logger.TruncateForLog(text, jobExcerptLen)),
	)
	return text, nil
}

func newKeywordsExtractCmd(opts *rootOptions) *cobra.Command {
	var jobPath, jobFormat string

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "List the ranked keywords of a job description",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			matcher, log, err := opts.newMatcher()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			text, err := readJob(log, jobPath, jobFormat)
			if err != nil {
				return err
			}

			resp := types.ExtractKeywordsResponse{Keywords: matcher.ExtractJobKeywords(text)}
			if opts.format == formatJSON {
				return opts.render(cmd.OutOrStdout(), resp, nil)
			}
			for _, kw := range resp.Keywords {
				fmt.Fprintln(cmd.OutOrStdout(), kw)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&jobPath, "job", "", "Path to job description file (required)")
	cmd.Flags().StringVar(&jobFormat, "job-format", "", "Job description format: text or html (default: from file extension)")
	_ = cmd.MarkFlagRequired("job")
	return cmd
}

func newKeywordsAnalyzeCmd(opts *rootOptions) *cobra.Command {
	var resumePath, jobPath, jobFormat string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Match a résumé against a job description",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			matcher, log, err := opts.newMatcher()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			resume, err := readResume(cmd, resumePath)
			if err != nil {
				return err
			}
			text, err := readJob(log, jobPath, jobFormat)
			if err != nil {
				return err
			}

			analysis := matcher.Analyze(resume, text)
			return opts.render(cmd.OutOrStdout(), analysis, func(p *observability.Printer) {
				p.PrintKeywordAnalysis(analysis)
			})
		},
	}

	cmd.Flags().StringVarP(&resumePath, "resume", "r", "", "Path to résumé JSON file, or - for stdin (required)")
	cmd.Flags().StringVar(&jobPath, "job", "", "Path to job description file (required)")
	cmd.Flags().StringVar(&jobFormat, "job-format", "", "Job description format: text or html (default: from file extension)")
	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("job")
	return cmd
}

func newKeywordsPlaceCmd(opts *rootOptions) *cobra.Command {
	var resumePath, keyword string

	cmd := &cobra.Command{
		Use:   "place",
		Short: "Suggest where to add a keyword in a résumé",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if keyword == "" {
				return fmt.Errorf("--keyword must not be empty")
			}
			matcher, _, err := opts.newMatcher()
			if err != nil {
				return err
			}
			resume, err := readResume(cmd, resumePath)
			if err != nil {
				return err
			}

			placement := matcher.SuggestPlacement(keyword, resume)
			return opts.render(cmd.OutOrStdout(), placement, func(p *observability.Printer) {
				p.PrintPlacement(placement)
			})
		},
	}

	cmd.Flags().StringVarP(&resumePath, "resume", "r", "", "Path to résumé JSON file, or - for stdin (required)")
	cmd.Flags().StringVarP(&keyword, "keyword", "k", "", "Keyword to place (required)")
	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("keyword")
	return cmd
}
