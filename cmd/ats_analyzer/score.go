package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-ats/internal/observability"
	"github.com/jonathan/resume-ats/internal/scoring"
)

func newScoreCmd(opts *rootOptions) *cobra.Command {
	var resumePath string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Grade a résumé for ATS compatibility",
		Long:  "Score a résumé JSON file from 0 to 100 on formatting, keywords, action verbs and quantification.",
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
			resume, err := readResume(cmd, resumePath)
			if err != nil {
				return err
			}

			score := scoring.NewScorer(heur).Score(resume)
			return opts.render(cmd.OutOrStdout(), score, func(p *observability.Printer) {
				p.PrintScore(score)
			})
		},
	}

	cmd.Flags().StringVarP(&resumePath, "resume", "r", "", "Path to résumé JSON file, or - for stdin (required)")
	_ = cmd.MarkFlagRequired("resume")
	return cmd
}
