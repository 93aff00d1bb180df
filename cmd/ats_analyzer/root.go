package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-ats/internal/config"
	"github.com/jonathan/resume-ats/internal/heuristics"
	"github.com/jonathan/resume-ats/internal/logger"
	"github.com/jonathan/resume-ats/internal/observability"
	"github.com/jonathan/resume-ats/internal/schemas"
	"github.com/jonathan/resume-ats/internal/types"
)

const (
	app = "ats_analyzer"

	formatText = "text"
	formatJSON = "json"
)

// rootOptions holds the persistent flags shared by every subcommand
type rootOptions struct {
	configFile     string
	format         string
	heuristicsFile string
	locale         string
	debug          bool
	jsonLogs       bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           app,
		Short:         "ATS compatibility scoring and keyword matching for résumés",
		Long:          "ATS Analyzer grades résumés for applicant tracking systems and matches them against job descriptions, from the command line or over a REST API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if opts.format != formatText && opts.format != formatJSON {
				return fmt.Errorf("invalid --format %q: must be %s or %s", opts.format, formatText, formatJSON)
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "a config file (default is "+config.FileName+".yaml in current directory)")
	flags.StringVarP(&opts.format, "format", "f", formatText, "output format: text or json")
	flags.StringVar(&opts.heuristicsFile, "heuristics", "", "heuristics YAML file overriding the built-in thresholds")
	flags.StringVar(&opts.locale, "locale", "", "lexicon locale: pt-BR or en")
	flags.BoolVarP(&opts.debug, "debug", "d", false, "verbose/debug output")
	flags.BoolVarP(&opts.jsonLogs, "json", "j", false, "json format for logging")

	cmd.AddCommand(
		newServeCmd(opts),
		newScoreCmd(opts),
		newKeywordsCmd(opts),
		newBatchCmd(opts),
		newValidateCmd(),
	)
	return cmd
}

// loadConfig reads the config file and environment, then applies flag overrides
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}
	if o.heuristicsFile != "" {
		cfg.Analysis.HeuristicsFile = o.heuristicsFile
	}
	if o.locale != "" {
		cfg.Analysis.Locale = o.locale
	}
	if o.debug {
		cfg.Log.Debug = true
	}
	if o.jsonLogs {
		cfg.Log.JSON = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// heuristics resolves the thresholds and lexicon selected by cfg
func (o *rootOptions) heuristics(cfg *config.Config) (*heuristics.Config, error) {
	heur, err := heuristics.Resolve(cfg.Analysis.HeuristicsFile, cfg.Analysis.Locale)
	if err != nil {
		return nil, fmt.Errorf("failed to load heuristics: %w", err)
	}
	return heur, nil
}

func (o *rootOptions) logger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}

// render writes v as indented JSON, or hands it to the text printer
func (o *rootOptions) render(out io.Writer, v any, text func(*observability.Printer)) error {
	if o.format == formatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(observability.NewPrinter(out))
	return nil
}

// readInput reads a file, or stdin when path is "-"
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// readResume loads and schema-validates a résumé JSON file
func readResume(cmd *cobra.Command, path string) (*types.ResumeData, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	resume, err := schemas.DecodeResume(data)
	if err != nil {
		return nil, fmt.Errorf("invalid resume %s: %w", path, err)
	}
	return resume, nil
}
