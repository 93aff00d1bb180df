package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-ats/internal/schemas"
)

func newValidateCmd() *cobra.Command {
	var resumePath, schemaPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a résumé JSON file against the résumé schema",
		Long:  "Validate a résumé file against the built-in résumé JSON Schema, or against --schema when given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if schemaPath != "" {
				err = schemas.ValidateJSON(schemaPath, resumePath)
			} else {
				var data []byte
				if data, err = readInput(cmd, resumePath); err != nil {
					return err
				}
				err = schemas.ValidateResume(data)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", resumePath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&resumePath, "resume", "r", "", "Path to résumé JSON file, or - for stdin (required)")
	cmd.Flags().StringVar(&schemaPath, "schema", "", "Path to a JSON Schema file (default: built-in résumé schema)")
	_ = cmd.MarkFlagRequired("resume")
	return cmd
}
