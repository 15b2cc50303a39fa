package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bizbrief/bizbrief/internal/config"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Check the endpoint configuration",
	Long: `Print a diagnostic of the remote endpoint configuration. URLs are shown
verbatim; the bearer token only as present/absent plus a redacted preview.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		diag := config.Load().Diagnose()
		out, err := json.MarshalIndent(diag, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		if !diag.OK {
			return &config.MissingError{Names: diag.Missing}
		}
		return nil
	},
}
