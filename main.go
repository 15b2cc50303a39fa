package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bizbrief/bizbrief/internal/config"
	"github.com/bizbrief/bizbrief/internal/gateway"
	"github.com/bizbrief/bizbrief/internal/service"
)

var (
	flagTimeout time.Duration
	flagRetries int
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "bizbrief",
	Short: "Submit a body of code and get back a business-readable summary",
	Long: `bizbrief submits a body of code to a remote analysis backend and returns
a business-readable summary.

A submission is one of: a GitHub repository URL, a GitHub sub-directory URL,
a .zip archive (local file or HTTPS URL), or a pasted snippet. Two calls make
up the flow: "prepare" uploads and indexes the source, "summarize" turns a
selection of the indexed files into the requested sections.

Configuration comes from the environment (a .env file is honored):
  ` + config.EnvPrepareURL + `, ` + config.EnvSummarizeURL + ` (required)
  ` + config.EnvSecretToken + ` (optional bearer token)`,
	SilenceUsage: true,
}

func main() {
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", gateway.DefaultTimeout, "per-attempt timeout")
	rootCmd.PersistentFlags().IntVar(&flagRetries, "retries", gateway.DefaultRetries, "retries after the first attempt, clamped to 0..3")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log each outbound request")

	rootCmd.AddCommand(prepareCmd, summarizeCmd, envCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newService() *service.Service {
	cfg := config.Load()
	client := gateway.NewClient(
		gateway.WithToken(cfg.SecretToken),
		gateway.WithVerbose(flagVerbose),
	)
	return service.New(cfg, client)
}

func retryPolicy() gateway.RetryPolicy {
	return gateway.RetryPolicy{Timeout: flagTimeout, Retries: flagRetries}
}
