package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bizbrief/bizbrief/internal/types"
)

var (
	sumSourceID string
	sumPaths    []string
	sumSections string
	sumKeep     bool
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize files from a prepared source",
	Long: `Ask the summarize endpoint for a business-readable summary of selected
files from a previously prepared source.

The sections file is YAML describing the output shape:

  sections:
    - id: overview
      type: markdown
    - id: elevator_pitch
      type: short_text
      max_chars: 240
    - id: key_features
      type: list
      item_type: string
      prompt_hint: Return 3-5 bullets.
  constraints:
    audience: executives
    tone: friendly

Without a sections file a single markdown "overview" section is requested.`,
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().StringVar(&sumSourceID, "source-id", "", "source id returned by prepare")
	summarizeCmd.Flags().StringArrayVar(&sumPaths, "path", nil, "file path to include (repeatable)")
	summarizeCmd.Flags().StringVar(&sumSections, "sections", "", "YAML file with section specs and constraints")
	summarizeCmd.Flags().BoolVar(&sumKeep, "keep", false, "keep the prepared source on the backend after summarizing")
	summarizeCmd.MarkFlagRequired("source-id")
	summarizeCmd.MarkFlagRequired("path")
}

type sectionsFile struct {
	Sections    []types.SectionSpec          `yaml:"sections"`
	Constraints *types.GenerationConstraints `yaml:"constraints"`
}

func runSummarize(cmd *cobra.Command, args []string) error {
	sf := sectionsFile{
		Sections: []types.SectionSpec{{ID: "overview", Type: types.SectionMarkdown, Required: true}},
	}
	if sumSections != "" {
		data, err := os.ReadFile(sumSections)
		if err != nil {
			return fmt.Errorf("read sections file: %w", err)
		}
		sf = sectionsFile{}
		if err := yaml.Unmarshal(data, &sf); err != nil {
			return fmt.Errorf("parse sections file: %w", err)
		}
	}

	req := types.SummarizeRequest{
		SourceID:      sumSourceID,
		SelectedPaths: sumPaths,
		Sections:      sf.Sections,
		Constraints:   sf.Constraints,
	}
	if sumKeep {
		keep := false
		req.Cleanup = &keep
	}

	res, err := newService().Summarize(cmd.Context(), req, retryPolicy())
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Summary)
	return err
}
