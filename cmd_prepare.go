package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bizbrief/bizbrief/internal/githuburl"
	"github.com/bizbrief/bizbrief/internal/normalize"
	"github.com/bizbrief/bizbrief/internal/types"
)

var (
	prepareType    string
	prepareURL     string
	prepareRef     string
	prepareZipURL  string
	prepareZipPath string
	prepareCode    string
)

var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Submit a body of code for indexing",
	Long: `Submit one body of code to the prepare endpoint and print its response.

Examples:
  bizbrief prepare --type github_repo --url https://github.com/owner/repo --ref main
  bizbrief prepare --type github_repo_directory --url https://github.com/owner/repo/tree/main/pkg/api
  bizbrief prepare --type zipped_folder --zip-url https://example.com/src.zip
  bizbrief prepare --type zipped_folder --zip ./src.zip
  bizbrief prepare --type pasted_code --code snippet.py
  cat snippet.py | bizbrief prepare --type pasted_code --code -`,
	RunE: runPrepare,
}

func init() {
	prepareCmd.Flags().StringVar(&prepareType, "type", "", "input type: github_repo, github_repo_directory, zipped_folder or pasted_code")
	prepareCmd.Flags().StringVar(&prepareURL, "url", "", "GitHub repository or sub-directory URL")
	prepareCmd.Flags().StringVar(&prepareRef, "ref", "", "branch, tag or commit; overrides the ref in the URL")
	prepareCmd.Flags().StringVar(&prepareZipURL, "zip-url", "", "HTTPS URL to a .zip archive")
	prepareCmd.Flags().StringVar(&prepareZipPath, "zip", "", "path to a local .zip archive to upload")
	prepareCmd.Flags().StringVar(&prepareCode, "code", "", "file with a code snippet, or - for stdin")
	prepareCmd.MarkFlagRequired("type")
}

func runPrepare(cmd *cobra.Command, args []string) error {
	sub := normalize.Submission{
		InputType: prepareType,
		GithubURL: prepareURL,
		RepoRef:   prepareRef,
		ZipURL:    prepareZipURL,
	}

	// The plain repository variant demands an explicit ref; as a convenience
	// lift one out of a /tree/<ref> URL before normalization sees it.
	if sub.InputType == types.InputGithubRepo && strings.TrimSpace(sub.RepoRef) == "" {
		sub.RepoRef = githuburl.DeriveRef(sub.GithubURL)
	}

	if prepareZipPath != "" {
		content, err := os.ReadFile(prepareZipPath)
		if err != nil {
			return fmt.Errorf("read zip archive: %w", err)
		}
		sub.Upload = &types.ZippedFolderUpload{
			Filename: filepath.Base(prepareZipPath),
			Content:  content,
		}
	}

	if prepareCode != "" {
		snippet, err := readSnippet(prepareCode)
		if err != nil {
			return err
		}
		sub.Snippet = snippet
	}

	res, err := newService().Prepare(cmd.Context(), sub, retryPolicy())
	if err != nil {
		return err
	}

	if res.SourceID != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "source_id: %s (%d files indexed)\n", res.SourceID, len(res.Files))
	}
	return printJSON(cmd.OutOrStdout(), res.Raw)
}

func readSnippet(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read snippet from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read snippet: %w", err)
	}
	return string(data), nil
}

func printJSON(w io.Writer, raw json.RawMessage) error {
	out := raw
	if indented, err := json.MarshalIndent(raw, "", "  "); err == nil {
		out = indented
	}
	_, err := fmt.Fprintln(w, string(out))
	return err
}
