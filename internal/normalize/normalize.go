// Package normalize turns raw user submissions into the canonical prepare
// payload the remote backend understands, or rejects them with a structured
// validation error before anything touches the network.
package normalize

import (
	"fmt"
	"strings"

	"github.com/bizbrief/bizbrief/internal/githuburl"
	"github.com/bizbrief/bizbrief/internal/types"
)

// ValidationError reports a submission the gateway refuses to transmit.
// Field names the offending input so callers can surface it directly.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid submission: %s: %s", e.Field, e.Message)
}

// Submission is the raw, untrusted form of one request as it arrives from
// the caller. Which fields matter depends on InputType.
type Submission struct {
	InputType string
	GithubURL string
	RepoRef   string
	ZipURL    string
	Upload    *types.ZippedFolderUpload
	Snippet   string
	Index     *types.IndexOptions
}

// PlanKind selects the transmission encoding for a prepare call.
type PlanKind int

const (
	PlanJSON PlanKind = iota
	PlanMultipart
)

// Plan is the transmission-ready form of a valid submission: either a flat
// JSON body or multipart form fields plus the uploaded archive.
type Plan struct {
	Kind   PlanKind
	Input  types.PrepareInput
	Body   types.PrepareBody
	Fields map[string]string
	File   *types.ZippedFolderUpload
}

// Canonicalize validates one submission and builds its transmission plan.
// It never performs network access; ref derivation is pure URL inspection.
func Canonicalize(sub Submission) (*Plan, error) {
	switch sub.InputType {
	case types.InputGithubRepo:
		return planGithubRepo(sub)
	case types.InputGithubRepoDirectory:
		return planGithubRepoDirectory(sub)
	case types.InputZippedFolder:
		return planZippedFolder(sub)
	case types.InputPastedCode:
		return planPastedCode(sub)
	default:
		return nil, &ValidationError{
			Field:   "input_type",
			Message: fmt.Sprintf("unknown input type %q", sub.InputType),
		}
	}
}

func planGithubRepo(sub Submission) (*Plan, error) {
	repoURL := strings.TrimSpace(sub.GithubURL)
	if repoURL == "" || !strings.Contains(repoURL, "github.com") {
		return nil, &ValidationError{Field: "github_url", Message: "a github.com repository URL is required"}
	}
	// URL-based ref derivation belongs to the directory variant; this one
	// expects a bare repository URL, so the ref must arrive explicitly.
	ref := strings.TrimSpace(sub.RepoRef)
	if ref == "" {
		return nil, &ValidationError{
			Field:   "repo_ref",
			Message: "repo_ref is required; the plain repository variant does not derive a ref from the URL",
		}
	}
	input := types.GithubRepo{RepoURL: repoURL, RepoRef: ref}
	return jsonPlan(input, types.PrepareBody{
		InputType: types.InputGithubRepo,
		RepoURL:   repoURL,
		RepoRef:   ref,
	}, sub.Index), nil
}

func planGithubRepoDirectory(sub Submission) (*Plan, error) {
	dir, ok := githuburl.ParseDirectoryURL(sub.GithubURL)
	if !ok {
		return nil, &ValidationError{
			Field:   "github_url",
			Message: "expected https://github.com/<owner>/<repo>/tree/<ref>/<subdir> with at least one sub-directory segment",
		}
	}
	ref := strings.TrimSpace(sub.RepoRef)
	if ref == "" {
		ref = dir.RepoRef
	}
	if ref == "" {
		return nil, &ValidationError{
			Field:   "repo_ref",
			Message: "could not determine a branch or tag from the URL; supply repo_ref explicitly",
		}
	}
	input := types.GithubRepoDirectory{RepoURL: dir.RepoURL, RepoRef: ref, Subdir: dir.Subdir}
	return jsonPlan(input, types.PrepareBody{
		InputType: types.InputGithubRepoDirectory,
		RepoURL:   dir.RepoURL,
		RepoRef:   ref,
		Subdir:    dir.Subdir,
	}, sub.Index), nil
}

func planZippedFolder(sub Submission) (*Plan, error) {
	zipURL := strings.TrimSpace(sub.ZipURL)
	hasUpload := sub.Upload != nil && len(sub.Upload.Content) > 0

	switch {
	case hasUpload && zipURL != "":
		return nil, &ValidationError{
			Field:   "zipped_folder",
			Message: "supply either an uploaded .zip file or a zip_url, not both",
		}
	case hasUpload:
		file := *sub.Upload
		if strings.TrimSpace(file.Filename) == "" {
			file.Filename = "archive.zip"
		}
		return &Plan{
			Kind:   PlanMultipart,
			Input:  file,
			Fields: map[string]string{"input_type": types.InputZippedFolder},
			File:   &file,
		}, nil
	case zipURL != "":
		if !strings.HasPrefix(zipURL, "https://") {
			return nil, &ValidationError{Field: "zip_url", Message: "zip_url must be an https:// URL"}
		}
		input := types.ZippedFolderURL{ZipURL: zipURL}
		return jsonPlan(input, types.PrepareBody{
			InputType: types.InputZippedFolder,
			ZipURL:    zipURL,
		}, sub.Index), nil
	default:
		return nil, &ValidationError{
			Field:   "zipped_folder",
			Message: "supply either an uploaded .zip file or a zip_url",
		}
	}
}

func planPastedCode(sub Submission) (*Plan, error) {
	if strings.TrimSpace(sub.Snippet) == "" {
		return nil, &ValidationError{Field: "code_snippet", Message: "pasted code must not be empty"}
	}
	input := types.PastedCode{Snippet: sub.Snippet}
	return jsonPlan(input, types.PrepareBody{
		InputType:   types.InputPastedCode,
		CodeSnippet: sub.Snippet,
	}, sub.Index), nil
}

func jsonPlan(input types.PrepareInput, body types.PrepareBody, idx *types.IndexOptions) *Plan {
	if idx != nil {
		body.IncludeGlobs = idx.IncludeGlobs
		body.ExcludeGlobs = idx.ExcludeGlobs
		body.MaxFiles = idx.MaxFiles
		body.MaxTotalBytes = idx.MaxTotalBytes
	}
	return &Plan{Kind: PlanJSON, Input: input, Body: body}
}
