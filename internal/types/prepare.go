package types

// Input type discriminants understood by the remote prepare endpoint.
const (
	InputGithubRepo          = "github_repo"
	InputGithubRepoDirectory = "github_repo_directory"
	InputZippedFolder        = "zipped_folder"
	InputPastedCode          = "pasted_code"
)

// PrepareInput is the canonical form of one submission after normalization.
// Exactly one concrete variant exists per submission shape; the discriminant
// is carried by the type itself, so an instance can never mix fields from
// two variants.
type PrepareInput interface {
	InputType() string
}

// GithubRepo summarizes a whole repository at a specific ref.
type GithubRepo struct {
	RepoURL string
	RepoRef string
}

func (GithubRepo) InputType() string { return InputGithubRepo }

// GithubRepoDirectory summarizes a sub-directory of a repository. Subdir is a
// slash-joined relative path with no leading or trailing slash.
type GithubRepoDirectory struct {
	RepoURL string
	RepoRef string
	Subdir  string
}

func (GithubRepoDirectory) InputType() string { return InputGithubRepoDirectory }

// ZippedFolderURL points the backend at a .zip archive it can fetch itself.
type ZippedFolderURL struct {
	ZipURL string
}

func (ZippedFolderURL) InputType() string { return InputZippedFolder }

// ZippedFolderUpload carries archive bytes uploaded by the user. It travels
// as multipart form data, never as JSON.
type ZippedFolderUpload struct {
	Filename string
	Content  []byte
}

func (ZippedFolderUpload) InputType() string { return InputZippedFolder }

// PastedCode wraps a raw snippet the backend will index as a single file.
type PastedCode struct {
	Snippet string
}

func (PastedCode) InputType() string { return InputPastedCode }

// IndexOptions tunes how the backend walks and caps the prepared source tree.
// All fields are optional; the backend applies its own defaults.
type IndexOptions struct {
	IncludeGlobs  []string `json:"include_globs,omitempty" yaml:"include_globs,omitempty"`
	ExcludeGlobs  []string `json:"exclude_globs,omitempty" yaml:"exclude_globs,omitempty"`
	MaxFiles      int      `json:"max_files,omitempty" yaml:"max_files,omitempty"`
	MaxTotalBytes int64    `json:"max_total_bytes,omitempty" yaml:"max_total_bytes,omitempty"`
}

// PrepareBody is the flat JSON wire form of a prepare request. Only the
// fields legal for the tagged variant are populated.
type PrepareBody struct {
	InputType     string   `json:"input_type"`
	RepoURL       string   `json:"repo_url,omitempty"`
	RepoRef       string   `json:"repo_ref,omitempty"`
	Subdir        string   `json:"subdir,omitempty"`
	ZipURL        string   `json:"zip_url,omitempty"`
	CodeSnippet   string   `json:"code_snippet,omitempty"`
	IncludeGlobs  []string `json:"include_globs,omitempty"`
	ExcludeGlobs  []string `json:"exclude_globs,omitempty"`
	MaxFiles      int      `json:"max_files,omitempty"`
	MaxTotalBytes int64    `json:"max_total_bytes,omitempty"`
}
