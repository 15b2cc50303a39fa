// Package githuburl derives repository coordinates from GitHub URL shapes.
// Everything here is pure string work: no network access, no API resolution,
// and in particular no "default branch" guessing — an absent ref stays absent.
package githuburl

import (
	"net/url"
	"strings"
)

// Repo identifies a repository by its owner and name.
type Repo struct {
	Owner string
	Name  string
}

// Directory is the result of parsing a github.com/<owner>/<repo>/tree/<ref>/...
// URL: the plain repository URL, the ref, and the slash-joined sub-directory
// path below it.
type Directory struct {
	RepoURL string
	RepoRef string
	Subdir  string
}

// ParseRepositoryURL extracts owner and repo from an
// https://github.com/<owner>/<repo> URL. Trailing path segments are left for
// the caller to ignore. Returns false for any other host, scheme, or shape.
func ParseRepositoryURL(raw string) (Repo, bool) {
	segs, ok := githubPathSegments(raw)
	if !ok || len(segs) < 2 {
		return Repo{}, false
	}
	if segs[0] == "" || segs[1] == "" {
		return Repo{}, false
	}
	return Repo{Owner: segs[0], Name: segs[1]}, true
}

// ParseDirectoryURL parses https://github.com/<owner>/<repo>/tree/<ref>/<subdir...>
// URLs. It requires the literal "tree" segment, a non-empty owner, repo and
// ref, and at least one sub-directory segment; anything else returns false.
func ParseDirectoryURL(raw string) (Directory, bool) {
	segs, ok := githubPathSegments(raw)
	if !ok || len(segs) < 5 {
		return Directory{}, false
	}
	owner, repo, literal, ref := segs[0], segs[1], segs[2], segs[3]
	if owner == "" || repo == "" || ref == "" || literal != "tree" {
		return Directory{}, false
	}
	subdir := segs[4:]
	for _, s := range subdir {
		if s == "" {
			return Directory{}, false
		}
	}
	return Directory{
		RepoURL: "https://github.com/" + owner + "/" + repo,
		RepoRef: ref,
		Subdir:  strings.Join(subdir, "/"),
	}, true
}

// DeriveRef returns the path segment immediately following a "tree" or
// "blob" segment, or "" when the URL carries no ref. A bare repository URL
// therefore yields "" — resolving its default branch is deliberately out of
// scope.
func DeriveRef(raw string) string {
	segs, ok := githubPathSegments(raw)
	if !ok {
		return ""
	}
	for i, s := range segs {
		if (s == "tree" || s == "blob") && i+1 < len(segs) && segs[i+1] != "" {
			return segs[i+1]
		}
	}
	return ""
}

func githubPathSegments(raw string) ([]string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, false
	}
	if u.Scheme != "https" || u.Hostname() != "github.com" {
		return nil, false
	}
	path := strings.Trim(u.Path, "/")
	if path == "" {
		return nil, false
	}
	return strings.Split(path, "/"), true
}
