package githuburl

import "testing"

func TestParseRepositoryURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want Repo
		ok   bool
	}{
		{"plain repo", "https://github.com/octo/demo", Repo{Owner: "octo", Name: "demo"}, true},
		{"trailing segments kept for caller", "https://github.com/octo/demo/tree/main/src", Repo{Owner: "octo", Name: "demo"}, true},
		{"trailing slash", "https://github.com/octo/demo/", Repo{Owner: "octo", Name: "demo"}, true},
		{"owner only", "https://github.com/octo", Repo{}, false},
		{"wrong host", "https://gitlab.com/octo/demo", Repo{}, false},
		{"http scheme", "http://github.com/octo/demo", Repo{}, false},
		{"not a url", "://nope", Repo{}, false},
		{"empty", "", Repo{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseRepositoryURL(tt.url)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("ParseRepositoryURL(%q) = %+v, %v; want %+v, %v", tt.url, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParseDirectoryURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want Directory
		ok   bool
	}{
		{
			"single subdir segment",
			"https://github.com/octo/demo/tree/main/src",
			Directory{RepoURL: "https://github.com/octo/demo", RepoRef: "main", Subdir: "src"},
			true,
		},
		{
			"nested subdir preserves order",
			"https://github.com/octo/demo/tree/v1.2/packages/api/handlers",
			Directory{RepoURL: "https://github.com/octo/demo", RepoRef: "v1.2", Subdir: "packages/api/handlers"},
			true,
		},
		{"no subdir segments", "https://github.com/octo/demo/tree/main", Directory{}, false},
		{"missing tree literal", "https://github.com/octo/demo/blob/main/src", Directory{}, false},
		{"bare repo", "https://github.com/octo/demo", Directory{}, false},
		{"wrong host", "https://example.com/octo/demo/tree/main/src", Directory{}, false},
		{"empty ref segment", "https://github.com/octo/demo/tree//src", Directory{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDirectoryURL(tt.url)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("ParseDirectoryURL(%q) = %+v, %v; want %+v, %v", tt.url, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestDeriveRef(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://github.com/o/r", ""},
		{"https://github.com/o/r/tree/main/src", "main"},
		{"https://github.com/o/r/blob/v1.2/file.ts", "v1.2"},
		{"https://github.com/o/r/tree/main", "main"},
		{"https://github.com/o/r/pull/42", ""},
		{"https://example.com/o/r/tree/main", ""},
		{"not a url at all", ""},
	}
	for _, tt := range tests {
		if got := DeriveRef(tt.url); got != tt.want {
			t.Fatalf("DeriveRef(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
