package version

import (
	"fmt"
	"io"
)

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/progtmpl/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/progtmpl/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/progtmpl/internal/version.Date={{.Date}}
)

// Info is the version information printed by the version command.
type Info struct {
	Version string `json:"version" yaml:"version" toml:"version"`
	Commit  string `json:"commit" yaml:"commit" toml:"commit"`
	Date    string `json:"date" yaml:"date" toml:"date"`
}

// Current returns the build information of the running binary.
func Current() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// Text writes the version in the form printed by the version command.
func (i Info) Text(w io.Writer) error {
	_, err := fmt.Fprintf(w, "progtmpl version %s\n  commit: %s\n  built:  %s\n", i.Version, i.Commit, i.Date)
	return err
}

// Table returns the version as field and value rows.
func (i Info) Table() ([]string, [][]string) {
	return []string{"FIELD", "VALUE"}, [][]string{
		{"version", i.Version},
		{"commit", i.Commit},
		{"built", i.Date},
	}
}
