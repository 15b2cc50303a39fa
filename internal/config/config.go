// Package config supplies the two remote endpoint URLs and the optional
// bearer token, read once from the environment (with .env support). The
// gateway fails fast when a required URL is absent, naming the missing
// variable; the token is never echoed anywhere except as a redacted preview.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvPrepareURL   = "BIZBRIEF_PREPARE_URL"
	EnvSummarizeURL = "BIZBRIEF_SUMMARIZE_URL"
	EnvSecretToken  = "BIZBRIEF_SECRET_TOKEN"
)

// Config holds the remote endpoint coordinates. Values are read-only after
// Load; nothing in the gateway mutates them.
type Config struct {
	PrepareURL   string
	SummarizeURL string
	SecretToken  string
}

// MissingError names required configuration that was absent. It is raised
// before any network attempt and never retried.
type MissingError struct {
	Names []string
}

func (e *MissingError) Error() string {
	return "missing required configuration: " + strings.Join(e.Names, ", ")
}

// Load reads configuration from the environment, loading a .env file first
// when one exists.
func Load() *Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads configuration from the current environment only.
func FromEnv() *Config {
	return &Config{
		PrepareURL:   strings.TrimSpace(os.Getenv(EnvPrepareURL)),
		SummarizeURL: strings.TrimSpace(os.Getenv(EnvSummarizeURL)),
		SecretToken:  strings.TrimSpace(os.Getenv(EnvSecretToken)),
	}
}

// Validate fails when a required endpoint URL is missing. The token is
// optional: some deployments run the backend unauthenticated.
func (c *Config) Validate() error {
	var missing []string
	if c.PrepareURL == "" {
		missing = append(missing, EnvPrepareURL)
	}
	if c.SummarizeURL == "" {
		missing = append(missing, EnvSummarizeURL)
	}
	if len(missing) > 0 {
		return &MissingError{Names: missing}
	}
	return nil
}

// Diagnostic is a safe-to-print snapshot of the configuration state. URLs
// are echoed verbatim (non-secret); the token appears only as presence plus
// a short redacted preview.
type Diagnostic struct {
	OK      bool              `json:"ok"`
	Missing []string          `json:"missing"`
	Values  map[string]string `json:"values"`
}

// Diagnose reports which values are set and which required ones are missing.
func (c *Config) Diagnose() Diagnostic {
	d := Diagnostic{Values: make(map[string]string)}
	var me *MissingError
	if err := c.Validate(); err != nil && errors.As(err, &me) {
		d.Missing = me.Names
	}
	d.OK = len(d.Missing) == 0
	d.Values[EnvPrepareURL] = orAbsent(c.PrepareURL)
	d.Values[EnvSummarizeURL] = orAbsent(c.SummarizeURL)
	if c.SecretToken == "" {
		d.Values[EnvSecretToken] = "(absent)"
	} else {
		d.Values[EnvSecretToken] = RedactToken(c.SecretToken)
	}
	return d
}

// RedactToken builds a non-reversible preview of a secret: a bounded prefix
// slice plus a fixed mask suffix.
func RedactToken(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return ""
	}
	const keep = 4
	prefix := token
	if len(prefix) > keep {
		prefix = prefix[:keep]
	}
	return fmt.Sprintf("%s****", prefix)
}

func orAbsent(v string) string {
	if v == "" {
		return "(absent)"
	}
	return v
}
