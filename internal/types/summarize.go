package types

import (
	"fmt"
	"strings"
)

// Section output kinds the remote summarizer can produce.
const (
	SectionShortText = "short_text"
	SectionMarkdown  = "markdown"
	SectionList      = "list"
)

// SectionSpec declares the shape of one field the summarizer should return.
// ID becomes the key in the response; MaxChars applies to short_text only and
// ItemType to list only.
type SectionSpec struct {
	ID         string `json:"id" yaml:"id"`
	Type       string `json:"type" yaml:"type"`
	Required   bool   `json:"required,omitempty" yaml:"required,omitempty"`
	MaxChars   int    `json:"max_chars,omitempty" yaml:"max_chars,omitempty"`
	ItemType   string `json:"item_type,omitempty" yaml:"item_type,omitempty"`
	PromptHint string `json:"prompt_hint,omitempty" yaml:"prompt_hint,omitempty"`
}

// GenerationConstraints carries optional style hints for the summarizer.
type GenerationConstraints struct {
	Audience     string `json:"audience,omitempty" yaml:"audience,omitempty"`
	Tone         string `json:"tone,omitempty" yaml:"tone,omitempty"`
	ReadingLevel string `json:"reading_level,omitempty" yaml:"reading_level,omitempty"`
	MaxTokens    int    `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
}

// SummarizeRequest asks the backend to summarize files previously indexed by
// a prepare call. SourceID is the opaque token that call returned; the
// gateway never interprets it.
type SummarizeRequest struct {
	SourceID      string                 `json:"source_id"`
	SelectedPaths []string               `json:"selected_paths"`
	Sections      []SectionSpec          `json:"sections"`
	Constraints   *GenerationConstraints `json:"constraints,omitempty"`
	Cleanup       *bool                  `json:"cleanup,omitempty"`
}

// Validate rejects requests the backend would refuse, before any network
// call: missing source id, no usable paths, or malformed section specs.
func (r *SummarizeRequest) Validate() error {
	if strings.TrimSpace(r.SourceID) == "" {
		return fmt.Errorf("summarize request: source_id is required")
	}
	usable := 0
	for _, p := range r.SelectedPaths {
		if strings.TrimSpace(p) != "" {
			usable++
		}
	}
	if usable == 0 {
		return fmt.Errorf("summarize request: at least one non-empty selected path is required")
	}
	seen := make(map[string]struct{}, len(r.Sections))
	for i, s := range r.Sections {
		if strings.TrimSpace(s.ID) == "" {
			return fmt.Errorf("summarize request: section %d has an empty id", i)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("summarize request: duplicate section id %q", s.ID)
		}
		seen[s.ID] = struct{}{}
		switch s.Type {
		case SectionShortText, SectionMarkdown, SectionList:
		default:
			return fmt.Errorf("summarize request: section %q has unknown type %q", s.ID, s.Type)
		}
	}
	return nil
}
