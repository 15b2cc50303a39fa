// Package service wires submission normalization, the gateway client and
// response validation into the two-call flow: prepare a source, then
// summarize selected paths from it.
package service

import (
	"context"
	"encoding/json"

	"github.com/bizbrief/bizbrief/internal/config"
	"github.com/bizbrief/bizbrief/internal/gateway"
	"github.com/bizbrief/bizbrief/internal/normalize"
	"github.com/bizbrief/bizbrief/internal/types"
	"github.com/bizbrief/bizbrief/internal/validate"
)

// Service is stateless between invocations; concurrent calls need no
// coordination beyond the read-only configuration they share.
type Service struct {
	cfg    *config.Config
	client *gateway.Client
}

// New creates a Service around an already-configured gateway client.
func New(cfg *config.Config, client *gateway.Client) *Service {
	return &Service{cfg: cfg, client: client}
}

// IndexedFile is one entry of the file index a prepare call may return.
type IndexedFile struct {
	Path    string `json:"path"`
	Size    int64  `json:"size"`
	Preview string `json:"preview"`
}

// PrepareResult carries the raw prepare response. The response shape is
// contractually opaque; SourceID and Files are decoded best-effort for
// convenience and stay empty when the backend answered something else.
type PrepareResult struct {
	Raw      json.RawMessage
	SourceID string
	Files    []IndexedFile
}

// Prepare validates configuration and the submission, then transmits the
// canonical payload to the prepare endpoint. Validation failures never reach
// the wire.
func (s *Service) Prepare(ctx context.Context, sub normalize.Submission, policy gateway.RetryPolicy) (*PrepareResult, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	plan, err := normalize.Canonicalize(sub)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	switch plan.Kind {
	case normalize.PlanMultipart:
		file := &gateway.File{FieldName: "file", Filename: plan.File.Filename, Content: plan.File.Content}
		raw, err = s.client.SendMultipartWithRetry(ctx, s.cfg.PrepareURL, plan.Fields, file, policy)
	default:
		raw, err = s.client.SendJSONWithRetry(ctx, s.cfg.PrepareURL, plan.Body, policy)
	}
	if err != nil {
		return nil, err
	}

	res := &PrepareResult{Raw: raw}
	var hint struct {
		SourceID string        `json:"source_id"`
		Files    []IndexedFile `json:"files"`
	}
	if json.Unmarshal(raw, &hint) == nil {
		res.SourceID = hint.SourceID
		res.Files = hint.Files
	}
	return res, nil
}

// Summarize sends a summarize request and enforces the response contract.
func (s *Service) Summarize(ctx context.Context, req types.SummarizeRequest, policy gateway.RetryPolicy) (*validate.SummarizeResult, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	raw, err := s.client.SendJSONWithRetry(ctx, s.cfg.SummarizeURL, &req, policy)
	if err != nil {
		return nil, err
	}
	return validate.Summarize(raw)
}
