package auth

import (
	"context"
	"fmt"
	"net/http"
)

// PipelineConfig configures a Pipeline.
type PipelineConfig[T any] struct {
	// HeaderName overrides the header the credential is read from.
	// Default: "Authorization".
	HeaderName string

	// Filter optionally rejects claims that verified successfully, for
	// application checks beyond the validation policy (e.g. role gating).
	// A non-nil return rejects the request like any authentication failure.
	Filter func(T) error
}

// Pipeline runs extract, verify and bind in sequence, short-circuiting on
// the first failure. Authentication failures are never transient for a
// given token, so the pipeline performs no retries. A Pipeline is immutable
// and safe for concurrent use.
type Pipeline[T any] struct {
	extractor BearerExtractor
	decoder   *Decoder
	filter    func(T) error
}

// NewPipeline creates a pipeline binding verified claims to T.
func NewPipeline[T any](decoder *Decoder, cfg PipelineConfig[T]) (*Pipeline[T], error) {
	if decoder == nil {
		return nil, fmt.Errorf("auth: pipeline requires a decoder")
	}
	return &Pipeline[T]{
		extractor: BearerExtractor{Header: cfg.HeaderName},
		decoder:   decoder,
		filter:    cfg.Filter,
	}, nil
}

// Authenticate extracts the bearer token from the given headers, verifies
// it and binds the claims to T. On any failure it returns an error from the
// package taxonomy (or the filter's error); callers translate every failure
// to the same unauthorized signal.
func (p *Pipeline[T]) Authenticate(ctx context.Context, headers http.Header) (T, error) {
	var zero T

	raw, err := p.extractor.Extract(headers)
	if err != nil {
		return zero, err
	}

	claims, err := p.decoder.Verify(ctx, raw)
	if err != nil {
		return zero, err
	}

	out, err := Bind[T](claims)
	if err != nil {
		return zero, err
	}

	if p.filter != nil {
		if err := p.filter(out); err != nil {
			return zero, fmt.Errorf("auth: claims rejected: %w", err)
		}
	}
	return out, nil
}
