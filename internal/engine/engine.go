// Package engine implements the generalized personalization scoring and
// diversification pipeline shared by the activity, flight and
// accommodation domains.
//
// One Engine instance serves one domain, parameterized by a
// DomainAdapter and an immutable Config. A call runs
// vectorize -> score -> diversify -> explain -> rank over a candidate
// batch; every stage is a pure function of its inputs, so independent
// requests need no locks and a caller-side timeout can simply abandon
// the result.
package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLimit is the result size used when a request does not ask for
// one.
const DefaultLimit = 20

// Engine ranks one domain's inventory against user preference vectors.
type Engine struct {
	adapter DomainAdapter
	cfg     Config
	log     zerolog.Logger
}

// New validates the configuration and builds an engine. An invalid
// config is a construction-time error; a config rejected here is never
// activated.
func New(adapter DomainAdapter, cfg Config, log zerolog.Logger) (*Engine, error) {
	if adapter == nil {
		return nil, fmt.Errorf("engine: adapter is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine %s: %w", adapter.Domain(), err)
	}
	return &Engine{
		adapter: adapter,
		cfg:     cfg,
		log:     log.With().Str("component", "engine").Str("domain", adapter.Domain()).Logger(),
	}, nil
}

// Domain returns the inventory type this engine instance serves.
func (e *Engine) Domain() string {
	return e.adapter.Domain()
}

// Config returns a copy of the active configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Request is one recommendation call over a candidate batch.
type Request struct {
	UserVector Vector
	Segment    string
	Items      []Item
	Trip       *TripContext
	// Limit defaults to DefaultLimit when zero.
	Limit int
	// Lambda overrides the configured MMR lambda when non-nil.
	Lambda *float64
}

// Response is the ordered result of one call. Errors carries per-item
// vectorization/scoring failures; an empty Results with a nil call
// error is a valid outcome, not a failure.
type Response struct {
	Results []ScoredCandidate
	Errors  []ItemError

	TotalCandidates int
	Filtered        int
	Elapsed         time.Duration
}

// Recommend runs the full pipeline for one batch of candidates.
// Individual item failures never abort the call; a corrupted ranking is
// never partially returned - either the complete list or a single
// *PipelineError.
func (e *Engine) Recommend(req Request) (*Response, error) {
	start := time.Now()

	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	lambda := e.cfg.Scoring.MMRLambda
	if req.Lambda != nil {
		lambda = Clamp01(*req.Lambda)
	}

	resp := &Response{
		Results:         []ScoredCandidate{},
		Errors:          []ItemError{},
		TotalCandidates: len(req.Items),
	}

	if err := req.UserVector.Validate(); err != nil {
		return nil, &PipelineError{Stage: StageVectorizing, Err: fmt.Errorf("user vector: %w", err)}
	}

	if len(req.Items) == 0 {
		resp.Elapsed = time.Since(start)
		return resp, nil
	}

	cands, vecErrs := e.vectorizeBatch(req.Items)
	resp.Errors = append(resp.Errors, vecErrs...)

	scored, scoreErrs, err := e.scoreCandidates(req.UserVector, req.Segment, cands, req.Trip)
	if err != nil {
		return nil, &PipelineError{Stage: StageScoring, Err: err}
	}
	resp.Errors = append(resp.Errors, scoreErrs...)
	resp.Filtered = len(cands) - len(scoreErrs) - len(scored)

	// Nothing survived filtering: done, with an empty non-error result.
	if len(scored) == 0 {
		resp.Elapsed = time.Since(start)
		e.logCall(resp, lambda)
		return resp, nil
	}

	selected := diversify(scored, limit, lambda)

	for i := range selected {
		selected[i].Rank = i + 1
		selected[i].Reasons = e.explain(&selected[i], req.UserVector, req.Segment, req.Trip)
	}

	resp.Results = selected
	resp.Elapsed = time.Since(start)
	e.logCall(resp, lambda)
	return resp, nil
}

func (e *Engine) logCall(resp *Response, lambda float64) {
	e.log.Debug().
		Int("candidates", resp.TotalCandidates).
		Int("filtered", resp.Filtered).
		Int("item_errors", len(resp.Errors)).
		Int("results", len(resp.Results)).
		Float64("lambda", lambda).
		Dur("elapsed", resp.Elapsed).
		Msg("recommendation batch scored")
}
