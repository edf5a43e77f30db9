// Package engine implements the fraud signal analysis core: a multi-signal
// content-risk scorer, an advisor-identity verifier, and an
// entity-relationship analyzer. Every operation is a pure, deterministic
// computation over caller-supplied data plus the static rule table and the
// injected advisor registry; persistence, rendering, and export belong to the
// caller.
package engine

import "context"

// Engine is the single entry point callers use. It is safe for concurrent use
// without coordination: no operation mutates shared state.
type Engine struct {
	analyzer *ContentAnalyzer
	verifier *Verifier
	network  *NetworkAnalyzer
}

// Option configures the engine at construction.
type Option func(*Engine)

// WithLibrary replaces the default indicator library.
func WithLibrary(library *Library) Option {
	return func(e *Engine) {
		e.analyzer = NewContentAnalyzer(library)
	}
}

// WithClusterThreshold overrides the suspicion threshold for clustering.
func WithClusterThreshold(threshold float64) Option {
	return func(e *Engine) {
		e.network.SetClusterThreshold(threshold)
	}
}

// New creates an engine over the given advisor registry.
func New(registry AdvisorRegistry, opts ...Option) (*Engine, error) {
	verifier, err := NewVerifier(registry)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		analyzer: NewContentAnalyzer(DefaultLibrary()),
		verifier: verifier,
		network:  NewNetworkAnalyzer(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// AnalyzeContent scores raw content for fraud indicators.
func (e *Engine) AnalyzeContent(content string, contentType ContentType) (*AnalysisResult, error) {
	return e.analyzer.Analyze(content, contentType)
}

// VerifyAdvisor resolves an advisor identity by license number and/or name.
func (e *Engine) VerifyAdvisor(ctx context.Context, licenseNumber, name string) (*VerificationResult, error) {
	return e.verifier.Verify(ctx, licenseNumber, name)
}

// BuildGraph scores a batch of observed connections.
func (e *Engine) BuildGraph(connections []Connection, severities EntitySeverityIndex) []SuspiciousEdge {
	return e.network.BuildGraph(connections, severities)
}

// Cluster groups scored edges into threshold-gated connected components.
func (e *Engine) Cluster(edges []SuspiciousEdge) ClusterResult {
	return e.network.Cluster(edges)
}

// ClusterThreshold reports the configured cluster threshold.
func (e *Engine) ClusterThreshold() float64 {
	return e.network.ClusterThreshold()
}
