package evaluator

import (
	"context"

	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/metrics"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/stratum"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/task"
)

// Request is what the matcher needs to score one column or column group
// within one stratum. The filters are passed through uninterpreted.
type Request struct {
	// Columns holds one column, or several iterated in lock-step (union).
	Columns    []string
	EvalType   task.EvalType
	MergeLines bool
	NBest      int
	Noise      *stratum.NoiseBand
	Period     *stratum.Period
	// Tags restricts the in-scope tags; nil means all tags.
	Tags Tagset
}

// Matcher aligns gold and predicted annotations and computes match outcomes.
// It returns the column-global metrics and the metrics of every tag.
// Implementations must be safe for concurrent use when the runner evaluates
// strata in parallel.
type Matcher interface {
	Evaluate(ctx context.Context, req Request) (metrics.RegimeMetrics, metrics.TagMetrics, error)
}

type MatcherFunc func(ctx context.Context, req Request) (metrics.RegimeMetrics, metrics.TagMetrics, error)

func (f MatcherFunc) Evaluate(ctx context.Context, req Request) (metrics.RegimeMetrics, metrics.TagMetrics, error) {
	return f(ctx, req)
}
