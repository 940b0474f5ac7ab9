package evaluator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/metrics"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/stratum"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/task"
)

// Invoker asks the matcher for one stratum's results, column by column.
type Invoker struct {
	matcher Matcher
	logger  *slog.Logger
}

func NewInvoker(m Matcher, logger *slog.Logger) *Invoker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Invoker{matcher: m, logger: logger}
}

// Invoke evaluates every column within the stratum. The ALL tag of each
// column is the matcher's own global aggregate, never a sum over tags:
// tags may nest, so summing could count an entity twice.
func (i *Invoker) Invoke(
	ctx context.Context,
	cols []Column,
	evalType task.EvalType,
	s stratum.Stratum,
	tags Tagset,
) (metrics.Bundle, error) {
	bundle := make(metrics.Bundle, len(cols))

	for _, col := range cols {
		req := Request{
			Columns:    col.Members,
			EvalType:   evalType,
			MergeLines: true,
			NBest:      s.NBest(),
			Noise:      s.Noise,
			Period:     s.Period,
			Tags:       tags,
		}

		global, perTag, err := i.matcher.Evaluate(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("evaluate column %q in stratum %q: %w", col.Name, s.Label(), err)
		}

		out := make(metrics.TagMetrics, len(perTag)+1)
		for tag, rm := range perTag {
			out[tag] = rm
		}
		out[metrics.AllTag] = global
		bundle[col.Name] = out

		i.logger.Debug("column evaluated",
			"column", col.Name,
			"stratum", s.Label(),
			"tags", len(perTag),
		)
	}

	return bundle, nil
}
