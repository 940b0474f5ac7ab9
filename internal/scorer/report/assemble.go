package report

import (
	"fmt"

	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/metrics"
)

const Decimals = 3

type Options struct {
	// Regimes defaults to fuzzy then strict.
	Regimes []metrics.Regime
	// Aggregations defaults to micro then macro_doc.
	Aggregations []metrics.Aggregation
	// OnlyAggregated keeps the ALL tag only.
	OnlyAggregated bool
	// Suffix is the stratum label appended to every evaluation label.
	Suffix string
}

// EvaluationLabel builds "<column>-<aggregation>-<regime>[-<suffix>]".
func EvaluationLabel(column string, agg metrics.Aggregation, regime metrics.Regime, suffix string) string {
	label := fmt.Sprintf("%s-%s-%s", column, agg, regime.Label())
	if suffix != "" {
		label += "-" + suffix
	}
	return label
}

// Assemble flattens one stratum's bundle into rows, ordered by column, then
// aggregation, then regime, then tag. Columns and tags are sorted so the
// output does not depend on map iteration order.
func Assemble(system string, b metrics.Bundle, opts Options) []Row {
	regimes := opts.Regimes
	if len(regimes) == 0 {
		regimes = metrics.AllRegimes
	}
	aggs := opts.Aggregations
	if len(aggs) == 0 {
		aggs = metrics.AllAggregations
	}

	var rows []Row
	for _, col := range b.SortedColumns() {
		tags := b[col]
		sortedTags := tags.SortedTags()

		for _, agg := range aggs {
			for _, regime := range regimes {
				evaluation := EvaluationLabel(col, agg, regime, opts.Suffix)

				for _, tag := range sortedTags {
					if opts.OnlyAggregated && tag != metrics.AllTag {
						continue
					}
					m := tags[tag][regime]
					rows = append(rows, buildRow(system, evaluation, tag, agg, m))
				}
			}
		}
	}
	return rows
}

func buildRow(system, evaluation, tag string, agg metrics.Aggregation, m metrics.Metrics) Row {
	row := Row{
		System:     system,
		Evaluation: evaluation,
		Label:      tag,
		P:          m.Get(agg, metrics.P),
		R:          m.Get(agg, metrics.R),
		F1:         m.Get(agg, metrics.F1),
	}
	if agg.HasCounts() {
		row.TP, row.FP, row.FN = m.TP, m.FP, m.FN
	}
	if agg.HasStd() {
		row.PStd = m.Std(metrics.P)
		row.RStd = m.Std(metrics.R)
		row.F1Std = m.Std(metrics.F1)
	}
	return row.round(Decimals)
}
