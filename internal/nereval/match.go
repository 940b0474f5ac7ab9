package nereval

import (
	"slices"

	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/metrics"
)

// outcome holds the counts of one document, per regime and per tag.
type outcome struct {
	global [len(regimes)]metrics.Counts
	byTag  [len(regimes)]map[string]metrics.Counts
}

// match pairs gold and predicted entities greedily, one to one, in document
// order. A pair matches when the spans agree for the regime and one of the
// predicted labels is accepted by the gold entity. True positives and false
// negatives count under the gold tag, false positives under the predicted tag.
func match(gold, pred []entity) outcome {
	var out outcome
	for r, regime := range regimes {
		byTag := make(map[string]metrics.Counts)
		used := make([]bool, len(pred))

		for _, g := range gold {
			c := byTag[g.tag()]
			if j := findMatch(regime, g, pred, used); j >= 0 {
				used[j] = true
				c.TP++
				out.global[r].TP++
			} else {
				c.FN++
				out.global[r].FN++
			}
			byTag[g.tag()] = c
		}

		for j, p := range pred {
			if used[j] {
				continue
			}
			c := byTag[p.tag()]
			c.FP++
			byTag[p.tag()] = c
			out.global[r].FP++
		}

		out.byTag[r] = byTag
	}
	return out
}

func findMatch(regime metrics.Regime, g entity, pred []entity, used []bool) int {
	for j, p := range pred {
		if used[j] {
			continue
		}
		spanOK := g.sameSpan(p)
		if regime == metrics.Fuzzy {
			spanOK = g.overlaps(p)
		}
		if spanOK && accepts(g, p) {
			return j
		}
	}
	return -1
}

func accepts(g, p entity) bool {
	for _, l := range p.labels {
		if slices.Contains(g.labels, l) {
			return true
		}
	}
	return false
}

// accumulator sums document outcomes. Per-document counts feed the
// macro_doc statistics and only documents with counts for a tag take part.
type accumulator struct {
	total    [len(regimes)]metrics.Counts
	docs     [len(regimes)][]metrics.Counts
	tagTotal [len(regimes)]map[string]metrics.Counts
	tagDocs  [len(regimes)]map[string][]metrics.Counts
	tagsSeen map[string]struct{}
}

func newAccumulator() *accumulator {
	a := &accumulator{tagsSeen: make(map[string]struct{})}
	for r := range regimes {
		a.tagTotal[r] = make(map[string]metrics.Counts)
		a.tagDocs[r] = make(map[string][]metrics.Counts)
	}
	return a
}

func (a *accumulator) add(o outcome) {
	for r := range regimes {
		if !o.global[r].IsZero() {
			a.total[r] = a.total[r].Add(o.global[r])
			a.docs[r] = append(a.docs[r], o.global[r])
		}
		for tag, c := range o.byTag[r] {
			a.tagsSeen[tag] = struct{}{}
			a.tagTotal[r][tag] = a.tagTotal[r][tag].Add(c)
			a.tagDocs[r][tag] = append(a.tagDocs[r][tag], c)
		}
	}
}

func (a *accumulator) results() (metrics.RegimeMetrics, metrics.TagMetrics, error) {
	global := make(metrics.RegimeMetrics, len(regimes))
	perTag := make(metrics.TagMetrics, len(a.tagsSeen))

	for r, regime := range regimes {
		global[regime] = metrics.Compute(a.total[r], a.docs[r])
		for tag := range a.tagsSeen {
			if perTag[tag] == nil {
				perTag[tag] = make(metrics.RegimeMetrics, len(regimes))
			}
			perTag[tag][regime] = metrics.Compute(a.tagTotal[r][tag], a.tagDocs[r][tag])
		}
	}
	return global, perTag, nil
}
