package metrics

import "sort"

// AllTag is the synthetic tag holding the column-level aggregate.
const AllTag = "ALL"

// RegimeMetrics maps a regime to its metric set.
type RegimeMetrics map[Regime]Metrics

// TagMetrics maps a tag, including AllTag, to its per-regime metrics.
type TagMetrics map[string]RegimeMetrics

// Bundle is the result of one stratum: column -> tag -> regime -> metrics.
type Bundle map[string]TagMetrics

// SortedColumns returns the column names in lexicographic order.
func (b Bundle) SortedColumns() []string {
	cols := make([]string, 0, len(b))
	for c := range b {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

// SortedTags returns the tag names in lexicographic order.
func (t TagMetrics) SortedTags() []string {
	tags := make([]string, 0, len(t))
	for tag := range t {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
