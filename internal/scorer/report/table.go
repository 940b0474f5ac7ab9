package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/metrics"
)

// Table accumulates rows across strata and rejects a second row for the
// same (Evaluation, Label) pair.
type Table struct {
	rows []Row
	seen map[rowKey]struct{}
}

type rowKey struct {
	evaluation string
	label      string
}

func NewTable() *Table {
	return &Table{seen: make(map[rowKey]struct{})}
}

func (t *Table) Add(rows ...Row) error {
	for _, r := range rows {
		k := rowKey{evaluation: r.Evaluation, label: r.Label}
		if _, dup := t.seen[k]; dup {
			return fmt.Errorf("duplicate report row for evaluation %q label %q", r.Evaluation, r.Label)
		}
		t.seen[k] = struct{}{}
		t.rows = append(t.rows, r)
	}
	return nil
}

func (t *Table) Rows() []Row {
	return t.rows
}

func (t *Table) Len() int {
	return len(t.rows)
}

// WriteSummary prints the ALL rows as an aligned console table.
func WriteSummary(rows []Row, w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== HIPE Evaluation Summary ===\n\n")

	header := []string{"Evaluation", "P", "R", "F1", "F1_std", "TP", "FP", "FN"}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))

	for _, r := range rows {
		if r.Label != metrics.AllTag {
			continue
		}
		row := []string{
			r.Evaluation,
			fmtValue(r.P),
			fmtValue(r.R),
			fmtValue(r.F1),
			fmtValue(r.F1Std),
			fmtValue(r.TP),
			fmtValue(r.FP),
			fmtValue(r.FN),
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintln(tw)
	tw.Flush()
}

func fmtValue(v metrics.Value) string {
	if !v.Valid {
		return "-"
	}
	return v.String()
}
