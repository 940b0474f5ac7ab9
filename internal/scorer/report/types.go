package report

import "github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/metrics"

// Header is the fixed column order of the tabular report.
var Header = []string{
	"System",
	"Evaluation",
	"Label",
	"P",
	"R",
	"F1",
	"F1_std",
	"P_std",
	"R_std",
	"TP",
	"FP",
	"FN",
}

// Row is one flattened record of the tabular report. Metrics that do not
// apply to the row's aggregation are left empty.
type Row struct {
	System     string        `json:"System"`
	Evaluation string        `json:"Evaluation"`
	Label      string        `json:"Label"`
	P          metrics.Value `json:"P"`
	R          metrics.Value `json:"R"`
	F1         metrics.Value `json:"F1"`
	F1Std      metrics.Value `json:"F1_std"`
	PStd       metrics.Value `json:"P_std"`
	RStd       metrics.Value `json:"R_std"`
	TP         metrics.Value `json:"TP"`
	FP         metrics.Value `json:"FP"`
	FN         metrics.Value `json:"FN"`
}

// Record renders the row in Header order.
func (r Row) Record() []string {
	return []string{
		r.System,
		r.Evaluation,
		r.Label,
		r.P.String(),
		r.R.String(),
		r.F1.String(),
		r.F1Std.String(),
		r.PStd.String(),
		r.RStd.String(),
		r.TP.String(),
		r.FP.String(),
		r.FN.String(),
	}
}

func (r Row) round(decimals int) Row {
	r.P = r.P.Round(decimals)
	r.R = r.R.Round(decimals)
	r.F1 = r.F1.Round(decimals)
	r.F1Std = r.F1Std.Round(decimals)
	r.PStd = r.PStd.Round(decimals)
	r.RStd = r.RStd.Round(decimals)
	r.TP = r.TP.Round(decimals)
	r.FP = r.FP.Round(decimals)
	r.FN = r.FN.Round(decimals)
	return r
}
