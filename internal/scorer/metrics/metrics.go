package metrics

import "math"

// Score selects one of precision, recall and F1.
type Score int

const (
	P Score = iota
	R
	F1
)

var AllScores = []Score{P, R, F1}

func (s Score) String() string {
	switch s {
	case P:
		return "P"
	case R:
		return "R"
	default:
		return "F1"
	}
}

// Metrics is the full metric set for one (tag, regime) pair. Undefined
// metrics stay Empty; no field is ever omitted from the serialized form.
type Metrics struct {
	PMicro        Value `json:"P_micro"`
	RMicro        Value `json:"R_micro"`
	F1Micro       Value `json:"F1_micro"`
	PMacroDoc     Value `json:"P_macro_doc"`
	RMacroDoc     Value `json:"R_macro_doc"`
	F1MacroDoc    Value `json:"F1_macro_doc"`
	PMacroDocStd  Value `json:"P_macro_doc_std"`
	RMacroDocStd  Value `json:"R_macro_doc_std"`
	F1MacroDocStd Value `json:"F1_macro_doc_std"`
	TP            Value `json:"TP"`
	FP            Value `json:"FP"`
	FN            Value `json:"FN"`
}

// Get returns the averaged score for an aggregation kind.
func (m Metrics) Get(agg Aggregation, s Score) Value {
	if agg == Micro {
		return [...]Value{m.PMicro, m.RMicro, m.F1Micro}[s]
	}
	return [...]Value{m.PMacroDoc, m.RMacroDoc, m.F1MacroDoc}[s]
}

// Std returns the cross-document standard deviation of a score.
func (m Metrics) Std(s Score) Value {
	return [...]Value{m.PMacroDocStd, m.RMacroDocStd, m.F1MacroDocStd}[s]
}

// Counts are raw match outcomes.
type Counts struct {
	TP, FP, FN int
}

func (c Counts) Add(o Counts) Counts {
	return Counts{TP: c.TP + o.TP, FP: c.FP + o.FP, FN: c.FN + o.FN}
}

func (c Counts) IsZero() bool {
	return c.TP == 0 && c.FP == 0 && c.FN == 0
}

// Precision is TP/(TP+FP), zero when nothing was predicted.
func (c Counts) Precision() float64 {
	if c.TP+c.FP == 0 {
		return 0
	}
	return float64(c.TP) / float64(c.TP+c.FP)
}

// Recall is TP/(TP+FN), zero when nothing was expected.
func (c Counts) Recall() float64 {
	if c.TP+c.FN == 0 {
		return 0
	}
	return float64(c.TP) / float64(c.TP+c.FN)
}

// F1 is the harmonic mean of precision and recall.
func (c Counts) F1() float64 {
	p, r := c.Precision(), c.Recall()
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

func (c Counts) scores() [3]float64 {
	return [3]float64{c.Precision(), c.Recall(), c.F1()}
}

// Compute builds the full metric set from pooled counts and the per-document
// counts that qualify for macro averaging.
func Compute(total Counts, perDoc []Counts) Metrics {
	m := Metrics{
		PMicro:  Of(total.Precision()),
		RMicro:  Of(total.Recall()),
		F1Micro: Of(total.F1()),
		TP:      Count(total.TP),
		FP:      Count(total.FP),
		FN:      Count(total.FN),
	}

	if len(perDoc) == 0 {
		return m
	}

	var mean, std [3]float64
	for _, d := range perDoc {
		s := d.scores()
		for i := range mean {
			mean[i] += s[i]
		}
	}
	n := float64(len(perDoc))
	for i := range mean {
		mean[i] /= n
	}
	for _, d := range perDoc {
		s := d.scores()
		for i := range std {
			diff := s[i] - mean[i]
			std[i] += diff * diff
		}
	}
	for i := range std {
		std[i] = math.Sqrt(std[i] / n)
	}

	m.PMacroDoc, m.RMacroDoc, m.F1MacroDoc = Of(mean[0]), Of(mean[1]), Of(mean[2])
	m.PMacroDocStd, m.RMacroDocStd, m.F1MacroDocStd = Of(std[0]), Of(std[1]), Of(std[2])
	return m
}
