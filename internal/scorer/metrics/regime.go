package metrics

import "fmt"

// Regime is a matching strictness mode. Its display label and the key under
// which the collaborator stores its results differ for Fuzzy.
type Regime int

const (
	Strict Regime = iota
	Fuzzy
)

var AllRegimes = []Regime{Fuzzy, Strict}

func (r Regime) Label() string {
	switch r {
	case Strict:
		return "strict"
	case Fuzzy:
		return "fuzzy"
	default:
		return fmt.Sprintf("regime(%d)", int(r))
	}
}

func (r Regime) Key() string {
	switch r {
	case Strict:
		return "strict"
	case Fuzzy:
		return "ent_type"
	default:
		return fmt.Sprintf("regime(%d)", int(r))
	}
}

func (r Regime) String() string { return r.Label() }

// MarshalText makes Regime usable as a JSON object key, rendered by storage key.
func (r Regime) MarshalText() ([]byte, error) {
	return []byte(r.Key()), nil
}

func (r *Regime) UnmarshalText(text []byte) error {
	parsed, err := ParseRegime(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseRegime accepts either representation.
func ParseRegime(s string) (Regime, error) {
	switch s {
	case "strict":
		return Strict, nil
	case "fuzzy", "ent_type":
		return Fuzzy, nil
	default:
		return 0, fmt.Errorf("unknown regime %q", s)
	}
}

// Aggregation is how per-document outcomes are pooled.
type Aggregation int

const (
	Micro Aggregation = iota
	MacroDoc
)

var AllAggregations = []Aggregation{Micro, MacroDoc}

func (a Aggregation) String() string {
	switch a {
	case Micro:
		return "micro"
	case MacroDoc:
		return "macro_doc"
	default:
		return fmt.Sprintf("aggregation(%d)", int(a))
	}
}

// HasCounts reports whether raw TP/FP/FN are meaningful for the aggregation.
func (a Aggregation) HasCounts() bool { return a == Micro }

// HasStd reports whether a cross-document standard deviation exists.
func (a Aggregation) HasStd() bool { return a == MacroDoc }
