package stratum

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const UnionPrefix = "union_lit_meto"

// NoiseBand filters entities by the normalized Levenshtein distance between
// their OCR and manual transcript.
type NoiseBand struct {
	Lower float64
	Upper float64
}

// Contains is half-open on the upper bound, except for a band reaching the
// maximal distance of 1.0.
func (b NoiseBand) Contains(led float64) bool {
	if led < b.Lower {
		return false
	}
	if b.Upper >= 1.0 {
		return led <= b.Upper
	}
	return led < b.Upper
}

func (b NoiseBand) Label() string {
	return "LED-" + formatBound(b.Lower) + "-" + formatBound(b.Upper)
}

// Period filters documents by publication date, [Start, End).
type Period struct {
	Start time.Time
	End   time.Time
}

func (p Period) Contains(date time.Time) bool {
	return !date.Before(p.Start) && date.Before(p.End)
}

// Label renders a period by year only, whatever precision it was given in.
func (p Period) Label() string {
	return fmt.Sprintf("TIME-%s-%s", p.Start.Format("2006"), p.End.Format("2006"))
}

// Stratum is one concrete combination of filters. A nil filter means all data.
type Stratum struct {
	Noise  *NoiseBand
	Period *Period
	// Cutoff is the top-n link cutoff for NEL; zero when the task ranks no links.
	Cutoff int
	Union  bool
}

func NoiseLabel(b *NoiseBand) string {
	if b == nil {
		return "LED-ALL"
	}
	return b.Label()
}

func TimeLabel(p *Period) string {
	if p == nil {
		return "TIME-ALL"
	}
	return p.Label()
}

// Label renders the stratum: noise, then time, then cutoff, with the union
// prefix in front.
func (s Stratum) Label() string {
	return s.Suffix("")
}

// Suffix is the stratum part of an evaluation label, with an optional
// user-supplied prefix.
func (s Stratum) Suffix(userSuffix string) string {
	label := NoiseLabel(s.Noise) + "-" + TimeLabel(s.Period)
	if s.Cutoff > 0 {
		label += fmt.Sprintf("-@%d", s.Cutoff)
	}
	if userSuffix != "" {
		label = userSuffix + "-" + label
	}
	if s.Union {
		label = UnionPrefix + "-" + label
	}
	return label
}

// NBest is the cutoff passed to the matcher; one when none was set.
func (s Stratum) NBest() int {
	if s.Cutoff <= 0 {
		return 1
	}
	return s.Cutoff
}

// IsUnfiltered reports whether the stratum covers all noise levels and periods.
func (s Stratum) IsUnfiltered() bool {
	return s.Noise == nil && s.Period == nil
}

// formatBound renders the shortest round-trip form, keeping a decimal point
// on whole numbers so that 0 renders as 0.0. Magnitudes below 1e-4 or from
// 1e16 up switch to exponent form (1e-05, 1e+16).
func formatBound(f float64) string {
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
