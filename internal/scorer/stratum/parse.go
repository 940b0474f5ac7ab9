package stratum

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/apperr"
)

const (
	yearLayout = "2006"
	dateLayout = "2006/01/02"
)

// ParseNoiseLevels parses "lower-upper,lower-upper". The result always starts
// with nil, the all-noise-levels stratum.
func ParseNoiseLevels(spec string) ([]*NoiseBand, error) {
	bands := []*NoiseBand{nil}
	if strings.TrimSpace(spec) == "" {
		return bands, nil
	}

	seen := make(map[string]bool)
	for _, item := range strings.Split(spec, ",") {
		lower, upper, err := splitPair(item)
		if err != nil {
			return nil, apperr.NewValidationWrap(fmt.Sprintf("invalid noise level %q", item), err)
		}
		lo, err := strconv.ParseFloat(lower, 64)
		if err != nil {
			return nil, apperr.NewValidationWrap(fmt.Sprintf("invalid noise level %q", item), err)
		}
		hi, err := strconv.ParseFloat(upper, 64)
		if err != nil {
			return nil, apperr.NewValidationWrap(fmt.Sprintf("invalid noise level %q", item), err)
		}
		if lo > hi {
			return nil, apperr.NewValidation(fmt.Sprintf("invalid noise level %q: lower bound exceeds upper bound", item))
		}
		band := &NoiseBand{Lower: lo, Upper: hi}
		if seen[band.Label()] {
			return nil, apperr.NewValidation(fmt.Sprintf("duplicate noise level %q", strings.TrimSpace(item)))
		}
		seen[band.Label()] = true
		bands = append(bands, band)
	}

	return bands, nil
}

// ParseTimePeriods parses "start-end,start-end" where every bound is a bare
// year, or else every bound is a YYYY/MM/DD date. The result always starts
// with nil, the all-time stratum.
func ParseTimePeriods(spec string) ([]*Period, error) {
	periods := []*Period{nil}
	if strings.TrimSpace(spec) == "" {
		return periods, nil
	}

	parsed, err := parsePeriods(spec, yearLayout)
	if err != nil {
		parsed, err = parsePeriods(spec, dateLayout)
		if err != nil {
			return nil, apperr.NewValidationWrap(fmt.Sprintf("invalid time period %q", spec), err)
		}
	}

	seen := make(map[string]bool, len(parsed))
	for _, p := range parsed {
		if seen[p.Label()] {
			return nil, apperr.NewValidation(fmt.Sprintf("duplicate time period %s in %q", p.Label(), spec))
		}
		seen[p.Label()] = true
	}

	return append(periods, parsed...), nil
}

func parsePeriods(spec, layout string) ([]*Period, error) {
	var periods []*Period
	for _, item := range strings.Split(spec, ",") {
		start, end, err := splitPair(item)
		if err != nil {
			return nil, err
		}
		s, err := time.Parse(layout, start)
		if err != nil {
			return nil, err
		}
		e, err := time.Parse(layout, end)
		if err != nil {
			return nil, err
		}
		if e.Before(s) {
			return nil, fmt.Errorf("period %q ends before it starts", item)
		}
		periods = append(periods, &Period{Start: s, End: e})
	}
	return periods, nil
}

// ParseCutoffs parses "1,3,5". An empty spec yields the default top-1 cutoff.
func ParseCutoffs(spec string) ([]int, error) {
	if strings.TrimSpace(spec) == "" {
		return []int{1}, nil
	}

	parts := strings.Split(spec, ",")
	vals := make([]int, 0, len(parts))
	seen := make(map[int]bool, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, apperr.NewValidationWrap(fmt.Sprintf("invalid n-best value %q", p), err)
		}
		if v <= 0 {
			return nil, apperr.NewValidation(fmt.Sprintf("n-best value must be positive, got %d", v))
		}
		if seen[v] {
			return nil, apperr.NewValidation(fmt.Sprintf("duplicate n-best value %d", v))
		}
		seen[v] = true
		vals = append(vals, v)
	}
	return vals, nil
}

func splitPair(item string) (string, string, error) {
	parts := strings.Split(strings.TrimSpace(item), "-")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("expected two bounds separated by '-', got %q", item)
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}
