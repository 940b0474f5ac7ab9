package evaluator

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// Tagset is the set of in-scope tags, stored upper-cased.
type Tagset map[string]struct{}

func NewTagset(tags ...string) Tagset {
	ts := make(Tagset, len(tags))
	for _, t := range tags {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t != "" {
			ts[t] = struct{}{}
		}
	}
	return ts
}

// LoadTagset reads one tag per line.
func LoadTagset(path string) (Tagset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tagset file: %w", err)
	}
	return NewTagset(strings.Split(string(data), "\n")...), nil
}

// Contains compares case-insensitively. A nil Tagset contains every tag.
func (ts Tagset) Contains(tag string) bool {
	if ts == nil {
		return true
	}
	_, ok := ts[strings.ToUpper(tag)]
	return ok
}

func (ts Tagset) Sorted() []string {
	out := make([]string, 0, len(ts))
	for t := range ts {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
