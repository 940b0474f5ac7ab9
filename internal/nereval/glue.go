package nereval

import (
	"fmt"
	"strings"

	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/apperr"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/conll"
)

// GluePair joins the labels of Second onto the labels of First.
type GluePair struct {
	First  string
	Second string
}

// ParseGluePairs parses "COL1+COL2,COL3+COL4".
func ParseGluePairs(spec string) ([]GluePair, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, nil
	}

	var pairs []GluePair
	for _, item := range strings.Split(spec, ",") {
		first, second, ok := strings.Cut(strings.TrimSpace(item), "+")
		if !ok || first == "" || second == "" || strings.Contains(second, "+") {
			return nil, apperr.NewValidation(fmt.Sprintf("invalid glueing columns %q, expected COL1+COL2", item))
		}
		pairs = append(pairs, GluePair{First: first, Second: second})
	}
	return pairs, nil
}

// glue rewrites column First to "<typeFirst>.<typeSecond>", keeping the IOB
// prefix of First. Tokens outside an entity in First are left untouched.
func glue(c *conll.Corpus, p GluePair) error {
	ia, ok := c.Column(p.First)
	if !ok {
		return fmt.Errorf("glueing column %q not found", p.First)
	}
	ib, ok := c.Column(p.Second)
	if !ok {
		return fmt.Errorf("glueing column %q not found", p.Second)
	}

	for _, doc := range c.Docs {
		for _, tok := range doc.Tokens {
			a := tok.Fields[ia]
			if conll.IsOutside(a) {
				continue
			}
			prefix, typeA := splitIOB(a)

			typeB := "O"
			if b := tok.Fields[ib]; !conll.IsOutside(b) {
				_, typeB = splitIOB(b)
			}

			glued := typeA + "." + typeB
			if prefix != "" {
				glued = prefix + "-" + glued
			}
			tok.Fields[ia] = glued
		}
	}
	return nil
}
