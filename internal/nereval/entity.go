package nereval

import (
	"strings"

	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/conll"
)

// entity is a span of tokens [start, end) with its labels. For gold entities
// labels are the accepted alternatives; for predictions they are ranked
// candidates. labels[0] is the tag the entity is reported under.
type entity struct {
	start  int
	end    int
	labels []string
}

func (e entity) tag() string {
	return e.labels[0]
}

func (e entity) sameSpan(o entity) bool {
	return e.start == o.start && e.end == o.end
}

func (e entity) overlaps(o entity) bool {
	return e.start < o.end && o.start < e.end
}

// splitIOB returns the prefix ("B", "I" or "") and the type of a label.
func splitIOB(label string) (string, string) {
	if len(label) > 2 && label[1] == '-' && (label[0] == 'B' || label[0] == 'I') {
		return label[:1], label[2:]
	}
	return "", label
}

// extractNERC groups IOB labels of one column into entities. An I- label of
// another type opens a new entity. Unless mergeLines is set, an EndOfLine
// flag closes the running entity.
func extractNERC(tokens []conll.Token, col, misc int, mergeLines bool) []entity {
	var out []entity
	var cur *entity

	flush := func() {
		if cur != nil {
			out = append(out, *cur)
			cur = nil
		}
	}

	for i, tok := range tokens {
		if !mergeLines && i > 0 && conll.ParseMisc(tokens[i-1].Label(misc)).EndOfLine() {
			flush()
		}

		label := tok.Label(col)
		if conll.IsOutside(label) {
			flush()
			continue
		}

		prefix, typ := splitIOB(label)
		if prefix == "B" || cur == nil || cur.tag() != typ {
			flush()
			cur = &entity{start: i, end: i + 1, labels: []string{typ}}
			continue
		}
		cur.end = i + 1
	}
	flush()

	return out
}

// extractNEL groups maximal runs of identical link cells. A cell may hold a
// ranked candidate list separated by "|".
func extractNEL(tokens []conll.Token, col, misc int, mergeLines bool) []entity {
	var out []entity
	var cur *entity
	var curCell string

	flush := func() {
		if cur != nil {
			out = append(out, *cur)
			cur = nil
			curCell = ""
		}
	}

	for i, tok := range tokens {
		if !mergeLines && i > 0 && conll.ParseMisc(tokens[i-1].Label(misc)).EndOfLine() {
			flush()
		}

		cell := tok.Label(col)
		if conll.IsOutside(cell) {
			flush()
			continue
		}
		if cur != nil && cell == curCell {
			cur.end = i + 1
			continue
		}

		flush()
		cur = &entity{start: i, end: i + 1, labels: splitCandidates(cell)}
		curCell = cell
	}
	flush()

	return out
}

func splitCandidates(cell string) []string {
	parts := strings.Split(cell, "|")
	out := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" && !conll.IsOutside(p) {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{cell}
	}
	return out
}
