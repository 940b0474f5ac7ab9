// Package nereval is the reference matcher: it aligns gold and predicted
// HIPE annotations and counts matches under the strict and fuzzy regimes.
package nereval

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/conll"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/evaluator"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/metrics"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/task"
)

var regimes = [...]metrics.Regime{metrics.Strict, metrics.Fuzzy}

// Evaluator holds an aligned gold and prediction corpus. It is read-only
// after construction and safe for concurrent use.
type Evaluator struct {
	gold *conll.Corpus
	// pred holds prediction tokens re-split along the gold documents.
	pred      [][]conll.Token
	predIndex map[string]int
}

func Open(refPath, predPath string, pairs []GluePair) (*Evaluator, error) {
	gold, err := conll.ParseFile(refPath)
	if err != nil {
		return nil, err
	}
	pred, err := conll.ParseFile(predPath)
	if err != nil {
		return nil, err
	}
	return New(gold, pred, pairs)
}

// New aligns the prediction tokens with the gold tokens. Both files must
// contain the same tokens in the same order.
func New(gold, pred *conll.Corpus, pairs []GluePair) (*Evaluator, error) {
	for _, p := range pairs {
		if err := glue(gold, p); err != nil {
			return nil, fmt.Errorf("gold: %w", err)
		}
		if err := glue(pred, p); err != nil {
			return nil, fmt.Errorf("prediction: %w", err)
		}
	}

	var predTokens []conll.Token
	for _, d := range pred.Docs {
		predTokens = append(predTokens, d.Tokens...)
	}

	e := &Evaluator{
		gold:      gold,
		pred:      make([][]conll.Token, len(gold.Docs)),
		predIndex: make(map[string]int, len(pred.Columns)),
	}
	for i, name := range pred.Columns {
		e.predIndex[strings.TrimSpace(name)] = i
	}
	offset := 0
	for i, d := range gold.Docs {
		if offset+len(d.Tokens) > len(predTokens) {
			return nil, fmt.Errorf("prediction ends before gold document %q", d.ID)
		}
		chunk := predTokens[offset : offset+len(d.Tokens)]
		for j, tok := range d.Tokens {
			if tok.Text() != chunk[j].Text() {
				return nil, fmt.Errorf("token mismatch: gold line %d %q, prediction line %d %q",
					tok.Line, tok.Text(), chunk[j].Line, chunk[j].Text())
			}
		}
		e.pred[i] = chunk
		offset += len(d.Tokens)
	}
	if offset != len(predTokens) {
		return nil, fmt.Errorf("prediction has %d tokens, gold has %d", len(predTokens), offset)
	}

	return e, nil
}

type columns struct {
	gold     []int
	pred     []int
	goldMisc int
	predMisc int
}

func (e *Evaluator) resolve(names []string, predCorpusCols map[string]int) (columns, error) {
	cols := columns{goldMisc: -1, predMisc: -1}
	for _, name := range names {
		g, ok := e.gold.Column(name)
		if !ok {
			return cols, fmt.Errorf("column %q missing in gold file", name)
		}
		p, ok := predCorpusCols[name]
		if !ok {
			return cols, fmt.Errorf("column %q missing in prediction file", name)
		}
		cols.gold = append(cols.gold, g)
		cols.pred = append(cols.pred, p)
	}
	if i, ok := e.gold.Column(conll.MiscColumn); ok {
		cols.goldMisc = i
	}
	if i, ok := predCorpusCols[conll.MiscColumn]; ok {
		cols.predMisc = i
	}
	return cols, nil
}

// Evaluate implements evaluator.Matcher.
func (e *Evaluator) Evaluate(ctx context.Context, req evaluator.Request) (metrics.RegimeMetrics, metrics.TagMetrics, error) {
	if len(req.Columns) == 0 {
		return nil, nil, fmt.Errorf("no column requested")
	}

	cols, err := e.resolve(req.Columns, e.predIndex)
	if err != nil {
		return nil, nil, err
	}

	extract := extractNERC
	if req.EvalType == task.EvalNEL {
		extract = extractNEL
	}
	nBest := max(req.NBest, 1)

	acc := newAccumulator()
	for d, doc := range e.gold.Docs {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		if req.Period != nil && (!doc.HasDate || !req.Period.Contains(doc.Date)) {
			continue
		}

		goldEnts := collect(doc.Tokens, cols.gold, cols.goldMisc, extract, req.MergeLines, 0)
		predEnts := collect(e.pred[d], cols.pred, cols.predMisc, extract, req.MergeLines, nBest)

		goldEnts = e.filter(goldEnts, doc.Tokens, cols.goldMisc, req)
		predEnts = e.filter(predEnts, doc.Tokens, cols.goldMisc, req)

		acc.add(match(goldEnts, predEnts))
	}

	return acc.results()
}

type extractor func(tokens []conll.Token, col, misc int, mergeLines bool) []entity

// collect extracts entities from the first column and merges the labels
// that the other columns of a group carry at the entity start. nBest > 0
// truncates each column's ranked candidates.
func collect(tokens []conll.Token, cols []int, misc int, extract extractor, mergeLines bool, nBest int) []entity {
	ents := extract(tokens, cols[0], misc, mergeLines)

	for i := range ents {
		labels := truncate(ents[i].labels, nBest)
		for _, extra := range cols[1:] {
			cell := tokens[ents[i].start].Label(extra)
			if conll.IsOutside(cell) {
				continue
			}
			var alt []string
			if _, typ := splitIOB(cell); typ != cell {
				alt = []string{typ}
			} else {
				alt = truncate(splitCandidates(cell), nBest)
			}
			for _, l := range alt {
				if !slices.Contains(labels, l) {
					labels = append(labels, l)
				}
			}
		}
		ents[i].labels = labels
	}
	return ents
}

func truncate(labels []string, n int) []string {
	if n > 0 && len(labels) > n {
		labels = labels[:n]
	}
	return slices.Clone(labels)
}

// filter drops entities outside the tag scope or the noise band. Noise is
// read from the gold tokens the entity spans.
func (e *Evaluator) filter(ents []entity, goldTokens []conll.Token, misc int, req evaluator.Request) []entity {
	out := ents[:0]
	for _, ent := range ents {
		if !req.Tags.Contains(ent.tag()) {
			continue
		}
		if req.Noise != nil {
			led, ok := entityLED(goldTokens[ent.start:ent.end], misc)
			if !ok || !req.Noise.Contains(led) {
				continue
			}
		}
		out = append(out, ent)
	}
	return out
}

func entityLED(tokens []conll.Token, misc int) (float64, bool) {
	var sum float64
	var n int
	for _, tok := range tokens {
		if v, ok := conll.ParseMisc(tok.Label(misc)).LED(); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
