package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/apperr"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/evaluator"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/metrics"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/spec"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/stratum"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/task"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeMatcher struct {
	mu     sync.Mutex
	calls  []evaluator.Request
	perTag bool
	failOn func(evaluator.Request) bool
}

func (f *fakeMatcher) Evaluate(_ context.Context, req evaluator.Request) (metrics.RegimeMetrics, metrics.TagMetrics, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	if f.failOn != nil && f.failOn(req) {
		return nil, nil, errors.New("misaligned documents")
	}

	c := metrics.Counts{TP: 2, FP: 1, FN: 1}
	m := metrics.Compute(c, []metrics.Counts{c})
	global := metrics.RegimeMetrics{metrics.Strict: m, metrics.Fuzzy: m}

	var tags metrics.TagMetrics
	if f.perTag {
		tags = metrics.TagMetrics{"pers": global}
	}
	return global, tags, nil
}

func (f *fakeMatcher) requests() []evaluator.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]evaluator.Request(nil), f.calls...)
}

func mustPlan(t *testing.T, tk task.Task, req stratum.Request) stratum.Plan {
	t.Helper()
	p, err := stratum.NewPlan(tk, req)
	require.NoError(t, err)
	return p
}

func TestEvaluate_NERCNoiseStrata(t *testing.T) {
	m := &fakeMatcher{}
	r := New(DefaultConfig(), nil, nil)
	plan := mustPlan(t, task.NERCCoarse, stratum.Request{NoiseLevels: "0.0-0.1,0.1-1.0"})

	strata, err := r.Evaluate(context.Background(), m, Input{System: "sys", Plan: plan})
	require.NoError(t, err)
	require.Len(t, strata, 3)

	var rows int
	for _, s := range strata {
		rows += len(s.Rows)
	}
	// 3 strata x 2 columns x 2 aggregations x 2 regimes, ALL only
	assert.Equal(t, 24, rows)

	assert.Equal(t, "NE-COARSE-LIT-micro-fuzzy-LED-ALL-TIME-ALL", strata[0].Rows[0].Evaluation)
	assert.Equal(t, "NE-COARSE-LIT-micro-fuzzy-LED-0.0-0.1-TIME-ALL", strata[1].Rows[0].Evaluation)
	assert.Equal(t, "NE-COARSE-METO-macro_doc-strict-LED-0.1-1.0-TIME-ALL", strata[2].Rows[7].Evaluation)
	assert.Len(t, m.requests(), 6)
}

func TestEvaluate_UnfilteredStratumMatchesPlainRun(t *testing.T) {
	r := New(DefaultConfig(), nil, nil)

	plain, err := r.Evaluate(context.Background(), &fakeMatcher{perTag: true},
		Input{System: "sys", Plan: mustPlan(t, task.NERCFine, stratum.Request{})})
	require.NoError(t, err)

	stratified, err := r.Evaluate(context.Background(), &fakeMatcher{perTag: true},
		Input{System: "sys", Plan: mustPlan(t, task.NERCFine, stratum.Request{NoiseLevels: "0.0-0.5"})})
	require.NoError(t, err)

	if diff := cmp.Diff(plain[0].Rows, stratified[0].Rows); diff != "" {
		t.Errorf("LED-ALL rows differ (-plain +stratified):\n%s", diff)
	}
}

func TestEvaluate_ParallelKeepsOrder(t *testing.T) {
	plan := mustPlan(t, task.NERCCoarse, stratum.Request{
		NoiseLevels: "0.0-0.1,0.1-0.3,0.3-1.0",
		TimePeriods: "1790-1850,1850-1900,1900-1950",
	})
	in := Input{System: "sys", Plan: plan, Suffix: "run1"}

	seq, err := New(Config{Workers: 1}, nil, nil).Evaluate(context.Background(), &fakeMatcher{perTag: true}, in)
	require.NoError(t, err)
	par, err := New(Config{Workers: 8}, nil, nil).Evaluate(context.Background(), &fakeMatcher{perTag: true}, in)
	require.NoError(t, err)

	require.Len(t, par, 16)
	if diff := cmp.Diff(seq, par); diff != "" {
		t.Errorf("parallel evaluation changed the result (-seq +par):\n%s", diff)
	}
}

func TestEvaluate_NEL(t *testing.T) {
	m := &fakeMatcher{perTag: true}
	r := New(DefaultConfig(), nil, nil)
	plan := mustPlan(t, task.NEL, stratum.Request{NBest: "1,3"})

	strata, err := r.Evaluate(context.Background(), m, Input{
		System: "sys",
		Plan:   plan,
		Tags:   evaluator.NewTagset("PERS"),
	})
	require.NoError(t, err)
	require.Len(t, strata, 2)

	for _, s := range strata {
		// 2 columns x 2 aggregations, fuzzy, ALL only
		require.Len(t, s.Rows, 4)
		for _, row := range s.Rows {
			assert.Equal(t, metrics.AllTag, row.Label)
			assert.Contains(t, row.Evaluation, "-fuzzy-")
		}
	}
	assert.Equal(t, "NEL-LIT-micro-fuzzy-LED-ALL-TIME-ALL-@3", strata[1].Rows[0].Evaluation)

	for _, req := range m.requests() {
		assert.Nil(t, req.Tags)
	}
}

func TestEvaluate_Union(t *testing.T) {
	m := &fakeMatcher{}
	r := New(DefaultConfig(), nil, nil)
	plan := mustPlan(t, task.NEL, stratum.Request{Union: true})

	strata, err := r.Evaluate(context.Background(), m, Input{System: "sys", Plan: plan})
	require.NoError(t, err)
	require.Len(t, strata[0].Rows, 2)
	assert.Equal(t, "NEL-LIT+NEL-METO-micro-fuzzy-union_lit_meto-LED-ALL-TIME-ALL-@1", strata[0].Rows[0].Evaluation)
	assert.Equal(t, []string{task.ColNELLit, task.ColNELMeto}, m.requests()[0].Columns)
}

func TestEvaluate_MatcherFailureAborts(t *testing.T) {
	m := &fakeMatcher{failOn: func(req evaluator.Request) bool { return req.Noise != nil }}
	r := New(Config{Workers: 4}, nil, nil)
	plan := mustPlan(t, task.NERCCoarse, stratum.Request{NoiseLevels: "0.0-0.1"})

	strata, err := r.Evaluate(context.Background(), m, Input{System: "sys", Plan: plan})
	require.Error(t, err)
	assert.Nil(t, strata)
	assert.Contains(t, err.Error(), "misaligned documents")
}

func TestRunJob(t *testing.T) {
	dir := t.TempDir()
	m := &fakeMatcher{perTag: true}
	var opened []string
	open := func(ref, pred, glue string) (evaluator.Matcher, error) {
		opened = append(opened, ref, pred, glue)
		return m, nil
	}

	job := spec.Job{
		Name:        "coarse",
		Ref:         "gold.tsv",
		Pred:        filepath.Join("runs", "teamx_bundle1_de_1.tsv"),
		Task:        "nerc_coarse",
		Outdir:      filepath.Join(dir, "out"),
		NoiseLevel:  "0.0-0.1",
		GlueingCols: "NE-FINE-LIT+NE-FINE-COMP",
	}

	jr, err := New(DefaultConfig(), open, nil).RunJob(context.Background(), job)
	require.NoError(t, err)

	assert.Equal(t, []string{"gold.tsv", job.Pred, "NE-FINE-LIT+NE-FINE-COMP"}, opened)
	assert.Equal(t, "teamx_bundle1_de_1", jr.System)
	assert.Equal(t, filepath.Join(dir, "out", "teamx_bundle1_de_1_nerc_coarse_LED-0.0-0.1.tsv"), jr.Paths.TSV)
	assert.Len(t, jr.Rows, 32)
	assert.Equal(t, jr.Strata[1].Bundle, jr.Last())

	for _, p := range []string{jr.Paths.TSV, jr.Paths.JSON} {
		_, err := os.Stat(p)
		assert.NoError(t, err, p)
	}
}

func TestRunJob_InvalidOptionsFailBeforeOpening(t *testing.T) {
	open := func(string, string, string) (evaluator.Matcher, error) {
		t.Fatal("matcher must not be opened")
		return nil, nil
	}

	_, err := New(DefaultConfig(), open, nil).RunJob(context.Background(), spec.Job{
		Ref: "gold.tsv", Pred: "pred.tsv", Task: "nerc_coarse", Union: true, SkipCheck: true,
	})
	var cfgErr *apperr.ConfigError
	assert.True(t, errors.As(err, &cfgErr))

	_, err = New(DefaultConfig(), open, nil).RunJob(context.Background(), spec.Job{
		Ref: "gold.tsv", Pred: "badname.tsv", Task: "nerc_coarse",
	})
	var vErr *apperr.ValidationError
	assert.True(t, errors.As(err, &vErr))

	_, err = New(DefaultConfig(), open, nil).RunJob(context.Background(), spec.Job{
		Ref: "gold.tsv", Pred: "pred.tsv", Task: "nel", NBest: "1,1", SkipCheck: true,
	})
	assert.True(t, errors.As(err, &vErr))
	assert.ErrorContains(t, err, "duplicate n-best value 1")
}

func TestRunAll_StopsAtFirstFailure(t *testing.T) {
	dir := t.TempDir()
	open := func(ref, _, _ string) (evaluator.Matcher, error) {
		if ref == "broken.tsv" {
			return nil, errors.New("cannot read")
		}
		return &fakeMatcher{}, nil
	}

	rs := &spec.RunSpec{Jobs: []spec.Job{
		{Name: "a", Ref: "gold.tsv", Pred: "a.tsv", Task: "nel", SkipCheck: true, Outdir: dir},
		{Name: "b", Ref: "broken.tsv", Pred: "b.tsv", Task: "nel", SkipCheck: true, Outdir: dir},
		{Name: "c", Ref: "gold.tsv", Pred: "c.tsv", Task: "nel", SkipCheck: true, Outdir: dir},
	}}

	results, err := New(DefaultConfig(), open, nil).RunAll(context.Background(), rs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `run job "b"`)
	assert.Len(t, results, 1)
}
