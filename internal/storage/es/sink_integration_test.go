//go:build integration

package es

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/metrics"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/report"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/storage"
	pkgtesting "github.com/impresso/CLEF-HIPE-2020-scorer/pkg/testing"
)

func TestSink_SaveRun(t *testing.T) {
	ctx := context.Background()
	container := pkgtesting.NewESContainer(ctx, t)

	cfg := ClientConfig{Addresses: []string{container.Address}, IndexName: "hipe-results-test"}
	sink, err := NewSink(ctx, cfg, nil)
	require.NoError(t, err)
	defer sink.Close()

	// second construction finds the existing index
	_, err = NewSink(ctx, cfg, nil)
	require.NoError(t, err)

	run := storage.NewRun("nel", "sys", "nel", "gold.tsv", "pred.tsv", []report.Row{
		{System: "sys", Evaluation: "NEL-LIT-micro-fuzzy-LED-ALL-TIME-ALL-@1", Label: "ALL", F1: metrics.Of(0.4)},
		{System: "sys", Evaluation: "NEL-LIT-macro_doc-fuzzy-LED-ALL-TIME-ALL-@1", Label: "ALL", F1: metrics.Of(0.3)},
	})
	require.NoError(t, sink.SaveRun(ctx, run))

	res, err := sink.client.Count().Index(cfg.IndexName).Do(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Count)
}
