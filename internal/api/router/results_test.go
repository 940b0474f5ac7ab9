package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/apperr"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/metrics"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/report"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/storage"
)

type fakeReader struct {
	runID      uuid.UUID
	lastLimit  int
	lastFilter storage.RowFilter
	lastLabel  string
}

func (f *fakeReader) ListRuns(_ context.Context, limit int) ([]storage.RunInfo, error) {
	f.lastLimit = limit
	return []storage.RunInfo{{ID: f.runID, System: "sys", Task: "nel", CreatedAt: time.Unix(0, 0).UTC(), RowCount: 2}}, nil
}

func (f *fakeReader) ListRows(_ context.Context, id uuid.UUID, filter storage.RowFilter) ([]report.Row, error) {
	if id != f.runID {
		return nil, storage.ErrRunNotFound
	}
	f.lastFilter = filter
	return []report.Row{{System: "sys", Evaluation: filter.Evaluation, Label: "ALL", F1: metrics.Of(0.5)}}, nil
}

func (f *fakeReader) Leaderboard(_ context.Context, evaluation, label string, limit int) ([]storage.Standing, error) {
	f.lastLabel = label
	f.lastLimit = limit
	return []storage.Standing{{Rank: 1, System: "sys", RunID: f.runID, F1: metrics.Of(0.8)}}, nil
}

func newTestServer(t *testing.T) (*echo.Echo, *fakeReader) {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler(nil)
	reader := &fakeReader{runID: uuid.New()}
	NewResultsRouter(e, reader).Bind()
	return e, reader
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestListRuns(t *testing.T) {
	e, reader := newTestServer(t)

	rec := get(e, "/runs")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, DefaultLimit, reader.lastLimit)

	var body RunsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Runs, 1)
	assert.Equal(t, reader.runID, body.Runs[0].ID)

	assert.Equal(t, http.StatusBadRequest, get(e, "/runs?limit=0").Code)
	assert.Equal(t, http.StatusBadRequest, get(e, "/runs?limit=abc").Code)
}

func TestListRows(t *testing.T) {
	e, reader := newTestServer(t)

	rec := get(e, "/runs/"+reader.runID.String()+"/rows?evaluation=NEL-LIT-micro-fuzzy-LED-ALL-TIME-ALL-@1&label=ALL")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, storage.RowFilter{Evaluation: "NEL-LIT-micro-fuzzy-LED-ALL-TIME-ALL-@1", Label: "ALL"}, reader.lastFilter)
	assert.Contains(t, rec.Body.String(), `"F1":0.5`)
	assert.Contains(t, rec.Body.String(), `"TP":null`)

	assert.Equal(t, http.StatusNotFound, get(e, "/runs/"+uuid.NewString()+"/rows").Code)
	assert.Equal(t, http.StatusBadRequest, get(e, "/runs/not-a-uuid/rows").Code)
}

func TestLeaderboard(t *testing.T) {
	e, reader := newTestServer(t)

	rec := get(e, "/leaderboard?evaluation=NE-COARSE-LIT-micro-fuzzy-LED-ALL-TIME-ALL&limit=5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, metrics.AllTag, reader.lastLabel)
	assert.Equal(t, 5, reader.lastLimit)

	var body LeaderboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Standings, 1)
	assert.Equal(t, metrics.Of(0.8), body.Standings[0].F1)

	assert.Equal(t, http.StatusBadRequest, get(e, "/leaderboard").Code)
}
