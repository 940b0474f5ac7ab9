package router

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/apperr"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/metrics"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/report"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/storage"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

type ResultsRouter struct {
	e      *echo.Echo
	reader storage.Reader
}

func NewResultsRouter(e *echo.Echo, reader storage.Reader) *ResultsRouter {
	return &ResultsRouter{e: e, reader: reader}
}

func (r *ResultsRouter) Bind() {
	r.e.GET("/runs", r.listRuns)
	r.e.GET("/runs/:id/rows", r.listRows)
	r.e.GET("/leaderboard", r.leaderboard)
}

type RunsResponse struct {
	Runs []storage.RunInfo `json:"runs"`
}

type RowsResponse struct {
	RunID uuid.UUID    `json:"run_id"`
	Rows  []report.Row `json:"rows"`
}

type LeaderboardResponse struct {
	Evaluation string             `json:"evaluation"`
	Label      string             `json:"label"`
	Standings  []storage.Standing `json:"standings"`
}

func (r *ResultsRouter) listRuns(c echo.Context) error {
	limit, err := parseLimit(c.QueryParam("limit"))
	if err != nil {
		return err
	}

	runs, err := r.reader.ListRuns(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	if runs == nil {
		runs = []storage.RunInfo{}
	}
	return c.JSON(http.StatusOK, RunsResponse{Runs: runs})
}

func (r *ResultsRouter) listRows(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NewValidationWrap("invalid run id", err)
	}

	rows, err := r.reader.ListRows(c.Request().Context(), id, storage.RowFilter{
		Evaluation: c.QueryParam("evaluation"),
		Label:      c.QueryParam("label"),
	})
	if errors.Is(err, storage.ErrRunNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "run not found")
	}
	if err != nil {
		return err
	}
	if rows == nil {
		rows = []report.Row{}
	}
	return c.JSON(http.StatusOK, RowsResponse{RunID: id, Rows: rows})
}

func (r *ResultsRouter) leaderboard(c echo.Context) error {
	evaluation := c.QueryParam("evaluation")
	if evaluation == "" {
		return apperr.NewValidation("evaluation parameter is required")
	}
	label := c.QueryParam("label")
	if label == "" {
		label = metrics.AllTag
	}
	limit, err := parseLimit(c.QueryParam("limit"))
	if err != nil {
		return err
	}

	standings, err := r.reader.Leaderboard(c.Request().Context(), evaluation, label, limit)
	if err != nil {
		return err
	}
	if standings == nil {
		standings = []storage.Standing{}
	}
	return c.JSON(http.StatusOK, LeaderboardResponse{Evaluation: evaluation, Label: label, Standings: standings})
}

func parseLimit(s string) (int, error) {
	if s == "" {
		return DefaultLimit, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > MaxLimit {
		return 0, apperr.NewValidation("limit must be a number between 1 and " + strconv.Itoa(MaxLimit))
	}
	return n, nil
}
