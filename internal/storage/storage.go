// Package storage persists evaluation runs outside the report files.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/metrics"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/report"
)

type Type string

const (
	None Type = "none"
	PG   Type = "pg"
	ES   Type = "es"
)

var Types = []Type{None, PG, ES}

func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case "", None:
		return None, nil
	case PG, ES:
		return t, nil
	default:
		return "", fmt.Errorf("unsupported sink type %q, expected one of %v", s, Types)
	}
}

var ErrRunNotFound = errors.New("run not found")

// Run is one job's accumulated rows.
type Run struct {
	ID        uuid.UUID
	JobName   string
	System    string
	Task      string
	Ref       string
	Pred      string
	CreatedAt time.Time
	Rows      []report.Row
}

func NewRun(jobName, system, task, ref, pred string, rows []report.Row) Run {
	return Run{
		ID:        uuid.New(),
		JobName:   jobName,
		System:    system,
		Task:      task,
		Ref:       ref,
		Pred:      pred,
		CreatedAt: time.Now().UTC(),
		Rows:      rows,
	}
}

// RunInfo describes a stored run without its rows.
type RunInfo struct {
	ID        uuid.UUID `json:"id"`
	JobName   string    `json:"job_name"`
	System    string    `json:"system"`
	Task      string    `json:"task"`
	CreatedAt time.Time `json:"created_at"`
	RowCount  int       `json:"row_count"`
}

type RowFilter struct {
	Evaluation string
	Label      string
}

// Standing is one system's best score for an evaluation label.
type Standing struct {
	Rank      int           `json:"rank"`
	System    string        `json:"system"`
	RunID     uuid.UUID     `json:"run_id"`
	P         metrics.Value `json:"P"`
	R         metrics.Value `json:"R"`
	F1        metrics.Value `json:"F1"`
	CreatedAt time.Time     `json:"created_at"`
}

type Sink interface {
	SaveRun(ctx context.Context, run Run) error
	Close()
}

type Reader interface {
	ListRuns(ctx context.Context, limit int) ([]RunInfo, error)
	ListRows(ctx context.Context, runID uuid.UUID, filter RowFilter) ([]report.Row, error)
	Leaderboard(ctx context.Context, evaluation, label string, limit int) ([]Standing, error)
}
