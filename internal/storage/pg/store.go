package pg

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/metrics"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/report"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/storage"
)

var rowColumns = []string{
	"run_id", "position", "system", "evaluation", "label",
	"p", "r", "f1", "f1_std", "p_std", "r_std", "tp", "fp", "fn",
}

// Store keeps runs and their rows in Postgres. It is both a storage.Sink
// and a storage.Reader.
type Store struct {
	pool   *ConnectionPool
	db     *pgxpool.Pool
	logger *slog.Logger
}

func NewStore(pool *ConnectionPool, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{pool: pool, db: pool.conn, logger: logger}
}

// SaveRun inserts the run and copies its rows in one transaction.
func (s *Store) SaveRun(ctx context.Context, run storage.Run) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO runs (id, job_name, system, task, ref_path, pred_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		run.ID, run.JobName, run.System, run.Task, run.Ref, run.Pred, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	rows := make([][]any, len(run.Rows))
	for i, r := range run.Rows {
		rows[i] = []any{
			run.ID, i, r.System, r.Evaluation, r.Label,
			r.P.Ptr(), r.R.Ptr(), r.F1.Ptr(), r.F1Std.Ptr(), r.PStd.Ptr(), r.RStd.Ptr(),
			r.TP.Ptr(), r.FP.Ptr(), r.FN.Ptr(),
		}
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{"result_rows"}, rowColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to copy result rows: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}

	s.logger.Info("run stored", "run", run.ID, "system", run.System, "rows", n)
	return nil
}

func (s *Store) ListRuns(ctx context.Context, limit int) ([]storage.RunInfo, error) {
	rows, err := s.db.Query(ctx, `
		SELECT r.id, r.job_name, r.system, r.task, r.created_at, count(rr.position)
		FROM runs r
		LEFT JOIN result_rows rr ON rr.run_id = r.id
		GROUP BY r.id
		ORDER BY r.created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var out []storage.RunInfo
	for rows.Next() {
		var ri storage.RunInfo
		if err := rows.Scan(&ri.ID, &ri.JobName, &ri.System, &ri.Task, &ri.CreatedAt, &ri.RowCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		out = append(out, ri)
	}
	return out, rows.Err()
}

// ListRows returns the rows of a run in report order.
func (s *Store) ListRows(ctx context.Context, runID uuid.UUID, filter storage.RowFilter) ([]report.Row, error) {
	var exists bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM runs WHERE id = $1)`, runID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to look up run: %w", err)
	}
	if !exists {
		return nil, storage.ErrRunNotFound
	}

	where := []string{"run_id = $1"}
	args := []any{runID}
	if filter.Evaluation != "" {
		args = append(args, filter.Evaluation)
		where = append(where, fmt.Sprintf("evaluation = $%d", len(args)))
	}
	if filter.Label != "" {
		args = append(args, filter.Label)
		where = append(where, fmt.Sprintf("label = $%d", len(args)))
	}

	query := `
		SELECT system, evaluation, label, p, r, f1, f1_std, p_std, r_std, tp, fp, fn
		FROM result_rows
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY position`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list rows: %w", err)
	}
	defer rows.Close()

	var out []report.Row
	for rows.Next() {
		var r report.Row
		var vals [9]*float64
		if err := rows.Scan(&r.System, &r.Evaluation, &r.Label,
			&vals[0], &vals[1], &vals[2], &vals[3], &vals[4], &vals[5], &vals[6], &vals[7], &vals[8],
		); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		r.P, r.R, r.F1 = metrics.FromPtr(vals[0]), metrics.FromPtr(vals[1]), metrics.FromPtr(vals[2])
		r.F1Std, r.PStd, r.RStd = metrics.FromPtr(vals[3]), metrics.FromPtr(vals[4]), metrics.FromPtr(vals[5])
		r.TP, r.FP, r.FN = metrics.FromPtr(vals[6]), metrics.FromPtr(vals[7]), metrics.FromPtr(vals[8])
		out = append(out, r)
	}
	return out, rows.Err()
}

// Leaderboard ranks systems by their best F1 for one evaluation label.
func (s *Store) Leaderboard(ctx context.Context, evaluation, label string, limit int) ([]storage.Standing, error) {
	rows, err := s.db.Query(ctx, `
		SELECT system, run_id, p, r, f1, created_at FROM (
			SELECT DISTINCT ON (rr.system) rr.system, rr.run_id, rr.p, rr.r, rr.f1, ru.created_at
			FROM result_rows rr
			JOIN runs ru ON ru.id = rr.run_id
			WHERE rr.evaluation = $1 AND rr.label = $2
			ORDER BY rr.system, rr.f1 DESC NULLS LAST, ru.created_at DESC
		) best
		ORDER BY f1 DESC NULLS LAST, system
		LIMIT $3`, evaluation, label, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var out []storage.Standing
	for rows.Next() {
		var st storage.Standing
		var p, r, f1 *float64
		if err := rows.Scan(&st.System, &st.RunID, &p, &r, &f1, &st.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan standing: %w", err)
		}
		st.Rank = len(out) + 1
		st.P, st.R, st.F1 = metrics.FromPtr(p), metrics.FromPtr(r), metrics.FromPtr(f1)
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *Store) Close() {
	s.pool.Close()
}
