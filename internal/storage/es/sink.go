package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"

	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/storage"
)

// RowDocument is one report row as indexed, with its run attached.
type RowDocument struct {
	RunID      string    `json:"run_id"`
	JobName    string    `json:"job_name"`
	Task       string    `json:"task"`
	Position   int       `json:"position"`
	System     string    `json:"system"`
	Evaluation string    `json:"evaluation"`
	Label      string    `json:"label"`
	P          *float64  `json:"P"`
	R          *float64  `json:"R"`
	F1         *float64  `json:"F1"`
	F1Std      *float64  `json:"F1_std"`
	PStd       *float64  `json:"P_std"`
	RStd       *float64  `json:"R_std"`
	TP         *float64  `json:"TP"`
	FP         *float64  `json:"FP"`
	FN         *float64  `json:"FN"`
	CreatedAt  time.Time `json:"created_at"`
}

// Sink bulk-indexes report rows, one document per row.
type Sink struct {
	client    *elasticsearch.TypedClient
	indexName string
	logger    *slog.Logger
}

func NewSink(ctx context.Context, config ClientConfig, logger *slog.Logger) (*Sink, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Sink{client: client, indexName: config.IndexName, logger: logger}
	if err := s.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}
	return s, nil
}

func toDocuments(run storage.Run) []RowDocument {
	docs := make([]RowDocument, len(run.Rows))
	for i, r := range run.Rows {
		docs[i] = RowDocument{
			RunID:      run.ID.String(),
			JobName:    run.JobName,
			Task:       run.Task,
			Position:   i,
			System:     r.System,
			Evaluation: r.Evaluation,
			Label:      r.Label,
			P:          r.P.Ptr(),
			R:          r.R.Ptr(),
			F1:         r.F1.Ptr(),
			F1Std:      r.F1Std.Ptr(),
			PStd:       r.PStd.Ptr(),
			RStd:       r.RStd.Ptr(),
			TP:         r.TP.Ptr(),
			FP:         r.FP.Ptr(),
			FN:         r.FN.Ptr(),
			CreatedAt:  run.CreatedAt,
		}
	}
	return docs
}

func documentID(d RowDocument) string {
	return fmt.Sprintf("%s-%d", d.RunID, d.Position)
}

func (s *Sink) SaveRun(ctx context.Context, run storage.Run) error {
	if len(run.Rows) == 0 {
		return nil
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         s.indexName,
		Client:        s.client,
		NumWorkers:    2,
		FlushBytes:    5e+6,
		FlushInterval: 30 * time.Second,
		Refresh:       "wait_for",
	})
	if err != nil {
		return fmt.Errorf("failed to create bulk indexer: %w", err)
	}

	var failed atomic.Int64
	for _, doc := range toDocuments(run) {
		body, err := json.Marshal(doc)
		if err != nil {
			failed.Add(1)
			s.logger.Error("failed to marshal row", "error", err, "evaluation", doc.Evaluation)
			continue
		}

		err = bi.Add(ctx, esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: documentID(doc),
			Body:       bytes.NewReader(body),
			OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				failed.Add(1)
				if err != nil {
					s.logger.Error("bulk index error", "error", err, "id", item.DocumentID)
				} else {
					s.logger.Error("bulk index error", "status", res.Status, "error", res.Error.Type, "reason", res.Error.Reason, "id", item.DocumentID)
				}
			},
		})
		if err != nil {
			failed.Add(1)
			s.logger.Error("failed to add row to bulk indexer", "error", err)
		}
	}

	if err := bi.Close(ctx); err != nil {
		return fmt.Errorf("failed to close bulk indexer: %w", err)
	}

	stats := bi.Stats()
	s.logger.Info("run indexed",
		"run", run.ID,
		"indexed", stats.NumIndexed,
		"failed", failed.Load(),
		"index", s.indexName,
	)

	if n := failed.Load(); n > 0 {
		return fmt.Errorf("failed to index %d out of %d rows", n, len(run.Rows))
	}
	return nil
}

func (s *Sink) EnsureIndex(ctx context.Context) error {
	exists, err := s.client.Indices.Exists(s.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}
	if exists {
		s.logger.Debug("index already exists", "index", s.indexName)
		return nil
	}

	props := map[string]types.Property{
		"run_id":     types.NewKeywordProperty(),
		"job_name":   types.NewKeywordProperty(),
		"task":       types.NewKeywordProperty(),
		"position":   types.NewIntegerNumberProperty(),
		"system":     types.NewKeywordProperty(),
		"evaluation": types.NewKeywordProperty(),
		"label":      types.NewKeywordProperty(),
		"created_at": types.NewDateProperty(),
	}
	for _, field := range metricFields {
		props[field] = types.NewDoubleNumberProperty()
	}

	res, err := s.client.Indices.Create(s.indexName).
		Mappings(&types.TypeMapping{Properties: props}).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	if !res.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	s.logger.Info("index created", "index", s.indexName)
	return nil
}

var metricFields = []string{"P", "R", "F1", "F1_std", "P_std", "R_std", "TP", "FP", "FN"}

// Close is a no-op; the typed client holds no resources to release.
func (s *Sink) Close() {}

