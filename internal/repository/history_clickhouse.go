package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ArgPulse/internal/domain/models"
	domrepo "ArgPulse/internal/domain/repository"
	pkgch "ArgPulse/pkg/clickhouse"
	applogger "ArgPulse/pkg/logger"
)

// CHHistory stores posts in a ReplacingMergeTree keyed by id. The first post
// archived for an id wins, as in FileHistory: Append skips known ids and the
// version column falls with insert time so a racing duplicate loses the merge.
// Reads use FINAL.
type CHHistory struct {
	ch    *pkgch.Client
	db    *sql.DB
	table string
	l     *applogger.Logger
}

var _ domrepo.HistoryStore = (*CHHistory)(nil)

func NewCHHistory(ch *pkgch.Client, table string, l *applogger.Logger) *CHHistory {
	if l == nil {
		l = applogger.Nop()
	}
	return &CHHistory{ch: ch, db: ch.DB(), table: table, l: l}
}

func historySchema(table string) []string {
	return []string{fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s (
            id          String,
            date        DateTime,
            sentiment   LowCardinality(String),
            payload     String,
            inserted_at DateTime DEFAULT now(),
            keep_rank   UInt64 DEFAULT 4294967295 - toUnixTimestamp(inserted_at)
        )
        ENGINE = ReplacingMergeTree(keep_rank)
        ORDER BY id
    `, table)}
}

func (s *CHHistory) Init(ctx context.Context) error {
	return s.ch.InitSchema(ctx, historySchema(s.table))
}

func (s *CHHistory) List(ctx context.Context) ([]models.DailyAnalysisPost, error) {
	start := time.Now()
	q := fmt.Sprintf(`SELECT payload FROM %s FINAL ORDER BY date DESC`, s.table)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		s.l.Error("clickhouse history list query error", applogger.String("table", s.table), applogger.Error(err))
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	out := make([]models.DailyAnalysisPost, 0, 64)
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		var p models.DailyAnalysisPost
		if err := json.Unmarshal([]byte(payload), &p); err != nil {
			s.l.Warn("clickhouse history skipping undecodable row", applogger.Error(err))
			continue
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	s.l.Debug("clickhouse history list ok",
		applogger.Int("rows", len(out)),
		applogger.Duration("duration_ms", time.Since(start)))
	return out, nil
}

func (s *CHHistory) Get(ctx context.Context, id string) (*models.DailyAnalysisPost, error) {
	q := fmt.Sprintf(`SELECT payload FROM %s FINAL WHERE id = ? LIMIT 1`, s.table)
	var payload string
	err := s.db.QueryRowContext(ctx, q, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domrepo.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post %s: %w", id, err)
	}
	var p models.DailyAnalysisPost
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return nil, fmt.Errorf("decode post %s: %w", id, err)
	}
	return &p, nil
}

// Append adds post unless one with the same ID is already archived.
func (s *CHHistory) Append(ctx context.Context, post models.DailyAnalysisPost) error {
	var n uint64
	q := fmt.Sprintf(`SELECT count() FROM %s WHERE id = ?`, s.table)
	if err := s.db.QueryRowContext(ctx, q, post.ID).Scan(&n); err != nil {
		return fmt.Errorf("check post %s: %w", post.ID, err)
	}
	if n > 0 {
		s.l.Debug("clickhouse history append skipped, already archived", applogger.String("id", post.ID))
		return nil
	}

	payload, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("encode post: %w", err)
	}
	q = fmt.Sprintf(`INSERT INTO %s (id, date, sentiment, payload) VALUES (?, ?, ?, ?)`, s.table)
	if _, err := s.db.ExecContext(ctx, q, post.ID, post.Date.UTC(), string(post.Sentiment), string(payload)); err != nil {
		s.l.Error("clickhouse history insert error", applogger.String("id", post.ID), applogger.Error(err))
		return fmt.Errorf("append post %s: %w", post.ID, err)
	}
	s.l.Info("clickhouse history appended", applogger.String("id", post.ID))
	return nil
}

func (s *CHHistory) Close() error { return s.ch.Close() }
