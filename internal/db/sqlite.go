package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spacesedan/trendscope/internal/models"
	_ "modernc.org/sqlite"
)

const reportsSchema = `
CREATE TABLE IF NOT EXISTS reports (
	id                TEXT PRIMARY KEY,
	keyword           TEXT NOT NULL,
	created_at        INTEGER NOT NULL,
	article_count     INTEGER NOT NULL,
	overall_sentiment TEXT NOT NULL,
	trend             TEXT NOT NULL,
	trend_confidence  REAL NOT NULL,
	payload           TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reports_keyword ON reports(keyword, created_at DESC);
`

// SQLiteReportStore keeps reports in a local SQLite file for single-node
// deployments and the CLI.
type SQLiteReportStore struct {
	db *sql.DB
}

func OpenSQLiteReportStore(path string) (*SQLiteReportStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("[SQLite] open %s: %w", path, err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("[SQLite] enable WAL: %w", err)
	}

	s := &SQLiteReportStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	slog.Info("[SQLite] Report store ready", slog.String("path", path))
	return s, nil
}

func (s *SQLiteReportStore) migrate() error {
	if _, err := s.db.Exec(reportsSchema); err != nil {
		return fmt.Errorf("[SQLite] migrate: %w", err)
	}
	return nil
}

func (s *SQLiteReportStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteReportStore) Close() error {
	return s.db.Close()
}

// SaveReports upserts all reports in one transaction.
func (s *SQLiteReportStore) SaveReports(ctx context.Context, reports []models.Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("[SQLite] begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO reports
			(id, keyword, created_at, article_count, overall_sentiment, trend, trend_confidence, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("[SQLite] prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, report := range reports {
		payload, err := json.Marshal(report)
		if err != nil {
			return fmt.Errorf("[SQLite] encode report %s: %w", report.ID, err)
		}
		_, err = stmt.ExecContext(ctx,
			report.ID,
			report.Keyword,
			report.CreatedAt.UnixNano(),
			report.ArticleCount,
			string(report.Sentiment.OverallSentiment),
			string(report.Trend.Trend),
			report.Trend.Confidence,
			string(payload),
		)
		if err != nil {
			return fmt.Errorf("[SQLite] insert report %s: %w", report.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("[SQLite] commit: %w", err)
	}
	return nil
}

func (s *SQLiteReportStore) ListReports(ctx context.Context, keyword string, limit int) ([]models.Report, error) {
	query := "SELECT payload FROM reports"
	var args []any
	if keyword != "" {
		query += " WHERE keyword = ?"
		args = append(args, keyword)
	}
	query += " ORDER BY created_at DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("[SQLite] query reports: %w", err)
	}
	defer rows.Close()

	reports := []models.Report{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("[SQLite] scan report: %w", err)
		}
		var report models.Report
		if err := json.Unmarshal([]byte(payload), &report); err != nil {
			return nil, fmt.Errorf("[SQLite] decode report: %w", err)
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}
