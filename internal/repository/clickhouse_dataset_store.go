package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"EconPull/internal/domain/models"
	domrepo "EconPull/internal/domain/repository"
	pkgch "EconPull/pkg/clickhouse"
	applogger "EconPull/pkg/logger"
)

// CHDatasetStore implements DatasetStore backed by ClickHouse.
type CHDatasetStore struct {
	ch          *pkgch.Client
	db          *sql.DB
	database    string
	eventsTable string
	alignTable  string
	l           *applogger.Logger
}

func NewCHDatasetStore(ch *pkgch.Client, database string) *CHDatasetStore {
	return &CHDatasetStore{
		ch:          ch,
		db:          ch.DB(),
		database:    database,
		eventsTable: database + ".calendar_events",
		alignTable:  database + ".aligned_records",
	}
}

// SetLogger injects a structured logger.
func (s *CHDatasetStore) SetLogger(l *applogger.Logger) { s.l = l }

// Init creates the database and tables if they do not exist.
func (s *CHDatasetStore) Init(ctx context.Context) error {
	stmts := []string{
		fmt.Sprintf(`CREATE DATABASE IF NOT EXISTS %s`, s.database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			ts        DateTime('UTC'),
			date_text String,
			time_text String,
			currency  LowCardinality(String),
			impact    LowCardinality(String),
			event     String,
			event_id  String,
			actual    String,
			forecast  String,
			previous  String,
			criteria  Int8
		) ENGINE = ReplacingMergeTree()
		PARTITION BY toYYYYMM(ts)
		ORDER BY (ts, currency, event_id)`, s.eventsTable),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			ts                DateTime('UTC'),
			currency          LowCardinality(String),
			impact            LowCardinality(String),
			event             String,
			actual            String,
			forecast          String,
			diff              Nullable(Float64),
			good_for_currency Int8,
			pair              LowCardinality(String),
			pct_chg           Nullable(Float64)
		) ENGINE = ReplacingMergeTree()
		PARTITION BY toYYYYMM(ts)
		ORDER BY (ts, pair, currency, event)`, s.alignTable),
	}
	return s.ch.InitSchema(ctx, stmts)
}

func (s *CHDatasetStore) StoreEvents(ctx context.Context, events []models.CalendarEvent) error {
	if len(events) == 0 {
		return nil
	}
	// Batch insert using VALUES multi-row to reduce round-trips.
	const chunkSize = 2000
	for start := 0; start < len(events); start += chunkSize {
		end := start + chunkSize
		if end > len(events) {
			end = len(events)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*11)
		for _, ev := range events[start:end] {
			if ev.Currency == "" || ev.Timestamp.IsZero() {
				continue
			}
			values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args,
				ev.Timestamp,
				ev.DateText,
				ev.TimeText,
				ev.Currency,
				string(ev.Impact),
				ev.EventName,
				ev.EventID,
				ev.Actual,
				ev.Forecast,
				ev.Previous,
				int8(ev.Criteria),
			)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf(
			"INSERT INTO %s (ts, date_text, time_text, currency, impact, event, event_id, actual, forecast, previous, criteria) VALUES %s",
			s.eventsTable, strings.Join(values, ","),
		)
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("store events: %w", err)
		}
	}
	return nil
}

func (s *CHDatasetStore) StoreAligned(ctx context.Context, records []models.AlignedRecord) error {
	if len(records) == 0 {
		return nil
	}
	const chunkSize = 2000
	for start := 0; start < len(records); start += chunkSize {
		end := start + chunkSize
		if end > len(records) {
			end = len(records)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*10)
		for _, rec := range records[start:end] {
			values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args,
				rec.DateTime,
				rec.Currency,
				string(rec.Impact),
				rec.EventName,
				rec.Actual,
				rec.Forecast,
				nullableFloat(rec.Diff),
				int8(rec.GoodForCurrency),
				rec.Pair,
				nullableFloat(rec.PctChange),
			)
		}
		q := fmt.Sprintf(
			"INSERT INTO %s (ts, currency, impact, event, actual, forecast, diff, good_for_currency, pair, pct_chg) VALUES %s",
			s.alignTable, strings.Join(values, ","),
		)
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("store aligned: %w", err)
		}
	}
	return nil
}

func (s *CHDatasetStore) QueryEvents(ctx context.Context, currency string, impact models.Impact, from, to time.Time, limit int) ([]models.CalendarEvent, error) {
	start := time.Now()
	var sb strings.Builder
	fmt.Fprintf(&sb,
		"SELECT ts, date_text, time_text, currency, impact, event, event_id, actual, forecast, previous, criteria FROM %s WHERE ts >= ? AND ts <= ?",
		s.eventsTable,
	)
	args := []interface{}{from, to}
	if currency != "" {
		sb.WriteString(" AND currency = ?")
		args = append(args, currency)
	}
	if impact != "" {
		sb.WriteString(" AND impact = ?")
		args = append(args, string(impact))
	}
	sb.WriteString(" ORDER BY ts ASC, currency ASC LIMIT ?")
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		s.logError("clickhouse query_events error", currency, err)
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	out := make([]models.CalendarEvent, 0, 256)
	for rows.Next() {
		var ev models.CalendarEvent
		var impactStr string
		var criteria int8
		if err := rows.Scan(&ev.Timestamp, &ev.DateText, &ev.TimeText, &ev.Currency, &impactStr, &ev.EventName, &ev.EventID, &ev.Actual, &ev.Forecast, &ev.Previous, &criteria); err != nil {
			s.logError("clickhouse query_events scan error", currency, err)
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.Impact = models.Impact(impactStr)
		ev.Criteria = models.Criteria(criteria)
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	if s.l != nil {
		s.l.Info("clickhouse query_events ok",
			applogger.String("currency", currency),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func (s *CHDatasetStore) QueryAligned(ctx context.Context, pair, currency string, from, to time.Time, limit int) ([]models.AlignedRecord, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb,
		"SELECT ts, currency, impact, event, actual, forecast, diff, good_for_currency, pair, pct_chg FROM %s WHERE pair = ? AND ts >= ? AND ts <= ?",
		s.alignTable,
	)
	args := []interface{}{pair, from, to}
	if currency != "" {
		sb.WriteString(" AND currency = ?")
		args = append(args, currency)
	}
	sb.WriteString(" ORDER BY ts ASC, currency ASC LIMIT ?")
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		s.logError("clickhouse query_aligned error", pair, err)
		return nil, fmt.Errorf("query aligned: %w", err)
	}
	defer rows.Close()

	out := make([]models.AlignedRecord, 0, 256)
	for rows.Next() {
		var rec models.AlignedRecord
		var impactStr string
		var good int8
		var diff, pctChg sql.NullFloat64
		if err := rows.Scan(&rec.DateTime, &rec.Currency, &impactStr, &rec.EventName, &rec.Actual, &rec.Forecast, &diff, &good, &rec.Pair, &pctChg); err != nil {
			s.logError("clickhouse query_aligned scan error", pair, err)
			return nil, fmt.Errorf("scan aligned: %w", err)
		}
		rec.Impact = models.Impact(impactStr)
		rec.GoodForCurrency = models.Favorability(good)
		if diff.Valid {
			v := diff.Float64
			rec.Diff = &v
		}
		if pctChg.Valid {
			v := pctChg.Float64
			rec.PctChange = &v
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func (s *CHDatasetStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *CHDatasetStore) Close() error {
	return nil // Managed by pkg
}

func (s *CHDatasetStore) logError(msg, key string, err error) {
	if s.l != nil {
		s.l.Error(msg, applogger.String("key", key), applogger.Error(err))
	}
}

func nullableFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

var _ domrepo.DatasetStore = (*CHDatasetStore)(nil)
