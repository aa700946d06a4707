package repository

import (
	"context"
	"time"

	"EconPull/internal/domain/models"
)

// PageSource supplies the rendered calendar pages for a batch run. Retrieval
// itself (browser control, scrolling) is an external collaborator's concern.
type PageSource interface {
	LoadPages(ctx context.Context) ([]models.CalendarPage, error)
}

// PriceSource loads price bars per currency pair and period, sorted ascending
// by bar start. Lag-derived fields are filled by the aligner.
type PriceSource interface {
	LoadBars(ctx context.Context, pair string, period Period) ([]models.PriceBar, error)
}

// DetailSource fetches the "usual effect" phrase for an event. Implementations
// must return an empty string on lookup failure, never an error into the core:
// an unknown phrase degrades to neutral criteria downstream.
type DetailSource interface {
	UsualEffect(ctx context.Context, eventID string) string
}

// DatasetStore persists and serves the aligned, labeled dataset.
type DatasetStore interface {
	Init(ctx context.Context) error
	StoreEvents(ctx context.Context, events []models.CalendarEvent) error
	StoreAligned(ctx context.Context, records []models.AlignedRecord) error
	QueryEvents(ctx context.Context, currency string, impact models.Impact, from, to time.Time, limit int) ([]models.CalendarEvent, error)
	QueryAligned(ctx context.Context, pair, currency string, from, to time.Time, limit int) ([]models.AlignedRecord, error)
	Health(ctx context.Context) error
	Close() error
}

// Publisher ships aligned records to the external evaluator.
type Publisher interface {
	PublishAligned(ctx context.Context, records []models.AlignedRecord) error
	Close() error
}

// Metrics records pipeline data-quality and latency observations.
type Metrics interface {
	RecordRowDropped(reason string)
	RecordEventReconstructed(currency string)
	RecordNeutralCriteria()
	RecordUnmatchedJoin(pair string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
