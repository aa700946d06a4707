package usecase

import (
	"context"
	"encoding/json"
	"time"

	"EconPull/internal/domain/models"
	domrepo "EconPull/internal/domain/repository"
	"EconPull/internal/services/calendar"
	pkgkafka "EconPull/pkg/kafka"
)

// KafkaRowsHandler consumes extracted row batches published by the scraping
// collaborator and writes reconstructed events to storage. One message is one
// page, so carry-forward state never crosses message boundaries.
type KafkaRowsHandler struct {
	topic   string
	recon   *calendar.Reconstructor
	store   domrepo.DatasetStore
	metrics domrepo.Metrics
}

func NewKafkaRowsHandler(topic string, recon *calendar.Reconstructor, store domrepo.DatasetStore, metrics domrepo.Metrics) *KafkaRowsHandler {
	return &KafkaRowsHandler{topic: topic, recon: recon, store: store, metrics: metrics}
}

func (h *KafkaRowsHandler) Topic() string { return h.topic }

// incoming message schema: {month, year, rows: [{cells, event_id, actual, forecast, previous}]}
func (h *KafkaRowsHandler) Handle(ctx context.Context, b []byte) error {
	var m struct {
		Month string            `json:"month"`
		Year  int               `json:"year"`
		Rows  []models.TableRow `json:"rows"`
	}
	if err := json.Unmarshal(b, &m); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}

	events, err := h.recon.ReconstructTable(m.Rows, m.Year)
	if err != nil {
		h.metrics.RecordError("consumer_reconstruct")
		return err
	}
	SortEvents(events)

	start := time.Now()
	if err := h.store.StoreEvents(ctx, events); err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	h.metrics.RecordLatency("events_insert_seconds", time.Since(start).Seconds())
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaRowsHandler)(nil)
