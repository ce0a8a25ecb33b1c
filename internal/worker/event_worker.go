// Package worker consumes ledger change events published by a running
// finboard server.
package worker

import (
	"context"
	"sync"

	"finboard/internal/amqp"
	applog "finboard/internal/log"
)

// Stats summarizes what the worker has seen so far.
type Stats struct {
	Received     int
	ByType       map[amqp.EventType]int
	LastRevision uint64
	// Gaps counts events whose revision skipped ahead of the previous one,
	// meaning some mutations were never delivered.
	Gaps int
}

// EventWorker tracks ledger revisions from the event stream and reports
// missed or out-of-order deliveries.
type EventWorker struct {
	mu     sync.Mutex
	stats  Stats
	logger *applog.Logger
}

func NewEventWorker(logger *applog.Logger) *EventWorker {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &EventWorker{
		stats:  Stats{ByType: make(map[amqp.EventType]int)},
		logger: logger.WithComponent(applog.ComponentAMQP),
	}
}

// HandleEvent records evt. It never fails: a stale or duplicate event is
// logged and acknowledged, since re-delivery would not make it current.
func (w *EventWorker) HandleEvent(ctx context.Context, evt *amqp.LedgerEvent) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stats.Received++
	w.stats.ByType[evt.Type]++

	prev := w.stats.LastRevision
	switch {
	case prev == 0 || evt.Revision == prev+1:
	case evt.Revision <= prev:
		w.logger.WarnContext(ctx, "Stale ledger event",
			"type", evt.Type,
			"id", evt.ID,
			applog.FieldRevision, evt.Revision,
			"last_revision", prev)
		return nil
	default:
		w.stats.Gaps++
		w.logger.WarnContext(ctx, "Ledger events missed",
			applog.FieldRevision, evt.Revision,
			"last_revision", prev,
			"missed", evt.Revision-prev-1)
	}
	w.stats.LastRevision = evt.Revision

	w.logger.InfoContext(ctx, "Ledger changed",
		"type", evt.Type,
		"id", evt.ID,
		applog.FieldRevision, evt.Revision,
		"at", evt.Timestamp)
	return nil
}

func (w *EventWorker) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := w.stats
	out.ByType = make(map[amqp.EventType]int, len(w.stats.ByType))
	for k, v := range w.stats.ByType {
		out.ByType[k] = v
	}
	return out
}
