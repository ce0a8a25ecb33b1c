package amqp

import (
	"encoding/json"
	"time"
)

type EventType string

const (
	EventTransactionAdded   EventType = "transaction.added"
	EventTransactionDeleted EventType = "transaction.deleted"
	EventGoalAdded          EventType = "goal.added"
	EventGoalUpdated        EventType = "goal.updated"
)

// LedgerEvent tells consumers that the ledger changed and any summary or
// series they hold is stale. It carries only the affected id and the ledger
// revision; consumers re-query for data.
type LedgerEvent struct {
	Type      EventType `json:"type"`
	ID        string    `json:"id"`
	Revision  uint64    `json:"revision"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerEvent(eventType EventType, id string, revision uint64) *LedgerEvent {
	return &LedgerEvent{
		Type:      eventType,
		ID:        id,
		Revision:  revision,
		Timestamp: time.Now().UTC(),
	}
}

func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var evt LedgerEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		return nil, err
	}
	return &evt, nil
}
