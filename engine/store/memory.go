// Package store provides Backend implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/glasspay/paytrack/engine"
)

// =============================================================================
// MEMORY BACKEND - In-memory implementation (local mode, testing)
// =============================================================================

// Memory holds everything in process memory. It honors the whole-mapping
// overwrite contract and hands out defensive copies so callers can never
// mutate stored state through a returned snapshot.
type Memory struct {
	mu     sync.RWMutex
	days   map[string]engine.DayRecord
	ledger map[string]engine.PaymentLedgerEntry
	events []engine.PaymentEvent
}

func NewMemory() *Memory {
	return &Memory{
		days:   make(map[string]engine.DayRecord),
		ledger: make(map[string]engine.PaymentLedgerEntry),
	}
}

var _ engine.Backend = (*Memory)(nil)

func (m *Memory) LoadDays(_ context.Context) (map[string]engine.DayRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]engine.DayRecord, len(m.days))
	for k, v := range m.days {
		out[k] = v
	}
	return out, nil
}

func (m *Memory) SaveDays(_ context.Context, days map[string]engine.DayRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := make(map[string]engine.DayRecord, len(days))
	for k, v := range days {
		next[k] = v
	}
	m.days = next
	return nil
}

func (m *Memory) LoadLedger(_ context.Context) (map[string]engine.PaymentLedgerEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]engine.PaymentLedgerEntry, len(m.ledger))
	for k, v := range m.ledger {
		out[k] = v
	}
	return out, nil
}

func (m *Memory) SaveLedger(_ context.Context, ledger map[string]engine.PaymentLedgerEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := make(map[string]engine.PaymentLedgerEntry, len(ledger))
	for k, v := range ledger {
		next[k] = v
	}
	m.ledger = next
	return nil
}

// AppendEvent adds a payment event. Append-only.
func (m *Memory) AppendEvent(_ context.Context, ev engine.PaymentEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Keep the log ordered by recording time; events arrive nearly sorted
	// so the insertion point is almost always the end.
	i := sort.Search(len(m.events), func(i int) bool {
		return m.events[i].RecordedAt.After(ev.RecordedAt)
	})
	m.events = append(m.events, engine.PaymentEvent{})
	copy(m.events[i+1:], m.events[i:])
	m.events[i] = ev
	return nil
}

func (m *Memory) EventsForWeek(_ context.Context, weekID string) ([]engine.PaymentEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []engine.PaymentEvent
	for _, ev := range m.events {
		if ev.WeekID == weekID {
			out = append(out, ev)
		}
	}
	return out, nil
}
