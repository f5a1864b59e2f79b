/*
store.go - Persistence interfaces for day records and payment state

PURPOSE:
  Defines the boundary between the pure derivation core and whatever holds
  the data. The core itself performs no I/O: hosts load a snapshot mapping,
  run derivations, and write the whole mapping back.

WHOLE-MAPPING CONTRACT:
  Saves replace the entire stored collection, they do not patch individual
  keys. Combined with the core's determinism this makes persistence retries
  trivially safe: re-deriving and re-saving the same snapshot is idempotent.

PAYMENT EVENTS:
  Alongside the per-week ledger entries, every positive payment is recorded
  as an immutable PaymentEvent. The events table is APPEND-ONLY: no update,
  no delete. The ledger entry's notes stay the human-readable log; events
  are the machine-readable audit trail.

IMPLEMENTATIONS:
  - engine/store/memory.go: In-memory (the local, unauthenticated backend)
  - store/sqlite/sqlite.go:  SQLite, per-user rows (the remote backend)

The host selects one backend at startup; nothing in this package branches on
which one is in play.
*/
package engine

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DAY STORE - ISO date -> DayRecord mapping
// =============================================================================

// DayStore persists the day-record mapping. Load returns an empty, non-nil
// mapping when nothing is stored.
type DayStore interface {
	LoadDays(ctx context.Context) (map[string]DayRecord, error)
	SaveDays(ctx context.Context, days map[string]DayRecord) error
}

// =============================================================================
// LEDGER STORE - week ID -> PaymentLedgerEntry mapping
// =============================================================================

// LedgerStore persists the payment ledger mapping, keyed by week identifier
// (ISO date of the Monday). Same whole-mapping overwrite contract.
type LedgerStore interface {
	LoadLedger(ctx context.Context) (map[string]PaymentLedgerEntry, error)
	SaveLedger(ctx context.Context, ledger map[string]PaymentLedgerEntry) error
}

// =============================================================================
// PAYMENT EVENTS - Append-only audit trail
// =============================================================================

// PaymentEvent records one positive payment as it was applied. Immutable
// once written.
type PaymentEvent struct {
	ID         string          `json:"id"`
	WeekID     string          `json:"weekId"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note,omitempty"`
	RecordedAt time.Time       `json:"recordedAt"`
}

// PaymentEventStore is the append-only event log. There is deliberately no
// update or delete operation.
type PaymentEventStore interface {
	AppendEvent(ctx context.Context, ev PaymentEvent) error
	EventsForWeek(ctx context.Context, weekID string) ([]PaymentEvent, error)
}

// =============================================================================
// BACKEND - Everything a host needs from one place
// =============================================================================

// Backend bundles the three stores a running host wires together.
type Backend interface {
	DayStore
	LedgerStore
	PaymentEventStore
}
