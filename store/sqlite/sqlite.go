/*
Package sqlite provides a SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements engine.Backend (DayStore, LedgerStore, PaymentEventStore) on
  SQLite. Rows are scoped by a user ID, so one database file serves many
  users the way the hosted per-user document store does; the in-memory
  backend covers the anonymous local mode instead.

WHOLE-MAPPING SEMANTICS:
  SaveDays and SaveLedger replace the user's entire collection inside a
  single database transaction (DELETE + INSERT). Either the new snapshot
  lands completely or the old one survives untouched. This mirrors the
  document-store contract: every save is an overwrite, never a patch.

APPEND-ONLY EVENTS:
  payment_events has no UPDATE or DELETE path. Each positive payment adds
  one immutable row.

PRECISION:
  Decimal values are stored as TEXT and parsed back through
  decimal.NewFromString, so nothing ever round-trips through a float.

WAL MODE:
  The database is opened with WAL for better concurrency: readers don't
  block, single writer at a time, better crash recovery.

USAGE:
  backend, err := sqlite.New("./paytrack.db", "user-123")
  if err != nil {
      log.Fatal(err)
  }
  defer backend.Close()

SEE ALSO:
  - engine/store.go: Interface definitions and contracts
  - engine/store/memory.go: In-memory implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/glasspay/paytrack/engine"
)

// DefaultUser is the user ID for single-user local databases.
const DefaultUser = "local"

// Backend implements engine.Backend on SQLite, scoped to one user.
type Backend struct {
	db     *sql.DB
	userID string
}

var _ engine.Backend = (*Backend)(nil)

// New opens (or creates) the database at dbPath and scopes all operations to
// userID. Use ":memory:" for an in-memory database and DefaultUser for
// single-user setups.
func New(dbPath, userID string) (*Backend, error) {
	if userID == "" {
		userID = DefaultUser
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	b := &Backend{db: db, userID: userID}
	if err := b.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return b, nil
}

// Close closes the database connection.
func (b *Backend) Close() error {
	return b.db.Close()
}

func (b *Backend) migrate() error {
	schema := `
	-- One row per user per calendar day
	CREATE TABLE IF NOT EXISTS work_days (
		user_id        TEXT NOT NULL,
		date           TEXT NOT NULL,  -- ISO YYYY-MM-DD
		work_status    TEXT NOT NULL,
		jobs_completed INTEGER NOT NULL,
		hours_worked   TEXT NOT NULL,  -- decimal as text
		pay_amount     TEXT NOT NULL,
		hourly_rate    TEXT NOT NULL,
		start_time     TEXT NOT NULL DEFAULT '',
		end_time       TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (user_id, date)
	);

	-- One row per user per week
	CREATE TABLE IF NOT EXISTS payment_ledger (
		user_id      TEXT NOT NULL,
		week_start   TEXT NOT NULL,  -- ISO date of the Monday (week ID)
		week_end     TEXT NOT NULL,
		total_amount TEXT NOT NULL,
		amount_paid  TEXT NOT NULL,
		amount_due   TEXT NOT NULL,
		notes        TEXT NOT NULL DEFAULT '',
		last_updated TEXT NOT NULL,  -- RFC 3339
		PRIMARY KEY (user_id, week_start)
	);

	-- Append-only payment audit trail
	CREATE TABLE IF NOT EXISTS payment_events (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL,
		week_start  TEXT NOT NULL,
		amount      TEXT NOT NULL,
		note        TEXT NOT NULL DEFAULT '',
		recorded_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_payment_events_user_week
		ON payment_events(user_id, week_start, recorded_at);
	`
	_, err := b.db.Exec(schema)
	return err
}

// =============================================================================
// DAY STORE
// =============================================================================

func (b *Backend) LoadDays(ctx context.Context) (map[string]engine.DayRecord, error) {
	rows, err := b.db.QueryContext(ctx, `
		SELECT date, work_status, jobs_completed, hours_worked, pay_amount,
		       hourly_rate, start_time, end_time
		FROM work_days WHERE user_id = ?`, b.userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load work days: %w", err)
	}
	defer rows.Close()

	days := make(map[string]engine.DayRecord)
	for rows.Next() {
		var (
			rec              engine.DayRecord
			hours, pay, rate string
		)
		if err := rows.Scan(&rec.Date, &rec.WorkStatus, &rec.JobsCompleted,
			&hours, &pay, &rate, &rec.StartTime, &rec.EndTime); err != nil {
			return nil, err
		}
		if rec.HoursWorked, err = decimal.NewFromString(hours); err != nil {
			return nil, fmt.Errorf("corrupt hours for %s: %w", rec.Date, err)
		}
		if rec.PayAmount, err = decimal.NewFromString(pay); err != nil {
			return nil, fmt.Errorf("corrupt pay for %s: %w", rec.Date, err)
		}
		if rec.HourlyRate, err = decimal.NewFromString(rate); err != nil {
			return nil, fmt.Errorf("corrupt rate for %s: %w", rec.Date, err)
		}
		days[rec.Date] = rec
	}
	return days, rows.Err()
}

func (b *Backend) SaveDays(ctx context.Context, days map[string]engine.DayRecord) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM work_days WHERE user_id = ?`, b.userID); err != nil {
		return fmt.Errorf("failed to clear work days: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO work_days
			(user_id, date, work_status, jobs_completed, hours_worked,
			 pay_amount, hourly_rate, start_time, end_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range days {
		if _, err := stmt.ExecContext(ctx, b.userID, rec.Date, rec.WorkStatus,
			rec.JobsCompleted, rec.HoursWorked.String(), rec.PayAmount.String(),
			rec.HourlyRate.String(), rec.StartTime, rec.EndTime); err != nil {
			return fmt.Errorf("failed to save day %s: %w", rec.Date, err)
		}
	}
	return tx.Commit()
}

// =============================================================================
// LEDGER STORE
// =============================================================================

func (b *Backend) LoadLedger(ctx context.Context) (map[string]engine.PaymentLedgerEntry, error) {
	rows, err := b.db.QueryContext(ctx, `
		SELECT week_start, week_end, total_amount, amount_paid, amount_due,
		       notes, last_updated
		FROM payment_ledger WHERE user_id = ?`, b.userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment ledger: %w", err)
	}
	defer rows.Close()

	ledger := make(map[string]engine.PaymentLedgerEntry)
	for rows.Next() {
		var (
			entry            engine.PaymentLedgerEntry
			total, paid, due string
			updated          string
		)
		if err := rows.Scan(&entry.WeekStart, &entry.WeekEnd, &total, &paid,
			&due, &entry.Notes, &updated); err != nil {
			return nil, err
		}
		if entry.TotalAmount, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("corrupt total for week %s: %w", entry.WeekStart, err)
		}
		if entry.AmountPaid, err = decimal.NewFromString(paid); err != nil {
			return nil, fmt.Errorf("corrupt paid for week %s: %w", entry.WeekStart, err)
		}
		if entry.AmountDue, err = decimal.NewFromString(due); err != nil {
			return nil, fmt.Errorf("corrupt due for week %s: %w", entry.WeekStart, err)
		}
		if entry.LastUpdated, err = time.Parse(time.RFC3339Nano, updated); err != nil {
			return nil, fmt.Errorf("corrupt timestamp for week %s: %w", entry.WeekStart, err)
		}
		ledger[entry.WeekStart] = entry
	}
	return ledger, rows.Err()
}

func (b *Backend) SaveLedger(ctx context.Context, ledger map[string]engine.PaymentLedgerEntry) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM payment_ledger WHERE user_id = ?`, b.userID); err != nil {
		return fmt.Errorf("failed to clear payment ledger: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO payment_ledger
			(user_id, week_start, week_end, total_amount, amount_paid,
			 amount_due, notes, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for weekID, entry := range ledger {
		if _, err := stmt.ExecContext(ctx, b.userID, weekID, entry.WeekEnd,
			entry.TotalAmount.String(), entry.AmountPaid.String(),
			entry.AmountDue.String(), entry.Notes,
			entry.LastUpdated.Format(time.RFC3339Nano)); err != nil {
			return fmt.Errorf("failed to save ledger entry %s: %w", weekID, err)
		}
	}
	return tx.Commit()
}

// =============================================================================
// PAYMENT EVENTS (append-only)
// =============================================================================

// AppendEvent inserts one event row. There is no update or delete statement
// for payment_events anywhere in this package.
func (b *Backend) AppendEvent(ctx context.Context, ev engine.PaymentEvent) error {
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO payment_events (id, user_id, week_start, amount, note, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		ev.ID, b.userID, ev.WeekID, ev.Amount.String(), ev.Note,
		ev.RecordedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to append payment event: %w", err)
	}
	return nil
}

func (b *Backend) EventsForWeek(ctx context.Context, weekID string) ([]engine.PaymentEvent, error) {
	rows, err := b.db.QueryContext(ctx, `
		SELECT id, week_start, amount, note, recorded_at
		FROM payment_events
		WHERE user_id = ? AND week_start = ?
		ORDER BY recorded_at`, b.userID, weekID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment events: %w", err)
	}
	defer rows.Close()

	var events []engine.PaymentEvent
	for rows.Next() {
		var (
			ev       engine.PaymentEvent
			amount   string
			recorded string
		)
		if err := rows.Scan(&ev.ID, &ev.WeekID, &amount, &ev.Note, &recorded); err != nil {
			return nil, err
		}
		if ev.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("corrupt amount for event %s: %w", ev.ID, err)
		}
		if ev.RecordedAt, err = time.Parse(time.RFC3339Nano, recorded); err != nil {
			return nil, fmt.Errorf("corrupt timestamp for event %s: %w", ev.ID, err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
