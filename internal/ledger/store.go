// Package ledger owns the in-memory transaction list. The Store is the sole
// mutator: every other component reads derived, already-materialized data.
package ledger

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"sync"
	"time"

	"github.com/nayanchhabhaiya/Expense-Tracker/internal/core"
)

// Persister is the outbound port the store rewrites the ledger through after
// every mutation.
type Persister interface {
	Load(ctx context.Context) ([]core.Transaction, error)
	Save(ctx context.Context, txs []core.Transaction) error
}

type Store struct {
	mu        sync.Mutex
	persister Persister
	items     []core.Transaction
	lastID    int64
	revision  uint64

	now func() time.Time // injectable for tests
}

func NewStore(p Persister) *Store {
	return &Store{persister: p, now: time.Now}
}

// LoadInitial populates the store from persistent storage. Loaded records
// missing an id (legacy format) get a synthetic one before being accepted;
// after this call every transaction held by the store has a valid id.
func (s *Store) LoadInitial(ctx context.Context) error {
	txs, err := s.persister.Load(ctx)
	if err != nil {
		return fmt.Errorf("load initial ledger: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tx := range txs {
		if tx.ID > s.lastID {
			s.lastID = tx.ID
		}
	}
	migrated := 0
	for i := range txs {
		if txs[i].ID == 0 {
			txs[i].ID = s.nextIDLocked()
			migrated++
		}
	}
	s.items = txs
	if migrated > 0 {
		slog.InfoContext(ctx, "Assigned ids to legacy transactions", "count", migrated)
	}
	slog.InfoContext(ctx, "Ledger loaded", "transactions", len(s.items))
	return nil
}

// Add appends the transaction with a freshly generated unique id and rewrites
// persistent storage. The returned transaction carries the assigned id.
func (s *Store) Add(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	tx.ID = s.nextIDLocked()
	s.items = append(s.items, tx)
	s.revision++
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if err := s.persister.Save(ctx, snapshot); err != nil {
		return tx, fmt.Errorf("persist after add: %w", err)
	}
	slog.InfoContext(ctx, "Transaction added",
		"id", tx.ID, "type", string(tx.Type), "category", tx.Category, "amount_cents", tx.Amount.Cents)
	return tx, nil
}

// Remove deletes the transaction with the given id. An unknown id is a
// silent no-op: it reports false and does not touch persistent storage.
func (s *Store) Remove(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	idx := -1
	for i, tx := range s.items {
		if tx.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		slog.DebugContext(ctx, "Delete requested for unknown transaction", "id", id)
		return false, nil
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.revision++
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if err := s.persister.Save(ctx, snapshot); err != nil {
		return true, fmt.Errorf("persist after remove: %w", err)
	}
	slog.InfoContext(ctx, "Transaction removed", "id", id)
	return true, nil
}

// List returns a restartable sequence over the current transactions in
// insertion order. An empty filter yields all transactions; otherwise only
// those whose category matches exactly (case-sensitive).
func (s *Store) List(filterCategory string) iter.Seq[core.Transaction] {
	snapshot := s.Snapshot()
	return func(yield func(core.Transaction) bool) {
		for _, tx := range snapshot {
			if filterCategory != "" && tx.Category != filterCategory {
				continue
			}
			if !yield(tx) {
				return
			}
		}
	}
}

// Snapshot returns a copy of the full ledger in insertion order.
func (s *Store) Snapshot() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Revision increments on every mutation; callers use it to key derived
// artifacts like the rendered chart.
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

func (s *Store) snapshotLocked() []core.Transaction {
	out := make([]core.Transaction, len(s.items))
	copy(out, s.items)
	return out
}

// nextIDLocked issues millisecond-timestamp ids, bumping past the last issued
// id when two additions land in the same clock tick.
func (s *Store) nextIDLocked() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}
