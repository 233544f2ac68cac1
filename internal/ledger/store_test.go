package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nayanchhabhaiya/Expense-Tracker/internal/core"
)

type fakePersister struct {
	loaded  []core.Transaction
	loadErr error
	saved   [][]core.Transaction
	saveErr error
}

func (f *fakePersister) Load(context.Context) ([]core.Transaction, error) {
	return f.loaded, f.loadErr
}
func (f *fakePersister) Save(_ context.Context, txs []core.Transaction) error {
	cp := make([]core.Transaction, len(txs))
	copy(cp, txs)
	f.saved = append(f.saved, cp)
	return f.saveErr
}

func tx(desc, cat string, cents int64, typ core.TransactionType) core.Transaction {
	return core.Transaction{
		Date:        core.NewDate(2024, 1, 1),
		Description: desc,
		Category:    cat,
		Amount:      core.Money{Cents: cents},
		Type:        typ,
	}
}

func TestAddAssignsUniqueIDs(t *testing.T) {
	ctx := context.Background()
	p := &fakePersister{}
	s := NewStore(p)
	// Freeze the clock: every addition lands in the same millisecond.
	fixed := time.UnixMilli(1700000000000)
	s.now = func() time.Time { return fixed }

	seen := map[int64]bool{}
	for i := 0; i < 5; i++ {
		added, err := s.Add(ctx, tx("a", "c", 100, core.Expense))
		if err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
		if added.ID == 0 || seen[added.ID] {
			t.Fatalf("id %d not unique", added.ID)
		}
		seen[added.ID] = true
	}
	if len(p.saved) != 5 {
		t.Fatalf("expected a persistence write per mutation, got %d", len(p.saved))
	}
}

func TestAddRejectsInvalid(t *testing.T) {
	p := &fakePersister{}
	s := NewStore(p)
	_, err := s.Add(context.Background(), tx("", "c", 100, core.Expense))
	if !errors.Is(err, core.ErrEmptyDescription) {
		t.Fatalf("expected ErrEmptyDescription, got %v", err)
	}
	if len(p.saved) != 0 {
		t.Fatalf("invalid add must not persist")
	}
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	p := &fakePersister{}
	s := NewStore(p)
	added, err := s.Add(ctx, tx("a", "c", 100, core.Expense))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	writes := len(p.saved)

	ok, err := s.Remove(ctx, added.ID)
	if err != nil || !ok {
		t.Fatalf("remove: ok=%v err=%v", ok, err)
	}
	if len(s.Snapshot()) != 0 {
		t.Fatalf("expected empty ledger after remove")
	}
	if len(p.saved) != writes+1 {
		t.Fatalf("remove must persist")
	}

	// Unknown id: silent no-op, no write.
	ok, err = s.Remove(ctx, 999999)
	if err != nil || ok {
		t.Fatalf("unknown id: ok=%v err=%v", ok, err)
	}
	if len(p.saved) != writes+1 {
		t.Fatalf("no-op remove must not persist")
	}
}

func TestListFilter(t *testing.T) {
	ctx := context.Background()
	s := NewStore(&fakePersister{})
	for _, c := range []string{"Groceries", "Rent", "Groceries", "Fun"} {
		if _, err := s.Add(ctx, tx("d", c, 100, core.Expense)); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	var all []core.Transaction
	for tx := range s.List("") {
		all = append(all, tx)
	}
	if len(all) != 4 {
		t.Fatalf("empty filter should return all, got %d", len(all))
	}
	// Insertion order preserved.
	for i := 1; i < len(all); i++ {
		if all[i].ID <= all[i-1].ID {
			t.Fatalf("insertion order broken at %d", i)
		}
	}

	var groceries []core.Transaction
	for tx := range s.List("Groceries") {
		groceries = append(groceries, tx)
	}
	if len(groceries) != 2 {
		t.Fatalf("expected 2 Groceries entries, got %d", len(groceries))
	}
	for _, tx := range groceries {
		if tx.Category != "Groceries" {
			t.Fatalf("filter leaked category %q", tx.Category)
		}
	}

	// Case-sensitive, exact match only.
	for range s.List("groceries") {
		t.Fatalf("lowercase filter must match nothing")
	}

	// The sequence is restartable.
	seq := s.List("")
	first, second := 0, 0
	for range seq {
		first++
	}
	for range seq {
		second++
	}
	if first != second {
		t.Fatalf("sequence not restartable: %d vs %d", first, second)
	}
}

func TestLoadInitialMigratesLegacyIDs(t *testing.T) {
	existing := core.Transaction{ID: 1700000000123, Date: core.NewDate(2023, 5, 1), Description: "a", Category: "c", Amount: core.Money{Cents: 100}, Type: core.Expense}
	legacy := core.Transaction{Date: core.NewDate(2023, 5, 2), Description: "b", Category: "c", Amount: core.Money{Cents: 200}, Type: core.Expense}
	p := &fakePersister{loaded: []core.Transaction{existing, legacy}}

	s := NewStore(p)
	if err := s.LoadInitial(context.Background()); err != nil {
		t.Fatalf("load initial: %v", err)
	}

	got := s.Snapshot()
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].ID != existing.ID {
		t.Fatalf("existing id must be preserved")
	}
	if got[1].ID == 0 || got[1].ID == existing.ID {
		t.Fatalf("legacy record must get a fresh non-colliding id, got %d", got[1].ID)
	}
}

func TestRevisionAdvancesOnMutation(t *testing.T) {
	ctx := context.Background()
	s := NewStore(&fakePersister{})
	if s.Revision() != 0 {
		t.Fatalf("fresh store revision should be 0")
	}
	added, _ := s.Add(ctx, tx("a", "c", 100, core.Expense))
	if s.Revision() != 1 {
		t.Fatalf("revision should advance on add")
	}
	if _, err := s.Remove(ctx, added.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if s.Revision() != 2 {
		t.Fatalf("revision should advance on remove")
	}
	// No-op delete leaves it untouched.
	if _, err := s.Remove(ctx, 42); err != nil {
		t.Fatalf("noop remove: %v", err)
	}
	if s.Revision() != 2 {
		t.Fatalf("no-op remove must not advance revision")
	}
}
