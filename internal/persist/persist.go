// Package persist serializes the ledger to and from a key-value store.
//
// The format is a single JSON array of records under one key, matching the
// value the browser version of this app kept in local storage: amounts are
// written in currency units with two decimals, dates as ISO 8601 strings.
package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"github.com/nayanchhabhaiya/Expense-Tracker/internal/core"
	"github.com/nayanchhabhaiya/Expense-Tracker/internal/storage"
)

// DefaultKey is the storage key holding the serialized ledger.
const DefaultKey = "transactions"

type record struct {
	ID          int64   `json:"id,omitempty"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
}

// Adapter reads and writes the whole ledger through a KeyValue store.
type Adapter struct {
	kv  storage.KeyValue
	key string
}

func NewAdapter(kv storage.KeyValue, key string) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	return &Adapter{kv: kv, key: key}
}

// Load decodes the stored ledger. A missing key or unparsable value yields an
// empty ledger rather than an error: corrupt persisted data must never take
// the session down. Records lacking an id keep ID == 0 and are assigned a
// synthetic one by the ledger store at load time.
func (a *Adapter) Load(ctx context.Context) ([]core.Transaction, error) {
	raw, ok, err := a.kv.Get(ctx, a.key)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var records []record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		slog.WarnContext(ctx, "Stored ledger is not a valid transaction array, starting empty",
			"key", a.key, "error", err)
		return nil, nil
	}

	txs := make([]core.Transaction, 0, len(records))
	for _, r := range records {
		date, err := core.ParseDate(r.Date)
		if err != nil {
			slog.WarnContext(ctx, "Skipping stored transaction with unparsable date",
				"id", r.ID, "date", r.Date)
			continue
		}
		txs = append(txs, core.Transaction{
			ID:          r.ID,
			Date:        date,
			Description: r.Description,
			Category:    r.Category,
			Amount:      core.Money{Cents: int64(math.Round(r.Amount * 100))},
			Type:        core.TransactionType(r.Type),
		})
	}
	return txs, nil
}

// Save rewrites the entire stored value. There is no incremental patching;
// the ledger is small and a full rewrite keeps the format trivial.
func (a *Adapter) Save(ctx context.Context, txs []core.Transaction) error {
	records := make([]record, len(txs))
	for i, tx := range txs {
		records[i] = record{
			ID:          tx.ID,
			Date:        tx.Date.ISO(),
			Description: tx.Description,
			Category:    tx.Category,
			Amount:      tx.Amount.Dollars(),
			Type:        string(tx.Type),
		}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := a.kv.Set(ctx, a.key, string(data)); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}
