// Package view projects ledger state into the HTML representations the
// browser shows: a table and a card list (media query picks one), the
// summary figures, and the entry form. Rendering is idempotent; each call
// rebuilds the whole fragment from its input.
package view

import (
	"fmt"
	"html/template"
	"io"

	"github.com/nayanchhabhaiya/Expense-Tracker/internal/core"
	appweb "github.com/nayanchhabhaiya/Expense-Tracker/web"
)

type Row struct {
	ID          int64
	Date        string
	Description string
	Category    string
	Amount      string
	Type        string
	// AmountClass and BadgeClass are derived solely from the transaction
	// type during rendering; styling never re-queries rendered output.
	AmountClass string
	BadgeClass  string
}

type ListData struct {
	Rows       []Row
	Filter     string
	Categories []string
}

type SummaryData struct {
	TotalIncome     string
	TotalExpenses   string
	NetBalance      string
	NegativeBalance bool
	HasChart        bool
	ChartRev        uint64
}

type FormData struct {
	Date        string
	Description string
	Category    string
	Amount      string
	Type        string
	Error       string
}

type PageData struct {
	Form         FormData
	Summary      SummaryData
	List         ListData
	BreakpointPx int
}

// Renderer executes the embedded templates.
type Renderer struct {
	templates    *template.Template
	breakpointPx int
}

func NewRenderer(breakpointPx int) (*Renderer, error) {
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: t, breakpointPx: breakpointPx}, nil
}

func (r *Renderer) RenderPage(w io.Writer, data PageData) error {
	data.BreakpointPx = r.breakpointPx
	if err := r.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// RenderTransactions writes the table and card projections in one fragment.
func (r *Renderer) RenderTransactions(w io.Writer, data ListData) error {
	if err := r.templates.ExecuteTemplate(w, "transactions.html", data); err != nil {
		return fmt.Errorf("render transactions: %w", err)
	}
	return nil
}

func (r *Renderer) RenderSummary(w io.Writer, data SummaryData) error {
	if err := r.templates.ExecuteTemplate(w, "summary.html", data); err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	return nil
}

func (r *Renderer) RenderForm(w io.Writer, data FormData) error {
	if err := r.templates.ExecuteTemplate(w, "form.html", data); err != nil {
		return fmt.Errorf("render form: %w", err)
	}
	return nil
}

// BuildList maps transactions to row view models. categories is the set of
// filter options to offer, independent of the active filter.
func BuildList(txs []core.Transaction, filter string, categories []string) ListData {
	data := ListData{Filter: filter, Categories: categories}
	for _, tx := range txs {
		row := Row{
			ID:          tx.ID,
			Date:        tx.Date.Display(),
			Description: tx.Description,
			Category:    tx.Category,
			Amount:      tx.Amount.FormatUSD(),
			Type:        string(tx.Type),
			AmountClass: "expense-text",
			BadgeClass:  "expense-badge",
		}
		if tx.Type == core.Income {
			row.AmountClass = "income-text"
			row.BadgeClass = "income-badge"
		}
		data.Rows = append(data.Rows, row)
	}
	return data
}

// BuildSummary maps the derived summary to its view model. HasChart is false
// when there are no expenses, which hides the chart slot entirely.
func BuildSummary(s core.Summary, revision uint64) SummaryData {
	return SummaryData{
		TotalIncome:     s.TotalIncome.FormatUSD(),
		TotalExpenses:   s.TotalExpenses.FormatUSD(),
		NetBalance:      s.NetBalance.FormatUSD(),
		NegativeBalance: s.NetBalance.Cents < 0,
		HasChart:        len(s.ExpenseByCategory) > 0,
		ChartRev:        revision,
	}
}

// Categories returns the distinct category labels in first-seen order, used
// to populate the filter selector.
func Categories(txs []core.Transaction) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, tx := range txs {
		if _, ok := seen[tx.Category]; ok {
			continue
		}
		seen[tx.Category] = struct{}{}
		out = append(out, tx.Category)
	}
	return out
}
