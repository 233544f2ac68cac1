package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/nayanchhabhaiya/Expense-Tracker/internal/core"
	"github.com/nayanchhabhaiya/Expense-Tracker/internal/view"
)

// emptyForm returns the entry form in its startup state: today's date
// pre-filled, everything else blank.
func emptyForm() view.FormData {
	return view.FormData{
		Date: time.Now().Format("2006-01-02"),
		Type: string(core.Expense),
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	snapshot := s.store.Snapshot()
	summary := core.Summarize(snapshot)
	data := view.PageData{
		Form:    emptyForm(),
		Summary: view.BuildSummary(summary, s.store.Revision()),
		List:    view.BuildList(snapshot, "", view.Categories(snapshot)),
	}
	if err := s.renderer.RenderPage(w, data); err != nil {
		slog.ErrorContext(r.Context(), "Index render failed", "error", err)
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	form := view.FormData{
		Date:        strings.TrimSpace(r.Form.Get("date")),
		Description: sanitizeInput(r.Form.Get("description")),
		Category:    sanitizeInput(r.Form.Get("category")),
		Amount:      strings.TrimSpace(r.Form.Get("amount")),
		Type:        strings.TrimSpace(r.Form.Get("type")),
	}

	tx, errMsg := buildTransaction(form)
	if errMsg != "" {
		// Validation failure is non-fatal: echo the submitted values back so
		// the form keeps its state, and leave the ledger untouched.
		form.Error = errMsg
		w.WriteHeader(http.StatusUnprocessableEntity)
		if err := s.renderer.RenderForm(w, form); err != nil {
			slog.ErrorContext(r.Context(), "Form render failed", "error", err)
		}
		return
	}

	added, err := s.store.Add(r.Context(), tx)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to add transaction",
			"error", err, "description", tx.Description, "amount_cents", tx.Amount.Cents)
		form.Error = "Could not save the transaction. Please try again."
		w.WriteHeader(http.StatusInternalServerError)
		if err := s.renderer.RenderForm(w, form); err != nil {
			slog.ErrorContext(r.Context(), "Form render failed", "error", err)
		}
		return
	}

	slog.InfoContext(r.Context(), "Transaction created",
		"id", added.ID, "type", string(added.Type), "category", added.Category)

	// Fresh form (focus returns to the date field via autofocus) and a
	// ledger:changed event so the list, summary, and chart all refresh.
	w.Header().Set("HX-Trigger", `{"ledger:changed": {}}`)
	w.WriteHeader(http.StatusOK)
	if err := s.renderer.RenderForm(w, emptyForm()); err != nil {
		slog.ErrorContext(r.Context(), "Form render failed", "error", err)
	}
}

// buildTransaction validates the five form fields and assembles the
// transaction. It returns a user-facing message for the first problem found.
func buildTransaction(form view.FormData) (core.Transaction, string) {
	if form.Date == "" || form.Description == "" || form.Category == "" || form.Amount == "" || form.Type == "" {
		return core.Transaction{}, "Please fill out all fields."
	}
	date, err := core.ParseDate(form.Date)
	if err != nil {
		return core.Transaction{}, "Please enter a valid date."
	}
	cents, err := core.ParseDecimalToCents(form.Amount)
	if err != nil {
		return core.Transaction{}, "Please enter a valid positive amount."
	}
	tx := core.Transaction{
		Date:        date,
		Description: form.Description,
		Category:    form.Category,
		Amount:      core.Money{Cents: cents},
		Type:        core.TransactionType(form.Type),
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, "Please check the entered values: " + err.Error()
	}
	return tx, ""
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	id, err := strconv.ParseInt(strings.TrimSpace(r.Form.Get("id")), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	// Confirmation happens in the browser before this request is sent; a
	// declined prompt never reaches the server.
	removed, err := s.store.Remove(r.Context(), id)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to remove transaction", "error", err, "id", id)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if removed {
		w.Header().Set("HX-Trigger", `{"ledger:changed": {}}`)
	}
	// A stale id (double click race) is a silent no-op.
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	filter := strings.TrimSpace(r.URL.Query().Get("category"))

	var filtered []core.Transaction
	for tx := range s.store.List(filter) {
		filtered = append(filtered, tx)
	}
	// Filter options always cover the whole ledger, not the filtered slice.
	categories := view.Categories(s.store.Snapshot())

	if err := s.renderer.RenderTransactions(w, view.BuildList(filtered, filter, categories)); err != nil {
		slog.ErrorContext(r.Context(), "Transactions render failed", "error", err, "filter", filter)
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// The summary is always global; the category filter never affects it.
	summary := core.Summarize(s.store.Snapshot())
	if err := s.renderer.RenderSummary(w, view.BuildSummary(summary, s.store.Revision())); err != nil {
		slog.ErrorContext(r.Context(), "Summary render failed", "error", err)
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	width := s.chartWidth
	if v := strings.TrimSpace(r.URL.Query().Get("width")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 64 && n <= 4096 {
			width = n
		}
	}

	revision := s.store.Revision()
	key := strconv.FormatUint(revision, 10) + ":" + strconv.Itoa(width)
	if png, ok := s.chartCache.Get(key); ok {
		serveChart(w, png)
		return
	}

	summary := core.Summarize(s.store.Snapshot())
	png, err := s.chart.RenderCategoryBreakdown(summary.ExpenseByCategory, width, s.chartHeight)
	if err != nil {
		slog.ErrorContext(r.Context(), "Chart render failed", "error", err)
		http.Error(w, "chart error", http.StatusInternalServerError)
		return
	}
	if png == nil {
		// No expense data: nothing to draw.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.chartCache.Set(key, png)
	serveChart(w, png)
}

func serveChart(w http.ResponseWriter, png []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(png)
}

// sanitizeInput removes potentially dangerous characters and trims whitespace
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	// Remove control characters except tab, newline, carriage return
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1 // remove character
		}
		return r
	}, s)
	return result
}
