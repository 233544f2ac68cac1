package core

import "testing"

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalIncome.Cents != 0 || s.TotalExpenses.Cents != 0 || s.NetBalance.Cents != 0 {
		t.Fatalf("empty ledger should yield zero totals: %+v", s)
	}
	if len(s.ExpenseByCategory) != 0 {
		t.Fatalf("empty ledger should yield empty breakdown")
	}
}

func TestSummarizeScenario(t *testing.T) {
	txs := []Transaction{
		{ID: 1, Date: NewDate(2024, 1, 1), Description: "Salary", Category: "Wages", Amount: Money{Cents: 300000}, Type: Income},
		{ID: 2, Date: NewDate(2024, 1, 2), Description: "Rent", Category: "Housing", Amount: Money{Cents: 120000}, Type: Expense},
	}
	s := Summarize(txs)
	if s.TotalIncome.Cents != 300000 {
		t.Fatalf("total income: expected 300000, got %d", s.TotalIncome.Cents)
	}
	if s.TotalExpenses.Cents != 120000 {
		t.Fatalf("total expenses: expected 120000, got %d", s.TotalExpenses.Cents)
	}
	if s.NetBalance.Cents != 180000 {
		t.Fatalf("net balance: expected 180000, got %d", s.NetBalance.Cents)
	}
	if len(s.ExpenseByCategory) != 1 || s.ExpenseByCategory[0].Name != "Housing" || s.ExpenseByCategory[0].Amount.Cents != 120000 {
		t.Fatalf("unexpected breakdown: %+v", s.ExpenseByCategory)
	}
}

func TestSummarizeGroupsAndOrders(t *testing.T) {
	txs := []Transaction{
		{Category: "Food", Amount: Money{Cents: 1000}, Type: Expense},
		{Category: "Transport", Amount: Money{Cents: 500}, Type: Expense},
		{Category: "Food", Amount: Money{Cents: 250}, Type: Expense},
		{Category: "Wages", Amount: Money{Cents: 9999}, Type: Income}, // excluded from breakdown
	}
	s := Summarize(txs)
	if len(s.ExpenseByCategory) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(s.ExpenseByCategory))
	}
	// First-seen order preserved for palette assignment.
	if s.ExpenseByCategory[0].Name != "Food" || s.ExpenseByCategory[0].Amount.Cents != 1250 {
		t.Fatalf("unexpected first category: %+v", s.ExpenseByCategory[0])
	}
	if s.ExpenseByCategory[1].Name != "Transport" || s.ExpenseByCategory[1].Amount.Cents != 500 {
		t.Fatalf("unexpected second category: %+v", s.ExpenseByCategory[1])
	}
	if s.NetBalance.Cents != s.TotalIncome.Cents-s.TotalExpenses.Cents {
		t.Fatalf("balance invariant violated")
	}
}
