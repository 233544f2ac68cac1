package core

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// Summary holds the aggregate figures derived from the ledger. It is never
// stored; callers recompute it after every mutation.
type Summary struct {
	TotalIncome   Money
	TotalExpenses Money
	NetBalance    Money

	// ExpenseByCategory sums Expense amounts per category, in first-seen
	// category order. Income is excluded.
	ExpenseByCategory []CategoryAmount
}

// Summarize derives the aggregate totals and the category-grouped expense
// breakdown from the given transactions. Pure function of its input.
func Summarize(txs []Transaction) Summary {
	var s Summary
	index := make(map[string]int)
	for _, tx := range txs {
		switch tx.Type {
		case Income:
			s.TotalIncome.Cents += tx.Amount.Cents
		case Expense:
			s.TotalExpenses.Cents += tx.Amount.Cents
			i, ok := index[tx.Category]
			if !ok {
				i = len(s.ExpenseByCategory)
				index[tx.Category] = i
				s.ExpenseByCategory = append(s.ExpenseByCategory, CategoryAmount{Name: tx.Category})
			}
			s.ExpenseByCategory[i].Amount.Cents += tx.Amount.Cents
		}
	}
	s.NetBalance.Cents = s.TotalIncome.Cents - s.TotalExpenses.Cents
	return s
}
