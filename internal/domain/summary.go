// internal/domain/summary.go
package domain

import "github.com/shopspring/decimal"

// Summary aggregates the ledger the way the home screen shows it.
type Summary struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Balance      decimal.Decimal `json:"balance"`  // TotalIncome - TotalExpense
	OwedToMe     decimal.Decimal `json:"owedToMe"` // Remaining on active lent debts
	IOwe         decimal.Decimal `json:"iOwe"`     // Remaining on active borrowed debts
}

// Summarize computes income/expense totals over all transactions and the
// outstanding amounts over active debts.
func Summarize(transactions []Transaction, debts []Debt) Summary {
	s := Summary{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		OwedToMe:     decimal.Zero,
		IOwe:         decimal.Zero,
	}
	for _, t := range transactions {
		switch t.Type {
		case TransactionTypeIncome:
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
		case TransactionTypeExpense:
			s.TotalExpense = s.TotalExpense.Add(t.Amount)
		}
	}
	s.Balance = s.TotalIncome.Sub(s.TotalExpense)

	for _, d := range debts {
		if d.Status != DebtStatusActive {
			continue
		}
		switch d.Type {
		case DebtTypeLent:
			s.OwedToMe = s.OwedToMe.Add(d.RemainingAmount)
		case DebtTypeBorrowed:
			s.IOwe = s.IOwe.Add(d.RemainingAmount)
		}
	}
	return s
}

// FilterAll selects every entry in FilterTransactions and FilterDebts.
const FilterAll = "all"

// FilterTransactions keeps the transactions of the given type; FilterAll or "" keeps everything.
// Order is preserved.
func FilterTransactions(transactions []Transaction, filter string) []Transaction {
	out := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if filter == "" || filter == FilterAll || string(t.Type) == filter {
			out = append(out, t)
		}
	}
	return out
}

// FilterDebts keeps the debts of the given type; FilterAll or "" keeps both types.
// Paid debts are dropped unless includePaid is set.
func FilterDebts(debts []Debt, filter string, includePaid bool) []Debt {
	out := make([]Debt, 0, len(debts))
	for _, d := range debts {
		if !includePaid && d.Status != DebtStatusActive {
			continue
		}
		if filter == "" || filter == FilterAll || string(d.Type) == filter {
			out = append(out, d)
		}
	}
	return out
}
