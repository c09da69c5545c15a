// internal/cli/render.go
package cli

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"fintrack/internal/domain"
)

// SummaryMarkdown renders the home screen summary as a markdown document.
func SummaryMarkdown(username string, s domain.Summary, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("FinTrack summary for %s", username))
	doc.PlainText(fmt.Sprintf("Total Balance: %s", domain.FormatCurrency(s.Balance, currency)))

	doc.H2("Cash flow")
	doc.Table(md.TableSet{
		Header: []string{"Income", "Expense", "Balance"},
		Rows: [][]string{{
			domain.FormatCurrency(s.TotalIncome, currency),
			domain.FormatCurrency(s.TotalExpense, currency),
			domain.FormatCurrency(s.Balance, currency),
		}},
	})

	doc.H2("Debts")
	doc.Table(md.TableSet{
		Header: []string{"Owed to me", "I owe"},
		Rows: [][]string{{
			domain.FormatCurrency(s.OwedToMe, currency),
			domain.FormatCurrency(s.IOwe, currency),
		}},
	})

	return doc.String()
}

// TransactionsMarkdown renders a transaction list, newest first.
func TransactionsMarkdown(transactions []domain.Transaction, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Transactions")
	if len(transactions) == 0 {
		doc.PlainText("No transactions yet.")
		return doc.String()
	}

	rows := make([][]string, 0, len(transactions))
	for _, t := range transactions {
		amount := domain.FormatCurrency(t.Amount, currency)
		if t.Type == domain.TransactionTypeExpense {
			amount = "-" + amount
		} else {
			amount = "+" + amount
		}
		rows = append(rows, []string{t.ID, domain.FormatDate(t.Date), t.Category, amount, deref(t.Note)})
	}
	doc.Table(md.TableSet{
		Header: []string{"ID", "Date", "Category", "Amount", "Note"},
		Rows:   rows,
	})
	return doc.String()
}

// DebtsMarkdown renders a debt list.
func DebtsMarkdown(debts []domain.Debt, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Debts")
	if len(debts) == 0 {
		doc.PlainText("No debts found.")
		return doc.String()
	}

	rows := make([][]string, 0, len(debts))
	for _, d := range debts {
		rows = append(rows, []string{
			d.ID,
			string(d.Type),
			d.PersonName,
			domain.FormatCurrency(d.RemainingAmount, currency),
			domain.FormatCurrency(d.TotalAmount, currency),
			string(d.Status),
			domain.FormatDate(d.Date),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"ID", "Type", "Person", "Remaining", "Total", "Status", "Date"},
		Rows:   rows,
	})
	return doc.String()
}

// DebtMarkdown renders one debt with its repayment history.
func DebtMarkdown(d domain.Debt, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	direction := "owes you"
	if d.Type == domain.DebtTypeBorrowed {
		direction = "you owe"
	}
	doc.H1(fmt.Sprintf("%s (%s)", d.PersonName, direction))
	doc.BulletList(
		fmt.Sprintf("Remaining: %s", domain.FormatCurrency(d.RemainingAmount, currency)),
		fmt.Sprintf("Total: %s", domain.FormatCurrency(d.TotalAmount, currency)),
		fmt.Sprintf("Status: %s", d.Status),
		fmt.Sprintf("Date: %s", domain.FormatDate(d.Date)),
	)
	if d.DueDate != nil {
		doc.PlainText(fmt.Sprintf("Due: %s", domain.FormatDate(*d.DueDate)))
	}
	if d.Note != nil {
		doc.PlainText(fmt.Sprintf("Note: %s", *d.Note))
	}

	doc.H2("Repayment history")
	if len(d.History) == 0 {
		doc.PlainText("No repayments yet.")
		return doc.String()
	}
	rows := make([][]string, 0, len(d.History))
	for _, r := range d.History {
		rows = append(rows, []string{domain.FormatDate(r.Date), domain.FormatCurrency(r.Amount, currency), deref(r.Note)})
	}
	doc.Table(md.TableSet{
		Header: []string{"Date", "Amount", "Note"},
		Rows:   rows,
	})
	return doc.String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
