// internal/service/ledger_service_test.go
package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fintrack/internal/domain"
	"fintrack/internal/repository"
	"fintrack/internal/util"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newLedger(t *testing.T) (LedgerService, *repository.Storage) {
	t.Helper()
	storage, _ := newMemoryStorage(t)
	return NewLedgerService(storage, util.DiscardLogger()), storage
}

func TestLedgerService_Transactions(t *testing.T) {
	ctx := context.Background()

	t.Run("NewestFirstAndSurvivesReload", func(t *testing.T) {
		ledger, storage := newLedger(t)
		note := "monthly"
		salary := ledger.AddTransaction(ctx, AddTransactionInput{
			Type: domain.TransactionTypeIncome, Amount: dec("500"), Category: "Salary", Note: &note,
		})
		food := ledger.AddTransaction(ctx, AddTransactionInput{
			Type: domain.TransactionTypeExpense, Amount: dec("120"), Category: "Food",
		})

		got := ledger.Transactions()
		require.Len(t, got, 2)
		assert.Equal(t, food.ID, got[0].ID)
		assert.Equal(t, salary.ID, got[1].ID)
		assert.False(t, got[1].Date.IsZero(), "zero date defaults to now")

		restarted := NewLedgerService(storage, util.DiscardLogger())
		restarted.Load(ctx)
		reloaded := restarted.Transactions()
		require.Len(t, reloaded, 2)
		for i := range got {
			assert.Equal(t, got[i].ID, reloaded[i].ID)
			assert.Equal(t, got[i].Type, reloaded[i].Type)
			assert.True(t, got[i].Amount.Equal(reloaded[i].Amount))
			assert.Equal(t, got[i].Category, reloaded[i].Category)
			assert.Equal(t, got[i].Note, reloaded[i].Note)
			assert.True(t, got[i].Date.Equal(reloaded[i].Date))
		}
	})

	t.Run("KeepsExplicitDate", func(t *testing.T) {
		ledger, _ := newLedger(t)
		date := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		tx := ledger.AddTransaction(ctx, AddTransactionInput{
			Type: domain.TransactionTypeExpense, Amount: dec("9.99"), Category: "Books", Date: date,
		})
		assert.True(t, tx.Date.Equal(date))
	})

	t.Run("DeleteUnknownIsNoop", func(t *testing.T) {
		ledger, _ := newLedger(t)
		ledger.AddTransaction(ctx, AddTransactionInput{Type: domain.TransactionTypeIncome, Amount: dec("1"), Category: "A"})
		before := ledger.Transactions()

		assert.False(t, ledger.DeleteTransaction(ctx, "missing"))
		assert.Equal(t, before, ledger.Transactions())
	})

	t.Run("Delete", func(t *testing.T) {
		ledger, storage := newLedger(t)
		keep := ledger.AddTransaction(ctx, AddTransactionInput{Type: domain.TransactionTypeIncome, Amount: dec("1"), Category: "A"})
		drop := ledger.AddTransaction(ctx, AddTransactionInput{Type: domain.TransactionTypeIncome, Amount: dec("2"), Category: "B"})

		assert.True(t, ledger.DeleteTransaction(ctx, drop.ID))
		got := ledger.Transactions()
		require.Len(t, got, 1)
		assert.Equal(t, keep.ID, got[0].ID)

		restarted := NewLedgerService(storage, util.DiscardLogger())
		restarted.Load(ctx)
		assert.Len(t, restarted.Transactions(), 1)
	})

	t.Run("AccessorReturnsCopy", func(t *testing.T) {
		ledger, _ := newLedger(t)
		note := "original"
		ledger.AddTransaction(ctx, AddTransactionInput{Type: domain.TransactionTypeIncome, Amount: dec("1"), Category: "A", Note: &note})

		got := ledger.Transactions()
		*got[0].Note = "changed"
		got[0].Category = "changed"

		fresh := ledger.Transactions()
		assert.Equal(t, "original", *fresh[0].Note)
		assert.Equal(t, "A", fresh[0].Category)
	})
}

func TestLedgerService_Debts(t *testing.T) {
	ctx := context.Background()

	t.Run("RepaymentScenario", func(t *testing.T) {
		ledger, _ := newLedger(t)
		debt := ledger.AddDebt(ctx, AddDebtInput{Type: domain.DebtTypeLent, TotalAmount: dec("100"), PersonName: "Alex"})
		assert.True(t, debt.RemainingAmount.Equal(dec("100")))
		assert.Equal(t, domain.DebtStatusActive, debt.Status)
		assert.Empty(t, debt.History)

		debt, ok := ledger.AddRepayment(ctx, debt.ID, dec("40"), nil)
		require.True(t, ok)
		assert.True(t, debt.RemainingAmount.Equal(dec("60")))
		assert.Equal(t, domain.DebtStatusActive, debt.Status)
		require.Len(t, debt.History, 1)
		assert.True(t, debt.History[0].Amount.Equal(dec("40")))

		debt, ok = ledger.AddRepayment(ctx, debt.ID, dec("60"), nil)
		require.True(t, ok)
		assert.True(t, debt.RemainingAmount.IsZero())
		assert.Equal(t, domain.DebtStatusPaid, debt.Status)
		require.Len(t, debt.History, 2)
		assert.True(t, debt.History[0].Amount.Equal(dec("60")))
		assert.True(t, debt.History[1].Amount.Equal(dec("40")))

		stored, ok := ledger.Debt(debt.ID)
		require.True(t, ok)
		assert.NoError(t, stored.CheckInvariants())
	})

	t.Run("RemainingTracksRepaymentSequence", func(t *testing.T) {
		sequences := [][]string{
			{"10", "20", "30"},
			{"0.01", "99.99"},
			{"33.33", "33.33", "33.34"},
			{"100"},
		}
		for _, seq := range sequences {
			ledger, _ := newLedger(t)
			debt := ledger.AddDebt(ctx, AddDebtInput{Type: domain.DebtTypeBorrowed, TotalAmount: dec("100"), PersonName: "Sam"})
			applied := decimal.Zero
			for _, amount := range seq {
				require.NoError(t, debt.ValidateRepayment(dec(amount)))
				debt, _ = ledger.AddRepayment(ctx, debt.ID, dec(amount), nil)
				applied = applied.Add(dec(amount))
			}
			want := dec("100").Sub(applied)
			assert.True(t, debt.RemainingAmount.Equal(want), "sequence %v", seq)
			assert.Equal(t, want.LessThanOrEqual(decimal.Zero), debt.Status == domain.DebtStatusPaid, "sequence %v", seq)
			assert.NoError(t, debt.CheckInvariants())
		}
	})

	t.Run("RepaymentIsUnconditional", func(t *testing.T) {
		ledger, _ := newLedger(t)
		debt := ledger.AddDebt(ctx, AddDebtInput{Type: domain.DebtTypeLent, TotalAmount: dec("10"), PersonName: "Kim"})

		debt, ok := ledger.AddRepayment(ctx, debt.ID, dec("15"), nil)
		require.True(t, ok)
		assert.True(t, debt.RemainingAmount.Equal(dec("-5")))
		assert.Equal(t, domain.DebtStatusPaid, debt.Status)
	})

	t.Run("RepaymentOnUnknownDebt", func(t *testing.T) {
		ledger, _ := newLedger(t)
		ledger.AddDebt(ctx, AddDebtInput{Type: domain.DebtTypeLent, TotalAmount: dec("10"), PersonName: "Kim"})
		before := ledger.Debts()

		_, ok := ledger.AddRepayment(ctx, "missing", dec("1"), nil)
		assert.False(t, ok)
		assert.Equal(t, before, ledger.Debts())
	})

	t.Run("Settle", func(t *testing.T) {
		ledger, _ := newLedger(t)
		debt := ledger.AddDebt(ctx, AddDebtInput{Type: domain.DebtTypeLent, TotalAmount: dec("50"), PersonName: "Lee"})
		debt, _ = ledger.AddRepayment(ctx, debt.ID, dec("20"), nil)

		note := "cash"
		settled, ok := ledger.SettleDebt(ctx, debt.ID, &note)
		require.True(t, ok)
		assert.Equal(t, domain.DebtStatusPaid, settled.Status)
		assert.True(t, settled.RemainingAmount.IsZero())
		require.Len(t, settled.History, 2)
		assert.True(t, settled.History[0].Amount.Equal(dec("30")))
		assert.Equal(t, "cash", *settled.History[0].Note)
		assert.NoError(t, settled.CheckInvariants())

		again, ok := ledger.SettleDebt(ctx, debt.ID, nil)
		require.True(t, ok)
		assert.Len(t, again.History, 2, "settling a paid debt changes nothing")

		_, ok = ledger.SettleDebt(ctx, "missing", nil)
		assert.False(t, ok)
	})

	t.Run("DeleteRemovesHistory", func(t *testing.T) {
		ledger, storage := newLedger(t)
		debt := ledger.AddDebt(ctx, AddDebtInput{Type: domain.DebtTypeLent, TotalAmount: dec("100"), PersonName: "Alex"})
		debt, _ = ledger.AddRepayment(ctx, debt.ID, dec("10"), nil)
		repaymentID := debt.History[0].ID

		assert.True(t, ledger.DeleteDebt(ctx, debt.ID))
		_, ok := ledger.Debt(debt.ID)
		assert.False(t, ok)

		restarted := NewLedgerService(storage, util.DiscardLogger())
		restarted.Load(ctx)
		for _, d := range restarted.Debts() {
			for _, r := range d.History {
				assert.NotEqual(t, repaymentID, r.ID)
			}
		}
		assert.Empty(t, restarted.Debts())
	})

	t.Run("DeleteUnknownIsNoop", func(t *testing.T) {
		ledger, _ := newLedger(t)
		ledger.AddDebt(ctx, AddDebtInput{Type: domain.DebtTypeLent, TotalAmount: dec("1"), PersonName: "A"})
		before := ledger.Debts()

		assert.False(t, ledger.DeleteDebt(ctx, "missing"))
		assert.Equal(t, before, ledger.Debts())
	})

	t.Run("DebtReturnsDeepCopy", func(t *testing.T) {
		ledger, _ := newLedger(t)
		debt := ledger.AddDebt(ctx, AddDebtInput{Type: domain.DebtTypeLent, TotalAmount: dec("10"), PersonName: "A"})
		ledger.AddRepayment(ctx, debt.ID, dec("1"), nil)

		got, ok := ledger.Debt(debt.ID)
		require.True(t, ok)
		got.History[0].Amount = dec("999")
		got.PersonName = "B"

		fresh, _ := ledger.Debt(debt.ID)
		assert.True(t, fresh.History[0].Amount.Equal(dec("1")))
		assert.Equal(t, "A", fresh.PersonName)
	})
}

func TestLedgerService_Summary(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(t)

	ledger.AddTransaction(ctx, AddTransactionInput{Type: domain.TransactionTypeIncome, Amount: dec("500"), Category: "Salary"})
	ledger.AddTransaction(ctx, AddTransactionInput{Type: domain.TransactionTypeExpense, Amount: dec("120"), Category: "Food"})
	lent := ledger.AddDebt(ctx, AddDebtInput{Type: domain.DebtTypeLent, TotalAmount: dec("100"), PersonName: "Alex"})
	ledger.AddRepayment(ctx, lent.ID, dec("40"), nil)
	borrowed := ledger.AddDebt(ctx, AddDebtInput{Type: domain.DebtTypeBorrowed, TotalAmount: dec("30"), PersonName: "Sam"})
	paid := ledger.AddDebt(ctx, AddDebtInput{Type: domain.DebtTypeBorrowed, TotalAmount: dec("70"), PersonName: "Jo"})
	ledger.SettleDebt(ctx, paid.ID, nil)

	summary := ledger.Summary()
	assert.True(t, summary.TotalIncome.Equal(dec("500")))
	assert.True(t, summary.TotalExpense.Equal(dec("120")))
	assert.True(t, summary.Balance.Equal(dec("380")))
	assert.True(t, summary.OwedToMe.Equal(dec("60")))
	assert.True(t, summary.IOwe.Equal(borrowed.RemainingAmount))
}

func TestLedgerService_SessionChanges(t *testing.T) {
	ctx := context.Background()
	storage, _ := newMemoryStorage(t)
	session := NewSessionService(storage, util.DiscardLogger(), 0)
	ledger := NewLedgerService(storage, util.DiscardLogger())
	session.Subscribe(ledger.HandleSessionChange)

	session.Restore(ctx)
	assert.Empty(t, ledger.Transactions())

	_, err := session.Login(ctx, "alice", "")
	require.NoError(t, err)
	tx := ledger.AddTransaction(ctx, AddTransactionInput{Type: domain.TransactionTypeIncome, Amount: dec("5"), Category: "Gift"})
	ledger.AddDebt(ctx, AddDebtInput{Type: domain.DebtTypeLent, TotalAmount: dec("10"), PersonName: "Bob"})

	session.Logout(ctx)
	assert.Empty(t, ledger.Transactions(), "logout clears memory")
	assert.Empty(t, ledger.Debts())

	_, err = session.Login(ctx, "mallory", "")
	require.NoError(t, err)
	got := ledger.Transactions()
	require.Len(t, got, 1, "ledger keys are shared across accounts")
	assert.Equal(t, tx.ID, got[0].ID)
	assert.Len(t, ledger.Debts(), 1)
}

func TestLedgerService_PersistenceFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("SaveFailureKeepsMemoryState", func(t *testing.T) {
		kv := new(MockKVStore)
		kv.On("Put", mock.Anything, repository.KeyTransactions, mock.Anything).Return(errors.New("disk full"))
		ledger := NewLedgerService(repository.NewStorage(kv, util.DiscardLogger()), util.DiscardLogger())

		tx := ledger.AddTransaction(ctx, AddTransactionInput{Type: domain.TransactionTypeIncome, Amount: dec("5"), Category: "Gift"})
		got := ledger.Transactions()
		require.Len(t, got, 1)
		assert.Equal(t, tx.ID, got[0].ID)
		kv.AssertExpectations(t)
	})

	t.Run("LoadFailureYieldsEmptyLedger", func(t *testing.T) {
		kv := new(MockKVStore)
		kv.On("Get", mock.Anything, repository.KeyTransactions).Return(nil, errors.New("io error"))
		kv.On("Get", mock.Anything, repository.KeyDebts).Return([]byte("{corrupt"), nil)
		ledger := NewLedgerService(repository.NewStorage(kv, util.DiscardLogger()), util.DiscardLogger())

		ledger.Load(ctx)
		assert.NotNil(t, ledger.Transactions())
		assert.Empty(t, ledger.Transactions())
		assert.Empty(t, ledger.Debts())
		kv.AssertExpectations(t)
	})
}

func TestLedgerService_ConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	ledger, storage := newLedger(t)
	debt := ledger.AddDebt(ctx, AddDebtInput{Type: domain.DebtTypeLent, TotalAmount: dec("1000"), PersonName: "Pat"})

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			ledger.AddTransaction(ctx, AddTransactionInput{Type: domain.TransactionTypeExpense, Amount: dec("1"), Category: "Coffee"})
		}()
		go func() {
			defer wg.Done()
			ledger.AddRepayment(ctx, debt.ID, dec("1"), nil)
		}()
	}
	wg.Wait()

	restarted := NewLedgerService(storage, util.DiscardLogger())
	restarted.Load(ctx)
	assert.Len(t, restarted.Transactions(), n, "no lost updates")
	reloaded, ok := restarted.Debt(debt.ID)
	require.True(t, ok)
	assert.Len(t, reloaded.History, n)
	assert.True(t, reloaded.RemainingAmount.Equal(dec("950")))
	assert.NoError(t, reloaded.CheckInvariants())
}
