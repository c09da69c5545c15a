// internal/service/ledger_service.go
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations

	"fintrack/internal/domain"
	"fintrack/internal/repository"
)

// AddTransactionInput carries the fields of a new transaction.
// Callers validate it before calling AddTransaction.
type AddTransactionInput struct {
	Type     domain.TransactionType
	Amount   decimal.Decimal
	Category string
	Note     *string
	Date     time.Time // Zero means now
}

// AddDebtInput carries the fields of a new debt.
// Callers validate it before calling AddDebt.
type AddDebtInput struct {
	Type        domain.DebtType
	TotalAmount decimal.Decimal
	PersonName  string
	Note        *string
	Date        time.Time // Zero means now
	DueDate     *time.Time
}

// LedgerService defines the interface for the transaction and debt ledger.
// Writes apply their mutation unconditionally and persist the whole collection;
// mutations of unknown ids are no-ops reported through a false result.
type LedgerService interface {
	Load(ctx context.Context)
	Reset()
	HandleSessionChange(ctx context.Context, user *domain.User)

	Transactions() []domain.Transaction
	Debts() []domain.Debt
	Debt(id string) (domain.Debt, bool)
	Summary() domain.Summary

	AddTransaction(ctx context.Context, in AddTransactionInput) domain.Transaction
	DeleteTransaction(ctx context.Context, id string) bool
	AddDebt(ctx context.Context, in AddDebtInput) domain.Debt
	AddRepayment(ctx context.Context, debtID string, amount decimal.Decimal, note *string) (domain.Debt, bool)
	SettleDebt(ctx context.Context, debtID string, note *string) (domain.Debt, bool)
	DeleteDebt(ctx context.Context, id string) bool
}

// ledgerService implements the LedgerService interface.
type ledgerService struct {
	storage *repository.Storage
	logger  *slog.Logger

	mu           sync.RWMutex // Single writer: every read-modify-write holds it
	transactions []domain.Transaction
	debts        []domain.Debt
}

// NewLedgerService creates a new instance of LedgerService with empty collections.
func NewLedgerService(storage *repository.Storage, logger *slog.Logger) LedgerService {
	return &ledgerService{
		storage:      storage,
		logger:       logger,
		transactions: []domain.Transaction{},
		debts:        []domain.Debt{},
	}
}

// Load replaces both in-memory collections with what is persisted.
// Missing or unreadable slots load as empty.
func (s *ledgerService) Load(ctx context.Context) {
	var transactions []domain.Transaction
	if !s.storage.Get(ctx, repository.KeyTransactions, &transactions) || transactions == nil {
		transactions = []domain.Transaction{}
	}
	var debts []domain.Debt
	if !s.storage.Get(ctx, repository.KeyDebts, &debts) || debts == nil {
		debts = []domain.Debt{}
	}
	for i := range debts {
		if debts[i].History == nil {
			debts[i].History = []domain.DebtRepayment{}
		}
	}

	s.mu.Lock()
	s.transactions = transactions
	s.debts = debts
	s.mu.Unlock()

	s.logger.Debug("Ledger loaded", "transactions", len(transactions), "debts", len(debts))
}

// Reset clears the in-memory collections. Persisted data is left untouched.
func (s *ledgerService) Reset() {
	s.mu.Lock()
	s.transactions = []domain.Transaction{}
	s.debts = []domain.Debt{}
	s.mu.Unlock()

	s.logger.Debug("Ledger reset")
}

// HandleSessionChange loads the ledger when a user is present and resets it otherwise.
// It has the SessionListener signature.
func (s *ledgerService) HandleSessionChange(ctx context.Context, user *domain.User) {
	if user == nil {
		s.Reset()
		return
	}
	s.Load(ctx)
}

// Transactions returns a copy of all transactions, newest first.
func (s *ledgerService) Transactions() []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Transaction, len(s.transactions))
	for i, t := range s.transactions {
		out[i] = t.Clone()
	}
	return out
}

// Debts returns a deep copy of all debts, newest first.
func (s *ledgerService) Debts() []domain.Debt {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Debt, len(s.debts))
	for i, d := range s.debts {
		out[i] = d.Clone()
	}
	return out
}

// Debt returns a deep copy of the debt with the given id.
func (s *ledgerService) Debt(id string) (domain.Debt, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.debtIndex(id); i >= 0 {
		return s.debts[i].Clone(), true
	}
	return domain.Debt{}, false
}

// Summary aggregates the current ledger.
func (s *ledgerService) Summary() domain.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Summarize(s.transactions, s.debts)
}

// AddTransaction prepends a new transaction and persists the list.
func (s *ledgerService) AddTransaction(ctx context.Context, in AddTransactionInput) domain.Transaction {
	t := domain.NewTransaction(in.Type, in.Amount, in.Category, in.Note, in.Date)

	s.mu.Lock()
	defer s.mu.Unlock()

	transactions := make([]domain.Transaction, 0, len(s.transactions)+1)
	transactions = append(transactions, *t)
	s.transactions = append(transactions, s.transactions...)
	s.persistTransactions(ctx)

	s.logger.Info("Transaction added", "transaction_id", t.ID, "type", t.Type, "amount", t.Amount.String())
	return t.Clone()
}

// DeleteTransaction removes the transaction with the given id. Unknown ids are a no-op.
func (s *ledgerService) DeleteTransaction(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]domain.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	found := len(kept) != len(s.transactions)
	s.transactions = kept
	s.persistTransactions(ctx)

	if found {
		s.logger.Info("Transaction deleted", "transaction_id", id)
	}
	return found
}

// AddDebt prepends a new active debt and persists the list.
func (s *ledgerService) AddDebt(ctx context.Context, in AddDebtInput) domain.Debt {
	d := domain.NewDebt(in.Type, in.TotalAmount, in.PersonName, in.Note, in.Date, in.DueDate)

	s.mu.Lock()
	defer s.mu.Unlock()

	debts := make([]domain.Debt, 0, len(s.debts)+1)
	debts = append(debts, *d)
	s.debts = append(debts, s.debts...)
	s.persistDebts(ctx)

	s.logger.Info("Debt added", "debt_id", d.ID, "type", d.Type, "amount", d.TotalAmount.String())
	return d.Clone()
}

// AddRepayment records a repayment against the debt and persists the list.
// The amount is not re-validated here; see domain.Debt.ValidateRepayment.
func (s *ledgerService) AddRepayment(ctx context.Context, debtID string, amount decimal.Decimal, note *string) (domain.Debt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.debtIndex(debtID)
	if i < 0 {
		return domain.Debt{}, false
	}
	return s.applyRepayment(ctx, i, domain.NewRepayment(amount, note)), true
}

// SettleDebt marks the debt paid by recording a repayment of its full remaining
// amount. Already paid debts are left unchanged.
func (s *ledgerService) SettleDebt(ctx context.Context, debtID string, note *string) (domain.Debt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.debtIndex(debtID)
	if i < 0 {
		return domain.Debt{}, false
	}
	if s.debts[i].Status == domain.DebtStatusPaid {
		return s.debts[i].Clone(), true
	}
	return s.applyRepayment(ctx, i, domain.NewRepayment(s.debts[i].RemainingAmount, note)), true
}

// DeleteDebt removes the debt and its whole history. Unknown ids are a no-op.
func (s *ledgerService) DeleteDebt(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]domain.Debt, 0, len(s.debts))
	for _, d := range s.debts {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	found := len(kept) != len(s.debts)
	s.debts = kept
	s.persistDebts(ctx)

	if found {
		s.logger.Info("Debt deleted", "debt_id", id)
	}
	return found
}

// applyRepayment must be called with s.mu held.
func (s *ledgerService) applyRepayment(ctx context.Context, i int, r domain.DebtRepayment) domain.Debt {
	updated := s.debts[i].Clone()
	updated.ApplyRepayment(r)

	debts := make([]domain.Debt, len(s.debts))
	copy(debts, s.debts)
	debts[i] = updated
	s.debts = debts
	s.persistDebts(ctx)

	s.logger.Info("Repayment recorded",
		"debt_id", updated.ID,
		"amount", r.Amount.String(),
		"remaining", updated.RemainingAmount.String(),
		"status", updated.Status,
	)
	return updated.Clone()
}

// debtIndex must be called with s.mu held.
func (s *ledgerService) debtIndex(id string) int {
	for i := range s.debts {
		if s.debts[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *ledgerService) persistTransactions(ctx context.Context) {
	if !s.storage.Save(ctx, repository.KeyTransactions, s.transactions) {
		s.logger.Warn("Transactions not persisted, changes will be lost on restart")
	}
}

func (s *ledgerService) persistDebts(ctx context.Context) {
	if !s.storage.Save(ctx, repository.KeyDebts, s.debts) {
		s.logger.Warn("Debts not persisted, changes will be lost on restart")
	}
}
