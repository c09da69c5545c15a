// internal/api/handler/ledger.go
package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"fintrack/internal/api/types"
	"fintrack/internal/domain"
	"fintrack/internal/service"
	"fintrack/internal/util" // For custom errors
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// LedgerHandler handles HTTP requests related to transactions and debts.
type LedgerHandler struct {
	responder
	service  service.LedgerService
	currency string // ISO 4217 code used for formatted amounts
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(svc service.LedgerService, currency string, logger *slog.Logger) *LedgerHandler {
	return &LedgerHandler{
		responder: responder{logger: logger},
		service:   svc,
		currency:  currency,
	}
}

// CreateTransactionRequest represents the request body for a new transaction.
type CreateTransactionRequest struct {
	Type     string          `json:"type"     validate:"required,oneof=income expense"`
	Amount   decimal.Decimal `json:"amount"   validate:"gt=0"`
	Category string          `json:"category" validate:"required,max=64"`
	Note     *string         `json:"note"     validate:"omitempty,max=500"`
	Date     *time.Time      `json:"date"`
}

// CreateDebtRequest represents the request body for a new debt.
type CreateDebtRequest struct {
	Type        string          `json:"type"        validate:"required,oneof=lent borrowed"`
	TotalAmount decimal.Decimal `json:"totalAmount" validate:"gt=0"`
	PersonName  string          `json:"personName"  validate:"required,max=100"`
	Note        *string         `json:"note"        validate:"omitempty,max=500"`
	Date        *time.Time      `json:"date"`
	DueDate     *time.Time      `json:"dueDate"`
}

// RepaymentRequest represents the request body for a repayment.
type RepaymentRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"gt=0"`
	Note   *string         `json:"note"   validate:"omitempty,max=500"`
}

// SettleRequest represents the optional request body for settling a debt.
type SettleRequest struct {
	Note *string `json:"note" validate:"omitempty,max=500"`
}

// SummaryResponse is the home screen summary with display strings.
type SummaryResponse struct {
	domain.Summary
	Currency  string            `json:"currency"`
	Formatted map[string]string `json:"formatted"`
}

// ListTransactions returns transactions newest first.
// GET /transactions?type=&limit=&offset=
func (h *LedgerHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	filter := strings.TrimSpace(r.URL.Query().Get("type"))
	if filter != "" && filter != domain.FilterAll {
		if _, err := domain.ParseTransactionType(filter); err != nil {
			h.respondWithError(w, err)
			return
		}
	}
	limit, offset := pageParams(r)

	transactions := domain.FilterTransactions(h.service.Transactions(), strings.ToLower(filter))
	h.respondWithJSON(w, http.StatusOK, types.PaginatedResponse[domain.Transaction]{
		Data:       paginate(transactions, limit, offset),
		Limit:      limit,
		Offset:     offset,
		TotalCount: int64(len(transactions)),
	})
}

// CreateTransaction records a new transaction.
// POST /transactions
func (h *LedgerHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.respondWithError(w, err)
		return
	}
	txType, err := domain.ParseTransactionType(req.Type)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	category := strings.TrimSpace(req.Category)
	if err := domain.ValidateRequired("category", category); err != nil {
		h.respondWithError(w, err)
		return
	}

	tx := h.service.AddTransaction(r.Context(), service.AddTransactionInput{
		Type:     txType,
		Amount:   req.Amount,
		Category: category,
		Note:     optional(req.Note),
		Date:     timeOrZero(req.Date),
	})
	h.respondWithJSON(w, http.StatusCreated, tx)
}

// DeleteTransaction removes a transaction. Unknown ids are a no-op.
// DELETE /transactions/{id}
func (h *LedgerHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	h.service.DeleteTransaction(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// ListDebts returns debts newest first. Paid debts are hidden unless include_paid is set.
// GET /debts?type=&include_paid=&limit=&offset=
func (h *LedgerHandler) ListDebts(w http.ResponseWriter, r *http.Request) {
	filter := strings.TrimSpace(r.URL.Query().Get("type"))
	if filter != "" && filter != domain.FilterAll {
		if _, err := domain.ParseDebtType(filter); err != nil {
			h.respondWithError(w, err)
			return
		}
	}
	includePaid := false
	if v := r.URL.Query().Get("include_paid"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			h.respondWithError(w, fmt.Errorf("%w: include_paid must be a boolean", util.ErrInvalidInput))
			return
		}
		includePaid = b
	}
	limit, offset := pageParams(r)

	debts := domain.FilterDebts(h.service.Debts(), strings.ToLower(filter), includePaid)
	h.respondWithJSON(w, http.StatusOK, types.PaginatedResponse[domain.Debt]{
		Data:       paginate(debts, limit, offset),
		Limit:      limit,
		Offset:     offset,
		TotalCount: int64(len(debts)),
	})
}

// CreateDebt records a new debt.
// POST /debts
func (h *LedgerHandler) CreateDebt(w http.ResponseWriter, r *http.Request) {
	var req CreateDebtRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.respondWithError(w, err)
		return
	}
	debtType, err := domain.ParseDebtType(req.Type)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	person := strings.TrimSpace(req.PersonName)
	if err := domain.ValidateRequired("personName", person); err != nil {
		h.respondWithError(w, err)
		return
	}

	debt := h.service.AddDebt(r.Context(), service.AddDebtInput{
		Type:        debtType,
		TotalAmount: req.TotalAmount,
		PersonName:  person,
		Note:        optional(req.Note),
		Date:        timeOrZero(req.Date),
		DueDate:     req.DueDate,
	})
	h.respondWithJSON(w, http.StatusCreated, debt)
}

// GetDebt returns one debt with its repayment history.
// GET /debts/{id}
func (h *LedgerHandler) GetDebt(w http.ResponseWriter, r *http.Request) {
	debt, ok := h.service.Debt(chi.URLParam(r, "id"))
	if !ok {
		h.respondWithError(w, util.ErrNotFound)
		return
	}
	h.respondWithJSON(w, http.StatusOK, debt)
}

// AddRepayment records a repayment of 0 < amount <= remaining.
// POST /debts/{id}/repayments
func (h *LedgerHandler) AddRepayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	debt, ok := h.service.Debt(id)
	if !ok {
		h.respondWithError(w, util.ErrNotFound)
		return
	}

	var req RepaymentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.respondWithError(w, err)
		return
	}
	if err := debt.ValidateRepayment(req.Amount); err != nil {
		h.respondWithError(w, err)
		return
	}

	updated, ok := h.service.AddRepayment(r.Context(), id, req.Amount, optional(req.Note))
	if !ok {
		h.respondWithError(w, util.ErrNotFound)
		return
	}
	h.respondWithJSON(w, http.StatusOK, updated)
}

// SettleDebt marks a debt as fully paid.
// POST /debts/{id}/settle
func (h *LedgerHandler) SettleDebt(w http.ResponseWriter, r *http.Request) {
	var req SettleRequest
	if err := decodeAndValidate(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.respondWithError(w, err)
		return
	}

	debt, ok := h.service.SettleDebt(r.Context(), chi.URLParam(r, "id"), optional(req.Note))
	if !ok {
		h.respondWithError(w, util.ErrNotFound)
		return
	}
	h.respondWithJSON(w, http.StatusOK, debt)
}

// DeleteDebt removes a debt with its history. Unknown ids are a no-op.
// DELETE /debts/{id}
func (h *LedgerHandler) DeleteDebt(w http.ResponseWriter, r *http.Request) {
	h.service.DeleteDebt(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// GetSummary returns totals over the whole ledger.
// GET /summary
func (h *LedgerHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary := h.service.Summary()
	h.respondWithJSON(w, http.StatusOK, SummaryResponse{
		Summary:  summary,
		Currency: h.currency,
		Formatted: map[string]string{
			"totalIncome":  domain.FormatCurrency(summary.TotalIncome, h.currency),
			"totalExpense": domain.FormatCurrency(summary.TotalExpense, h.currency),
			"balance":      domain.FormatCurrency(summary.Balance, h.currency),
			"owedToMe":     domain.FormatCurrency(summary.OwedToMe, h.currency),
			"iOwe":         domain.FormatCurrency(summary.IOwe, h.currency),
		},
	})
}

func pageParams(r *http.Request) (limit, offset int) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = defaultPageLimit // Default limit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	offset, err = strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0 // Default offset
	}
	return limit, offset
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func optional(s *string) *string {
	if s == nil {
		return nil
	}
	return domain.OptionalString(*s)
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
