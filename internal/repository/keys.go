// internal/repository/keys.go
package repository

// Fixed storage slots. Ledger slots are shared by every account on the device.
const (
	KeyUserSession  = "user_session"
	KeyTransactions = "transactions_data"
	KeyDebts        = "debts_data"
)
