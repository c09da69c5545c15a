// internal/app_test.go
package app_test

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "fintrack/internal"
	"fintrack/internal/config"
	"fintrack/internal/domain"
	"fintrack/internal/service"
	"fintrack/internal/util"
)

func newConfig(storage config.StorageConfig) *config.AppConfig {
	return &config.AppConfig{
		Server:  config.ServerConfig{Port: 8080, RequestTimeout: time.Second},
		Storage: storage,
		Log:     config.LogConfig{Level: "error", Format: "text"},
		Display: config.DisplayConfig{Currency: "USD"},
	}
}

func TestApplication_RestartRestoresState(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for name, storage := range map[string]config.StorageConfig{
		"File":   {Driver: config.DriverFile, Dir: filepath.Join(dir, "files")},
		"SQLite": {Driver: config.DriverSQLite, SQLitePath: filepath.Join(dir, "db", "fintrack.db")},
	} {
		t.Run(name, func(t *testing.T) {
			first := app.NewApplication(app.WithConfig(newConfig(storage)), app.WithLogOutput(io.Discard))
			require.NoError(t, first.Initialize(ctx))
			assert.Nil(t, first.SessionService.CurrentUser())

			_, err := first.SessionService.Login(ctx, "alice", "")
			require.NoError(t, err)
			tx := first.LedgerService.AddTransaction(ctx, service.AddTransactionInput{
				Type: domain.TransactionTypeIncome, Amount: decimal.NewFromInt(500), Category: "Salary",
			})
			require.NoError(t, first.Shutdown(ctx))

			second := app.NewApplication(app.WithConfig(newConfig(storage)), app.WithLogOutput(io.Discard))
			require.NoError(t, second.Initialize(ctx))
			defer second.Shutdown(ctx)

			user := second.SessionService.CurrentUser()
			require.NotNil(t, user, "session restored on start")
			assert.Equal(t, "alice", user.Username)
			assert.False(t, second.SessionService.IsLoading())

			got := second.LedgerService.Transactions()
			require.Len(t, got, 1, "ledger loaded for the restored user")
			assert.Equal(t, tx.ID, got[0].ID)
		})
	}
}

func TestApplication_UnsupportedDriver(t *testing.T) {
	application := app.NewApplication(
		app.WithConfig(newConfig(config.StorageConfig{Driver: "redis"})),
		app.WithLogOutput(io.Discard),
	)
	err := application.Initialize(context.Background())
	assert.ErrorIs(t, err, util.ErrUnsupportedDriver)
}
