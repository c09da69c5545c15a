// internal/cli/transactions.go
package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"fintrack/internal/domain"
	"fintrack/internal/service"
)

// addTxCmd holds the flags for the 'add-tx' subcommand.
type addTxCmd struct {
	note string
	date string
}

func (*addTxCmd) Name() string     { return "add-tx" }
func (*addTxCmd) Synopsis() string { return "record an income or expense" }
func (*addTxCmd) Usage() string {
	return `fintrack add-tx [-note <note>] [-d <YYYY-MM-DD>] <income|expense> <amount> <category>

  Records a transaction. The date defaults to now.
`
}

func (c *addTxCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.note, "note", "", "Optional note")
	f.StringVar(&c.date, "d", "", "Transaction date (YYYY-MM-DD), defaults to now")
}

func (c *addTxCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	application, err := requireSession(args)
	if err != nil {
		return fail(err)
	}

	txType, err := domain.ParseTransactionType(f.Arg(0))
	if err != nil {
		return fail(err)
	}
	amount, err := domain.ParseAmount(f.Arg(1))
	if err != nil {
		return fail(err)
	}
	category := strings.TrimSpace(f.Arg(2))
	if err := domain.ValidateRequired("category", category); err != nil {
		return fail(err)
	}
	date, err := parseDate(c.date)
	if err != nil {
		return fail(err)
	}

	tx := application.LedgerService.AddTransaction(ctx, service.AddTransactionInput{
		Type:     txType,
		Amount:   amount,
		Category: category,
		Note:     domain.OptionalString(c.note),
		Date:     date,
	})
	fmt.Fprintf(stdout, "Added %s %s (%s) id=%s\n", tx.Type, domain.FormatCurrency(tx.Amount, application.Config.Display.Currency), tx.Category, tx.ID)
	return subcommands.ExitSuccess
}

// txsCmd holds the flags for the 'txs' subcommand.
type txsCmd struct {
	filter string
	raw    bool
}

func (*txsCmd) Name() string     { return "txs" }
func (*txsCmd) Synopsis() string { return "list transactions, newest first" }
func (*txsCmd) Usage() string {
	return `fintrack txs [-type all|income|expense] [-raw]
`
}

func (c *txsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.filter, "type", domain.FilterAll, "Filter: all, income or expense")
	f.BoolVar(&c.raw, "raw", false, "Print raw markdown")
}

func (c *txsCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	application, err := requireSession(args)
	if err != nil {
		return fail(err)
	}
	if c.filter != domain.FilterAll {
		if _, err := domain.ParseTransactionType(c.filter); err != nil {
			return fail(err)
		}
	}

	transactions := domain.FilterTransactions(application.LedgerService.Transactions(), c.filter)
	printMarkdown(TransactionsMarkdown(transactions, application.Config.Display.Currency), c.raw)
	return subcommands.ExitSuccess
}

type rmTxCmd struct{}

func (*rmTxCmd) Name() string             { return "rm-tx" }
func (*rmTxCmd) Synopsis() string         { return "delete a transaction" }
func (*rmTxCmd) Usage() string            { return "fintrack rm-tx <id>\n" }
func (*rmTxCmd) SetFlags(_ *flag.FlagSet) {}

func (c *rmTxCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	application, err := requireSession(args)
	if err != nil {
		return fail(err)
	}

	if application.LedgerService.DeleteTransaction(ctx, f.Arg(0)) {
		fmt.Fprintln(stdout, "Transaction deleted.")
	} else {
		fmt.Fprintln(stdout, "No such transaction, nothing to delete.")
	}
	return subcommands.ExitSuccess
}
