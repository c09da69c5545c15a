// internal/cli/debts.go
package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/google/subcommands"

	"fintrack/internal/domain"
	"fintrack/internal/service"
	"fintrack/internal/util"
)

// addDebtCmd holds the flags for the 'add-debt' subcommand.
type addDebtCmd struct {
	note string
	date string
	due  string
}

func (*addDebtCmd) Name() string     { return "add-debt" }
func (*addDebtCmd) Synopsis() string { return "record money lent or borrowed" }
func (*addDebtCmd) Usage() string {
	return `fintrack add-debt [-note <note>] [-d <YYYY-MM-DD>] [-due <YYYY-MM-DD>] <lent|borrowed> <amount> <person>

  "lent" means <person> owes you; "borrowed" means you owe <person>.
`
}

func (c *addDebtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.note, "note", "", "Optional note")
	f.StringVar(&c.date, "d", "", "Debt date (YYYY-MM-DD), defaults to now")
	f.StringVar(&c.due, "due", "", "Optional due date (YYYY-MM-DD)")
}

func (c *addDebtCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 3 {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	application, err := requireSession(args)
	if err != nil {
		return fail(err)
	}

	debtType, err := domain.ParseDebtType(f.Arg(0))
	if err != nil {
		return fail(err)
	}
	amount, err := domain.ParseAmount(f.Arg(1))
	if err != nil {
		return fail(err)
	}
	person := strings.TrimSpace(strings.Join(f.Args()[2:], " "))
	if err := domain.ValidateRequired("person", person); err != nil {
		return fail(err)
	}
	date, err := parseDate(c.date)
	if err != nil {
		return fail(err)
	}
	var dueDate *time.Time
	if c.due != "" {
		due, err := parseDate(c.due)
		if err != nil {
			return fail(err)
		}
		dueDate = &due
	}

	debt := application.LedgerService.AddDebt(ctx, service.AddDebtInput{
		Type:        debtType,
		TotalAmount: amount,
		PersonName:  person,
		Note:        domain.OptionalString(c.note),
		Date:        date,
		DueDate:     dueDate,
	})
	fmt.Fprintf(stdout, "Added %s debt with %s: %s id=%s\n", debt.Type, debt.PersonName, domain.FormatCurrency(debt.TotalAmount, application.Config.Display.Currency), debt.ID)
	return subcommands.ExitSuccess
}

// debtsCmd holds the flags for the 'debts' subcommand.
type debtsCmd struct {
	filter string
	all    bool
	raw    bool
}

func (*debtsCmd) Name() string     { return "debts" }
func (*debtsCmd) Synopsis() string { return "list active debts" }
func (*debtsCmd) Usage() string {
	return `fintrack debts [-type all|lent|borrowed] [-all] [-raw]
`
}

func (c *debtsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.filter, "type", domain.FilterAll, "Filter: all, lent or borrowed")
	f.BoolVar(&c.all, "all", false, "Include paid debts")
	f.BoolVar(&c.raw, "raw", false, "Print raw markdown")
}

func (c *debtsCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	application, err := requireSession(args)
	if err != nil {
		return fail(err)
	}
	if c.filter != domain.FilterAll {
		if _, err := domain.ParseDebtType(c.filter); err != nil {
			return fail(err)
		}
	}

	debts := domain.FilterDebts(application.LedgerService.Debts(), c.filter, c.all)
	printMarkdown(DebtsMarkdown(debts, application.Config.Display.Currency), c.raw)
	return subcommands.ExitSuccess
}

// debtCmd holds the flags for the 'debt' subcommand.
type debtCmd struct {
	raw bool
}

func (*debtCmd) Name() string     { return "debt" }
func (*debtCmd) Synopsis() string { return "show a debt and its repayment history" }
func (*debtCmd) Usage() string    { return "fintrack debt [-raw] <id>\n" }

func (c *debtCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "Print raw markdown")
}

func (c *debtCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	application, err := requireSession(args)
	if err != nil {
		return fail(err)
	}

	debt, ok := application.LedgerService.Debt(f.Arg(0))
	if !ok {
		return fail(fmt.Errorf("debt %q: %w", f.Arg(0), util.ErrNotFound))
	}
	printMarkdown(DebtMarkdown(debt, application.Config.Display.Currency), c.raw)
	return subcommands.ExitSuccess
}

// repayCmd holds the flags for the 'repay' subcommand.
type repayCmd struct {
	note string
}

func (*repayCmd) Name() string     { return "repay" }
func (*repayCmd) Synopsis() string { return "record a repayment against a debt" }
func (*repayCmd) Usage() string {
	return `fintrack repay [-note <note>] <id> <amount>

  The amount must be positive and no more than the remaining balance.
`
}

func (c *repayCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.note, "note", "", "Optional note")
}

func (c *repayCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	application, err := requireSession(args)
	if err != nil {
		return fail(err)
	}

	debt, ok := application.LedgerService.Debt(f.Arg(0))
	if !ok {
		return fail(fmt.Errorf("debt %q: %w", f.Arg(0), util.ErrNotFound))
	}
	amount, err := domain.ParseAmount(f.Arg(1))
	if err != nil {
		return fail(err)
	}
	if err := debt.ValidateRepayment(amount); err != nil {
		return fail(err)
	}

	updated, ok := application.LedgerService.AddRepayment(ctx, debt.ID, amount, domain.OptionalString(c.note))
	if !ok {
		return fail(fmt.Errorf("debt %q: %w", debt.ID, util.ErrNotFound))
	}
	fmt.Fprintf(stdout, "Repayment recorded. Remaining: %s (%s)\n", domain.FormatCurrency(updated.RemainingAmount, application.Config.Display.Currency), updated.Status)
	return subcommands.ExitSuccess
}

// settleCmd holds the flags for the 'settle' subcommand.
type settleCmd struct {
	note string
}

func (*settleCmd) Name() string     { return "settle" }
func (*settleCmd) Synopsis() string { return "mark a debt as fully paid" }
func (*settleCmd) Usage() string    { return "fintrack settle [-note <note>] <id>\n" }

func (c *settleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.note, "note", "", "Optional note")
}

func (c *settleCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	application, err := requireSession(args)
	if err != nil {
		return fail(err)
	}

	debt, ok := application.LedgerService.SettleDebt(ctx, f.Arg(0), domain.OptionalString(c.note))
	if !ok {
		return fail(fmt.Errorf("debt %q: %w", f.Arg(0), util.ErrNotFound))
	}
	fmt.Fprintf(stdout, "Debt with %s is %s.\n", debt.PersonName, debt.Status)
	return subcommands.ExitSuccess
}

type rmDebtCmd struct{}

func (*rmDebtCmd) Name() string             { return "rm-debt" }
func (*rmDebtCmd) Synopsis() string         { return "delete a debt and its history" }
func (*rmDebtCmd) Usage() string            { return "fintrack rm-debt <id>\n" }
func (*rmDebtCmd) SetFlags(_ *flag.FlagSet) {}

func (c *rmDebtCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	application, err := requireSession(args)
	if err != nil {
		return fail(err)
	}

	if application.LedgerService.DeleteDebt(ctx, f.Arg(0)) {
		fmt.Fprintln(stdout, "Debt deleted.")
	} else {
		fmt.Fprintln(stdout, "No such debt, nothing to delete.")
	}
	return subcommands.ExitSuccess
}
