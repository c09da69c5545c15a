// internal/cli/summary.go
package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	raw bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display balance, income, expense and debt totals" }
func (*summaryCmd) Usage() string {
	return `fintrack summary [-raw]

  Displays the totals over all transactions and active debts.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "Print raw markdown instead of rendering it")
}

func (c *summaryCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	application, err := requireSession(args)
	if err != nil {
		return fail(err)
	}

	user := application.SessionService.CurrentUser()
	doc := SummaryMarkdown(user.Username, application.LedgerService.Summary(), application.Config.Display.Currency)
	printMarkdown(doc, c.raw)
	return subcommands.ExitSuccess
}
