// internal/cli/cli.go
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	app "fintrack/internal"
	"fintrack/internal/util"
)

// Output streams, swapped in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Register adds every fintrack command to c.
// Commands expect the initialized *app.Application as their first Execute argument.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&loginCmd{}, "session")
	c.Register(&signupCmd{}, "session")
	c.Register(&logoutCmd{}, "session")
	c.Register(&whoamiCmd{}, "session")

	c.Register(&addTxCmd{}, "transactions")
	c.Register(&txsCmd{}, "transactions")
	c.Register(&rmTxCmd{}, "transactions")

	c.Register(&addDebtCmd{}, "debts")
	c.Register(&debtsCmd{}, "debts")
	c.Register(&debtCmd{}, "debts")
	c.Register(&repayCmd{}, "debts")
	c.Register(&settleCmd{}, "debts")
	c.Register(&rmDebtCmd{}, "debts")

	c.Register(&summaryCmd{}, "reports")
}

func appFrom(args []interface{}) *app.Application {
	for _, a := range args {
		if application, ok := a.(*app.Application); ok {
			return application
		}
	}
	return nil
}

// requireSession returns the application when a user is logged in.
func requireSession(args []interface{}) (*app.Application, error) {
	application := appFrom(args)
	if application == nil {
		return nil, errors.New("application not initialized")
	}
	if application.SessionService.CurrentUser() == nil {
		return nil, fmt.Errorf("%w: run 'fintrack login <username>' first", util.ErrNotLoggedIn)
	}
	return application, nil
}

// fail prints err and maps it to an exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(stderr, "Error: %v\n", err)
	if util.IsError(err, util.ErrInvalidInput) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}

// parseDate accepts an empty string (now) or a YYYY-MM-DD date.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", util.ErrInvalidInput, s)
	}
	return t.UTC(), nil
}

// printMarkdown writes doc to stdout, rendered for the terminal unless raw is set.
func printMarkdown(doc string, raw bool) {
	if raw {
		fmt.Fprintln(stdout, doc)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		var out string
		if out, err = r.Render(doc); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	fmt.Fprintln(stdout, doc)
}
