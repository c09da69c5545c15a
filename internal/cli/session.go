// internal/cli/session.go
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

// loginCmd holds the flags for the 'login' subcommand.
type loginCmd struct {
	password string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "start a session on this device" }
func (*loginCmd) Usage() string {
	return `fintrack login [-p <password>] <username>

  Logs in as <username>. Any non-empty username succeeds; the password is not checked.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.password, "p", "", "Password (accepted, not verified)")
}

func (c *loginCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	application := appFrom(args)
	if application == nil || f.NArg() != 1 {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}

	user, err := application.SessionService.Login(ctx, f.Arg(0), c.password)
	if err != nil {
		return fail(err)
	}
	fmt.Fprintf(stdout, "Welcome, %s!\n", user.Username)
	return subcommands.ExitSuccess
}

// signupCmd holds the flags for the 'signup' subcommand.
type signupCmd struct {
	email    string
	password string
}

func (*signupCmd) Name() string     { return "signup" }
func (*signupCmd) Synopsis() string { return "create an account and start a session" }
func (*signupCmd) Usage() string {
	return `fintrack signup -email <email> -p <password> <username>

  All three fields are required. Email and password are not stored.
`
}

func (c *signupCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "Email address")
	f.StringVar(&c.password, "p", "", "Password")
}

func (c *signupCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	application := appFrom(args)
	if application == nil || f.NArg() != 1 {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}

	user, err := application.SessionService.Signup(ctx, f.Arg(0), c.email, c.password)
	if err != nil {
		return fail(err)
	}
	fmt.Fprintf(stdout, "Account created. Welcome, %s!\n", user.Username)
	return subcommands.ExitSuccess
}

type logoutCmd struct{}

func (*logoutCmd) Name() string             { return "logout" }
func (*logoutCmd) Synopsis() string         { return "end the current session" }
func (*logoutCmd) Usage() string            { return "fintrack logout\n" }
func (*logoutCmd) SetFlags(_ *flag.FlagSet) {}

func (*logoutCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	application := appFrom(args)
	if application == nil {
		return fail(errors.New("application not initialized"))
	}
	application.SessionService.Logout(ctx)
	fmt.Fprintln(stdout, "Logged out.")
	return subcommands.ExitSuccess
}

type whoamiCmd struct{}

func (*whoamiCmd) Name() string             { return "whoami" }
func (*whoamiCmd) Synopsis() string         { return "print the logged-in user" }
func (*whoamiCmd) Usage() string            { return "fintrack whoami\n" }
func (*whoamiCmd) SetFlags(_ *flag.FlagSet) {}

func (*whoamiCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	application, err := requireSession(args)
	if err != nil {
		return fail(err)
	}
	user := application.SessionService.CurrentUser()
	fmt.Fprintf(stdout, "%s (%s)\n", user.Username, user.ID)
	return subcommands.ExitSuccess
}
