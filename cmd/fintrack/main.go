// cmd/fintrack/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/google/subcommands"

	app "fintrack/internal"
	"fintrack/internal/cli"
	"fintrack/internal/config"
)

var (
	configPath = flag.String("config", "", "Path to a YAML config file (defaults to $CONFIG_PATH, then ./config.yaml)")
	verbose    = flag.Bool("v", false, "Log at the configured level instead of warnings only")
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cli.Register(commander)
	flag.Parse()

	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.LoadConfigFrom(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(subcommands.ExitFailure))
	}
	if !*verbose {
		cfg.Log.Level = "warn"
		cfg.Log.Format = "text"
	}

	ctx := context.Background()
	application := app.NewApplication(app.WithConfig(cfg), app.WithLogOutput(os.Stderr))
	if err := application.Initialize(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(subcommands.ExitFailure))
	}

	status := commander.Execute(ctx, application)
	if err := application.Shutdown(ctx); err != nil && status == subcommands.ExitSuccess {
		status = subcommands.ExitFailure
	}
	os.Exit(int(status))
}
