package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"storefront/config"
	logs "storefront/internal/infra/log"
	"storefront/internal/infra/persistence/migration"
	"storefront/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Supported subcommands:
// - up:      apply every pending migration
// - down:    roll back every migration
// - steps:   apply (n > 0) or roll back (n < 0) n migrations
// - force:   set the version without running it, clearing a dirty state
// - version: print the applied version

type command struct {
	name    string
	steps   int
	version int
}

func main() {
	cmd, err := parseCommand(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		printUsage()
		os.Exit(1)
	}

	fx.New(
		fx.Provide(
			config.New,
			logs.New,
			postgres.New,
			migration.New,
		),
		fx.Supply(cmd),
		fx.Invoke(run),
		fx.NopLogger,
	).Run()
}

func parseCommand(args []string) (command, error) {
	if len(args) < 1 {
		return command{}, errors.New("missing subcommand")
	}

	cmd := command{name: args[0]}
	switch cmd.name {
	case "up", "down", "version":
		return cmd, nil
	case "steps":
		fs := flag.NewFlagSet("steps", flag.ContinueOnError)
		n := fs.Int("n", 0, "Number of migrations, negative to roll back")
		if err := fs.Parse(args[1:]); err != nil {
			return command{}, errors.Wrap(err, "failed to parse steps flags")
		}
		if *n == 0 {
			return command{}, errors.New("steps requires a non-zero -n")
		}
		cmd.steps = *n

		return cmd, nil
	case "force":
		fs := flag.NewFlagSet("force", flag.ContinueOnError)
		v := fs.Int("version", -1, "Version to record as applied")
		if err := fs.Parse(args[1:]); err != nil {
			return command{}, errors.Wrap(err, "failed to parse force flags")
		}
		if *v < 0 {
			return command{}, errors.New("force requires -version")
		}
		cmd.version = *v

		return cmd, nil
	default:
		return command{}, errors.Errorf("unknown subcommand %q", cmd.name)
	}
}

type runParams struct {
	fx.In

	Lc         fx.Lifecycle
	Shutdowner fx.Shutdowner
	Migrator   *migration.Migrator
	Logger     *slog.Logger
	Command    command
}

// run executes the subcommand once the database is reachable, then stops the app.
func run(params runParams) {
	params.Lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			code := 0
			if err := execute(params.Migrator, params.Command); err != nil {
				params.Logger.Error("Migration failed", slog.String("command", params.Command.name), slog.Any("error", err))
				code = 1
			}

			return params.Shutdowner.Shutdown(fx.ExitCode(code))
		},
		OnStop: func(context.Context) error {
			return params.Migrator.Close()
		},
	})
}

func execute(m *migration.Migrator, cmd command) error {
	switch cmd.name {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "steps":
		return m.Steps(cmd.steps)
	case "force":
		return m.Force(cmd.version)
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		fmt.Printf("version=%d dirty=%t\n", version, dirty)

		return nil
	default:
		return errors.Errorf("unknown subcommand %q", cmd.name)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: migrate <up|down|steps -n N|force -version V|version>")
}
