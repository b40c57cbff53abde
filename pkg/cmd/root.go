package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/pseudomuto/schemadelta/pkg/config"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type (
	Params struct {
		fx.In

		Args       []string
		Commands   []*cli.Command `group:"commands"`
		Config     *config.Config
		Ctx        context.Context
		Lifecycle  fx.Lifecycle
		Shutdowner fx.Shutdowner
		Version    *Version
	}

	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}
)

// Run registers the schemadelta CLI application to execute once the fx application starts.
//
// The root command carries the global flags:
//   - --config, -c: configuration file, replacing the one loaded at startup (env
//     SCHEMADELTA_CONFIG)
//   - --debug: log at debug level
//
// Subcommands receive the shared *config.Config, so a file given with --config is loaded
// into it before any subcommand runs. The application shuts down with exit code 1 when a
// command fails.
//
// Example usage:
//
//	schemadelta diff current.sql next.sql
//	schemadelta --config ci.yaml diff --summary schema/v1 schema/v2
//	schemadelta renames current.sql next.sql
func Run(p Params) {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Writer, "Version:", p.Version.Version)
		fmt.Fprintln(cmd.Writer, "Commit:", p.Version.Commit)
		fmt.Fprintln(cmd.Writer, "Date:", p.Version.Timestamp)
	}

	app := root(p.Config, p.Version, p.Commands)

	p.Lifecycle.Append(fx.StartHook(func() {
		if err := app.Run(p.Ctx, p.Args); err != nil {
			slog.Error("Error running command", "err", err)
			_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
		}

		_ = p.Shutdowner.Shutdown(fx.ExitCode(0))
	}))
}

func root(cfg *config.Config, version *Version, commands []*cli.Command) *cli.Command {
	return &cli.Command{
		Name:  "schemadelta",
		Usage: "Compare relational schemas and report their differences",
		Description: `schemadelta loads two schema definitions written as DDL, builds an
object graph for each and prints a tree of the objects and properties that differ.`,
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "the schemadelta config file",
				Sources: cli.EnvVars("SCHEMADELTA_CONFIG"),
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := slog.LevelInfo
			if cmd.Bool("debug") {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

			path := cmd.String("config")
			if path == "" {
				return ctx, nil
			}

			loaded, err := config.LoadConfigFile(path)
			if err != nil {
				return ctx, errors.Wrap(err, "failed to load config")
			}

			*cfg = *loaded
			slog.Debug("Loaded config", "path", path)
			return ctx, nil
		},
		Commands: commands,
	}
}
