package cmd

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/pkg/errors"
	"github.com/pseudomuto/schemadelta/pkg/config"
	"github.com/pseudomuto/schemadelta/pkg/schemadiff"
	"github.com/urfave/cli/v3"
)

// diffCmd creates the command printing the difference tree of schema pairs.
//
// Arguments come in pairs of original and target locations, each a DDL file or a directory
// of DDL files. Pairs are compared concurrently and printed in the order given.
//
// Flags:
//   - --ignore, -i: property names to leave out, on top of diff.ignore in the config
//   - --color: colour the output by state
//   - --summary, -s: append per-kind change counts
//   - --reverse, -r: show the changes that turn target back into original
//
// Examples:
//
//	schemadelta diff current.sql next.sql
//	schemadelta diff --ignore remarks --summary schema/v1 schema/v2
//	schemadelta diff a/current.sql a/next.sql b/current.sql b/next.sql
func diffCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "Print the differences between schemas",
		ArgsUsage: "<original> <target> [<original> <target>...]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "ignore",
				Aliases: []string{"i"},
				Usage:   "Property names to ignore",
			},
			&cli.BoolFlag{
				Name:  "color",
				Usage: "Colour the output",
			},
			&cli.BoolFlag{
				Name:    "summary",
				Aliases: []string{"s"},
				Usage:   "Append a summary of the changes",
			},
			&cli.BoolFlag{
				Name:    "reverse",
				Aliases: []string{"r"},
				Usage:   "Swap original and target",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			pairs, err := schemaPairs(cmd.Args().Slice())
			if err != nil {
				return err
			}

			run := *cfg
			run.Diff.Ignore = append(slices.Clone(cfg.Diff.Ignore), cmd.StringSlice("ignore")...)
			if cmd.IsSet("color") {
				run.Format.Color = cmd.Bool("color")
			}

			results, err := schemadiff.CompareAll(ctx, pairs, &run)
			if err != nil {
				return err
			}

			return writeDiffs(cmd.Writer, &run, results, cmd.Bool("reverse"), cmd.Bool("summary"))
		},
	}
}

func writeDiffs(w io.Writer, cfg *config.Config, results []*schemadiff.Result, reverse, summary bool) error {
	formatter := cfg.GetFormatter()

	for i, result := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if reverse {
			result = result.Reverse()
		}
		if len(results) > 1 {
			fmt.Fprintf(w, "--- %s\n+++ %s\n", result.Original, result.Target)
		}

		root := result.Root
		if !root.State().Changed() {
			fmt.Fprintln(w, "no changes")
			continue
		}

		if err := formatter.Format(w, root); err != nil {
			return errors.Wrap(err, "failed to write diff")
		}
		fmt.Fprintln(w)

		if summary {
			fmt.Fprintf(w, "\n%s\n", schemadiff.Summarize(root))
		}
	}

	return nil
}

func schemaPairs(args []string) ([]schemadiff.Pair, error) {
	if len(args) == 0 || len(args)%2 != 0 {
		return nil, errors.New("expected pairs of <original> <target> paths")
	}

	pairs := make([]schemadiff.Pair, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		pairs = append(pairs, schemadiff.Pair{Original: args[i], Target: args[i+1]})
	}
	return pairs, nil
}
