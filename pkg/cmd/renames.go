package cmd

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/pseudomuto/schemadelta/pkg/schema"
	"github.com/pseudomuto/schemadelta/pkg/schemadiff"
	"github.com/urfave/cli/v3"
)

// renamesCmd creates the command listing objects that were renamed without other changes.
// Schemas are matched first, then tables, views, sequences and routines within schemas
// present on both sides.
func renamesCmd() *cli.Command {
	return &cli.Command{
		Name:      "renames",
		Usage:     "List renamed objects",
		ArgsUsage: "<original> <target>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return errors.New("exactly two path arguments are required")
			}

			original, err := schema.Load(ctx, cmd.Args().Get(0))
			if err != nil {
				return errors.Wrap(err, "failed to load original schema")
			}

			target, err := schema.Load(ctx, cmd.Args().Get(1))
			if err != nil {
				return errors.Wrap(err, "failed to load target schema")
			}

			renames := schemadiff.DetectRenames(original, target)
			if len(renames) == 0 {
				fmt.Fprintln(cmd.Writer, "no renames")
				return nil
			}

			for _, r := range renames {
				fmt.Fprintln(cmd.Writer, r)
			}
			return nil
		},
	}
}
