package schemadiff

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/pseudomuto/schemadelta/pkg/config"
	"github.com/pseudomuto/schemadelta/pkg/consts"
	"github.com/pseudomuto/schemadelta/pkg/diff"
	"github.com/pseudomuto/schemadelta/pkg/model"
	"github.com/pseudomuto/schemadelta/pkg/schema"
	"golang.org/x/sync/errgroup"
)

type (
	// Pair names the locations of an original and a target schema. Each may be a DDL file or a
	// directory of DDL files.
	Pair struct {
		Original string
		Target   string
	}

	// Result is the comparison of an original catalog with a target catalog.
	Result struct {
		Pair

		// Root is the difference tree of the two catalogs, pruned by the configuration.
		Root *diff.ObjectDiff

		// Renames lists objects that only changed their name.
		Renames []Rename

		original, target *model.Catalog
		cfg              *config.Config
	}

	// Rename is an object whose name changed while its content did not. Schema is empty for
	// renamed schemas.
	Rename struct {
		Schema string
		Kind   model.Kind
		From   string
		To     string
	}
)

func (r Rename) String() string {
	if r.Schema == "" {
		return fmt.Sprintf("%s %q -> %q", r.Kind, r.From, r.To)
	}
	return fmt.Sprintf("%s %q -> %q (schema %q)", r.Kind, r.From, r.To, r.Schema)
}

// Compare builds the difference tree of original and target.
//
// The catalogs' own names are not compared, since they usually reflect where each catalog was
// loaded from. Properties listed in the configuration's ignore list are pruned from the tree.
func Compare(original, target *model.Catalog, cfg *config.Config) *Result {
	if cfg == nil {
		cfg = config.Default()
	}

	root := diff.Objects(original, target, cfg.DiffOptions()...)
	if original != nil && target != nil && original.Name != target.Name {
		root.RemoveRecursive(func(key string, child diff.Node) bool {
			return key == "name" && child.Parent() == diff.Node(root)
		})
	}
	cfg.Prune(root)

	return &Result{
		Root:     root,
		Renames:  DetectRenames(original, target),
		original: original,
		target:   target,
		cfg:      cfg,
	}
}

// Reverse compares the catalogs again with original and target exchanged, applying the
// same configuration.
func (r *Result) Reverse() *Result {
	out := Compare(r.target, r.original, r.cfg)
	out.Pair = Pair{Original: r.Target, Target: r.Original}
	return out
}

// CompareAll loads and compares every pair, at most cfg.Diff.Concurrency at a time (the
// default limit when unset). Results are returned in the order of pairs. The first failure
// cancels the remaining work.
func CompareAll(ctx context.Context, pairs []Pair, cfg *config.Config) ([]*Result, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	limit := cfg.Diff.Concurrency
	if limit <= 0 {
		limit = consts.DefaultConcurrency
	}

	results := make([]*Result, len(pairs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, pair := range pairs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			original, err := schema.Load(ctx, pair.Original)
			if err != nil {
				return errors.Wrap(err, "failed to load original schema")
			}

			target, err := schema.Load(ctx, pair.Target)
			if err != nil {
				return errors.Wrap(err, "failed to load target schema")
			}

			result := Compare(original, target, cfg)
			result.Pair = pair
			results[i] = result

			slog.Debug("Compared schemas", "original", pair.Original, "target", pair.Target, "state", result.Root.State())
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// DetectRenames reports the schemas, and the tables, views, sequences and routines within
// schemas present on both sides, that were renamed without other changes.
func DetectRenames(original, target *model.Catalog) []Rename {
	if original == nil || target == nil {
		return nil
	}

	out := renames("", model.ByName(original.Schemas), model.ByName(target.Schemas))

	targetSchemas := model.ByName(target.Schemas)
	for _, o := range original.Schemas.All() {
		t, ok := targetSchemas[o.Name]
		if !ok {
			continue
		}

		out = append(out, renames(o.Name, model.ByName(o.Tables), model.ByName(t.Tables))...)
		out = append(out, renames(o.Name, model.ByName(o.Views), model.ByName(t.Views))...)
		out = append(out, renames(o.Name, model.ByName(o.Sequences), model.ByName(t.Sequences))...)
		out = append(out, renames(o.Name, model.ByName(o.Routines), model.ByName(t.Routines))...)
	}

	return out
}

func renames[T model.Object](schemaName string, current, target map[string]T) []Rename {
	pairs, _, _ := model.DetectRenames(current, target)

	out := make([]Rename, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, Rename{Schema: schemaName, Kind: p.Kind, From: p.OldName, To: p.NewName})
	}
	return out
}
