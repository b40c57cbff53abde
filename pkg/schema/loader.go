package schema

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/schemadelta/pkg/consts"
	"github.com/pseudomuto/schemadelta/pkg/model"
	"github.com/pseudomuto/schemadelta/pkg/parser"
	"golang.org/x/sync/errgroup"
)

// LoadFile compiles the DDL file at path, including any files it names, and builds a catalog
// named after the file.
//
// Example:
//
//	catalog, err := schema.LoadFile("db/main.sql")
//	if err != nil {
//		return err
//	}
func LoadFile(path string) (*model.Catalog, error) {
	sql, err := parseFile(path)
	if err != nil {
		return nil, err
	}

	catalog, err := Build(catalogName(path), sql)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build schema from %s", path)
	}
	return catalog, nil
}

// LoadDir parses every .sql file directly under dir and builds a single catalog named after
// the directory. Files are parsed concurrently, at most consts.DefaultConcurrency at a time,
// and applied in lexical order of their names.
func LoadDir(ctx context.Context, dir string) (*model.Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read directory %s", dir)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), consts.SchemaFileExt) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	sqls := make([]*parser.SQL, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(consts.DefaultConcurrency)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			sql, err := parseFile(path)
			if err != nil {
				return err
			}
			sqls[i] = sql
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	catalog, err := Build(catalogName(dir), sqls...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build schema from %s", dir)
	}
	return catalog, nil
}

// Load builds a catalog from path, which may name a file or a directory.
func Load(ctx context.Context, path string) (*model.Catalog, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to stat %s", path)
	}

	if info.IsDir() {
		return LoadDir(ctx, path)
	}
	return LoadFile(path)
}

func parseFile(path string) (*parser.SQL, error) {
	var buf bytes.Buffer
	if err := Compile(path, &buf); err != nil {
		return nil, err
	}

	sql, err := parser.Parse(&buf)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}

	slog.Debug("Parsed schema file", "path", path, "statements", len(sql.Statements))
	return sql, nil
}

func catalogName(path string) string {
	base := filepath.Base(filepath.Clean(path))
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return consts.DefaultCatalog
	}
	return name
}
