package schema

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/schemadelta/pkg/consts"
)

// ErrIncludeCycle is returned when a DDL file includes itself, directly or through other files.
var ErrIncludeCycle = errors.New("include cycle")

// Compile writes the DDL file at path to w, replacing every include directive (a line of the
// form "-- schemadelta:include <path>") with the contents of the named file. Include paths are
// resolved relative to the directory of the file that names them and may nest.
//
// Example:
//
//	-- db/main.sql
//	CREATE SCHEMA app;
//	-- schemadelta:include tables/users.sql
//	-- schemadelta:include tables/orders.sql
//
//	var buf bytes.Buffer
//	if err := schema.Compile("db/main.sql", &buf); err != nil {
//		log.Fatal(err)
//	}
//
//	sql, err := parser.Parse(&buf)
func Compile(path string, w io.Writer) error {
	return compile(path, w, nil)
}

func compile(path string, w io.Writer, stack []string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve path %s", path)
	}
	for _, seen := range stack {
		if seen == abs {
			return errors.Wrapf(ErrIncludeCycle, "%s -> %s", strings.Join(stack, " -> "), abs)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read file %s", path)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if target, ok := includeTarget(line); ok {
			if !filepath.IsAbs(target) {
				target = filepath.Join(filepath.Dir(path), target)
			}

			if err := compile(target, w, append(stack, abs)); err != nil {
				return err
			}
			continue
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return errors.Wrap(err, "failed to write compiled schema")
		}
	}

	return errors.Wrapf(scanner.Err(), "failed scanning %s", path)
}

func includeTarget(line string) (string, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), consts.IncludeDirective)
	if !ok {
		return "", false
	}

	target := strings.TrimSpace(rest)
	return target, target != ""
}
