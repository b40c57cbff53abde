package config

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/schemadelta/pkg/consts"
	"github.com/pseudomuto/schemadelta/pkg/diff"
	"github.com/pseudomuto/schemadelta/pkg/format"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a configuration decodes but holds unusable values.
var ErrInvalidConfig = errors.New("invalid config")

type (
	// Diff controls how difference trees are built and pruned.
	Diff struct {
		// Ignore lists property names removed from every tree before it is rendered, for
		// example createdAt or lastAlteredAt.
		Ignore []string `yaml:"ignore,omitempty"`

		// ColumnAlignment enables name-first alignment for order-significant collections
		// such as table columns. Defaults to true.
		ColumnAlignment *bool `yaml:"column_alignment,omitempty"`

		// Concurrency bounds the number of graph pairs compared at once.
		Concurrency int `yaml:"concurrency,omitempty"`
	}

	// Format controls how difference trees are rendered.
	Format struct {
		// Indent is the number of spaces per nesting level. Defaults to 2.
		Indent int `yaml:"indent,omitempty"`

		// Color enables ANSI colours.
		Color bool `yaml:"color,omitempty"`

		// ShowUnchanged renders unchanged nodes too.
		ShowUnchanged bool `yaml:"show_unchanged,omitempty"`

		// States limits rendering to nodes in these states (Added, Deleted, Modified).
		States []string `yaml:"states,omitempty"`
	}

	// Config is the schemadelta configuration.
	Config struct {
		Diff   Diff   `yaml:"diff"`
		Format Format `yaml:"format"`
	}
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig parses a configuration from the provided io.Reader.
//
// Unset values are filled with defaults after decoding, and the result is validated.
//
// Example:
//
//	cfg, err := config.LoadConfig(strings.NewReader(`
//	diff:
//	  ignore: [createdAt, lastAlteredAt]
//	format:
//	  indent: 4
//	  color: true
//	`))
//	if err != nil {
//		return err
//	}
//
//	cfg.Prune(root)
//	err = cfg.GetFormatter().Format(os.Stdout, root)
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadConfigFile loads and parses a configuration from a file.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}

// DiffOptions returns the diff engine options described by the configuration. Column
// alignment is on unless explicitly disabled.
func (c *Config) DiffOptions() []diff.Option {
	aligned := c.Diff.ColumnAlignment == nil || *c.Diff.ColumnAlignment
	return []diff.Option{diff.WithColumnAlignment(aligned)}
}

// Prune removes the ignored properties, matched case-insensitively, from the tree rooted
// at n. Pruning also drops unchanged subtrees. Collection elements are keyed by object name
// and never match.
func (c *Config) Prune(n diff.Node) {
	if len(c.Diff.Ignore) == 0 || n == nil {
		return
	}

	n.RemoveRecursive(func(key string, child diff.Node) bool {
		if _, ok := child.Parent().(*diff.ObjectDiff); !ok {
			return false
		}
		for _, name := range c.Diff.Ignore {
			if strings.EqualFold(name, key) {
				return true
			}
		}
		return false
	})
}

// GetFormatter returns a formatter configured from the format section.
func (c *Config) GetFormatter() *format.Formatter {
	opts := format.FormatterOptions{
		IndentSize:    c.Format.Indent,
		Color:         c.Format.Color,
		ShowUnchanged: c.Format.ShowUnchanged,
	}
	for _, s := range c.Format.States {
		if state, ok := parseState(s); ok {
			opts.States = append(opts.States, state)
		}
	}

	return format.New(opts)
}

func (c *Config) applyDefaults() {
	if c.Diff.ColumnAlignment == nil {
		enabled := true
		c.Diff.ColumnAlignment = &enabled
	}
	if c.Diff.Concurrency == 0 {
		c.Diff.Concurrency = consts.DefaultConcurrency
	}
	if c.Format.Indent == 0 {
		c.Format.Indent = format.Defaults.IndentSize
	}
}

func (c *Config) validate() error {
	if c.Format.Indent < 0 {
		return errors.Wrapf(ErrInvalidConfig, "format.indent must not be negative, got %d", c.Format.Indent)
	}
	if c.Diff.Concurrency < 0 {
		return errors.Wrapf(ErrInvalidConfig, "diff.concurrency must not be negative, got %d", c.Diff.Concurrency)
	}
	for _, s := range c.Format.States {
		if _, ok := parseState(s); !ok {
			return errors.Wrapf(ErrInvalidConfig, "unknown state %q in format.states", s)
		}
	}
	return nil
}

func parseState(s string) (diff.State, bool) {
	for _, state := range []diff.State{diff.Unchanged, diff.Added, diff.Deleted, diff.Modified} {
		if strings.EqualFold(state.String(), s) {
			return state, true
		}
	}
	return diff.Unchanged, false
}
