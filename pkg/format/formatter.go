package format

import (
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/pseudomuto/schemadelta/pkg/diff"
)

// FormatterOptions controls how difference trees are rendered
type FormatterOptions struct {
	// IndentSize specifies the number of spaces for each tree level
	IndentSize int
	// Color highlights nodes by state: green for added, red for deleted, yellow for modified
	Color bool
	// ShowUnchanged renders unchanged children alongside changed ones
	ShowUnchanged bool
	// States limits output to subtrees containing nodes in these states. Empty means every
	// changed state.
	States []diff.State
}

// Defaults are the options used by the CLI when no configuration is given.
var Defaults = FormatterOptions{
	IndentSize: 2,
}

// Formatter renders difference trees with configurable options
type Formatter struct {
	options FormatterOptions
	palette map[diff.State]*color.Color
}

// New creates a new Formatter with the specified options
func New(options FormatterOptions) *Formatter {
	if options.IndentSize <= 0 {
		options.IndentSize = Defaults.IndentSize
	}

	f := &Formatter{options: options}
	if options.Color {
		f.palette = map[diff.State]*color.Color{
			diff.Added:    color.New(color.FgGreen),
			diff.Deleted:  color.New(color.FgRed),
			diff.Modified: color.New(color.FgYellow),
		}
		for _, c := range f.palette {
			c.EnableColor()
		}
	}

	return f
}

// NewDefault creates a new Formatter with default options
func NewDefault() *Formatter {
	return New(Defaults)
}

// Format renders each node to w using the given options. Trees are separated by a blank
// line.
func Format(w io.Writer, options FormatterOptions, nodes ...diff.Node) error {
	return New(options).Format(w, nodes...)
}

// Format renders each node to w. Trees are separated by a blank line.
func (f *Formatter) Format(w io.Writer, nodes ...diff.Node) error {
	for i, n := range nodes {
		if i > 0 {
			if _, err := io.WriteString(w, "\n\n"); err != nil {
				return errors.Wrap(err, "failed to write separator")
			}
		}

		if _, err := io.WriteString(w, f.Node(n)); err != nil {
			return errors.Wrap(err, "failed to write difference tree")
		}
	}

	return nil
}

// Node renders a single tree without a trailing newline. The root is always rendered.
func (f *Formatter) Node(n diff.Node) string {
	if n == nil {
		return ""
	}

	var lines []string
	f.node(&lines, n, 0)
	return strings.Join(lines, "\n")
}

func (f *Formatter) node(lines *[]string, n diff.Node, level int) {
	if s, ok := n.(*diff.ScalarDiff); ok {
		for _, line := range s.Lines() {
			*lines = append(*lines, f.indent(level)+f.paint(n.State(), line))
		}
		return
	}

	*lines = append(*lines, f.indent(level)+f.paint(n.State(), diff.Header(n)))
	for _, child := range diff.ChildrenOf(n) {
		if !f.visible(child) {
			continue
		}
		f.node(lines, child, level+1)
	}
}

// visible reports whether n, or anything below it, passes the state filter.
func (f *Formatter) visible(n diff.Node) bool {
	if f.selected(n.State()) {
		return true
	}
	if !n.State().Changed() {
		return false
	}

	for _, child := range diff.ChildrenOf(n) {
		if f.visible(child) {
			return true
		}
	}
	return false
}

func (f *Formatter) selected(s diff.State) bool {
	if !s.Changed() {
		return f.options.ShowUnchanged
	}
	if len(f.options.States) == 0 {
		return true
	}
	return slices.Contains(f.options.States, s)
}

func (f *Formatter) paint(s diff.State, text string) string {
	if c, ok := f.palette[s]; ok {
		return c.Sprint(text)
	}
	return text
}

func (f *Formatter) indent(level int) string {
	return strings.Repeat(" ", level*f.options.IndentSize)
}
