package diff_test

import (
	"github.com/pseudomuto/schemadelta/pkg/compare"
	"github.com/pseudomuto/schemadelta/pkg/diff"
	"github.com/pseudomuto/schemadelta/pkg/model"
)

func col(name, dataType string) *model.Column {
	return &model.Column{Naming: model.Naming{Name: name}, DataType: dataType}
}

func table(name string, cols ...*model.Column) *model.Table {
	t := model.NewTable(name)
	t.Columns.Add(cols...)
	return t
}

func withPrimaryKey(t *model.Table, cols ...string) *model.Table {
	t.Constraints.Add(&model.Constraint{
		Naming:  model.Naming{Name: t.Name + "_pkey"},
		Type:    model.PrimaryKey,
		Columns: cols,
	})
	return t
}

func sequence(name string, lastValue int64) *model.Sequence {
	return &model.Sequence{Naming: model.Naming{Name: name}, Increment: 1, StartValue: 1, LastValue: lastValue}
}

// columnsOf builds an ordered column list from name:type pairs.
func columnsOf(pairs ...string) *model.List[*model.Column] {
	t := model.NewTable("t")
	for i := 0; i+1 < len(pairs); i += 2 {
		t.Columns.Add(col(pairs[i], pairs[i+1]))
	}
	return t.Columns
}

// tally counts the element diffs of a collection by outcome.
func tally(d *diff.CollectionDiff) (added, deleted, paired int) {
	for _, child := range d.Elements() {
		switch {
		case child.Original() == nil:
			added++
		case child.Target() == nil:
			deleted++
		default:
			paired++
		}
	}
	return added, deleted, paired
}

// gadget exercises value shapes the schema model does not use.
type gadget struct {
	name    string
	numbers []int
}

func (g *gadget) ObjectName() string { return g.name }

func (g *gadget) Properties() []compare.Property {
	return []compare.Property{
		compare.P("name", g.name),
		compare.P("numbers", g.numbers),
	}
}
