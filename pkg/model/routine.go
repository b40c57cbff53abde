package model

import (
	"github.com/pseudomuto/schemadelta/pkg/compare"
)

// RoutineType distinguishes functions from procedures.
type RoutineType string

const (
	Function  RoutineType = "FUNCTION"
	Procedure RoutineType = "PROCEDURE"
)

type (
	// Routine is a stored function or procedure. Source holds the routine body as written.
	Routine struct {
		node
		Naming
		Documented
		SpecificName string
		Type         RoutineType
		Parameters   *List[*Parameter]
		ReturnType   string
		Language     string
		Source       []byte
		Specifics    map[string]string
	}

	// Parameter is a routine parameter. Its ordinal is its 1-based position.
	Parameter struct {
		node
		Naming
		Ordinal  int
		Mode     string
		DataType string
	}

	// Sequence is a number generator.
	Sequence struct {
		node
		Naming
		Documented
		Increment    int64
		MinimumValue int64
		MaximumValue int64
		StartValue   int64
		Cycle        bool
		LastValue    int64
	}

	// View is a named query.
	View struct {
		node
		Naming
		Documented
		Definition  string
		CheckOption string
	}
)

// NewRoutine creates a routine without parameters.
func NewRoutine(name string, typ RoutineType) *Routine {
	r := &Routine{Naming: Naming{Name: name}, SpecificName: name, Type: typ}
	r.Parameters = NewList[*Parameter](r, true)
	return r
}

func (r *Routine) Kind() Kind { return KindRoutine }

func (r *Routine) Properties() []compare.Property {
	return []compare.Property{
		compare.P("schemaName", schemaNameOf(r)),
		compare.P("specificName", r.SpecificName),
		compare.P("name", r.Name),
		compare.P("routineType", string(r.Type)),
		compare.P("parameters", r.Parameters),
		compare.P("returnType", r.ReturnType),
		compare.P("language", r.Language),
		compare.P("source", r.Source),
		compare.P("remarks", r.Remarks),
		compare.P("specifics", r.Specifics),
	}
}

// TextProperties lists the byte-valued properties holding source text.
func (r *Routine) TextProperties() []string {
	return []string{"source"}
}

func (p *Parameter) Kind() Kind       { return KindParameter }
func (p *Parameter) setOrdinal(i int) { p.Ordinal = i }

func (p *Parameter) Properties() []compare.Property {
	return []compare.Property{
		compare.P("name", p.Name),
		compare.P("ordinal", p.Ordinal),
		compare.P("mode", p.Mode),
		compare.P("dataType", p.DataType),
	}
}

func (s *Sequence) Kind() Kind { return KindSequence }

func (s *Sequence) Properties() []compare.Property {
	return []compare.Property{
		compare.P("schemaName", schemaNameOf(s)),
		compare.P("name", s.Name),
		compare.P("increment", s.Increment),
		compare.P("minimumValue", s.MinimumValue),
		compare.P("maximumValue", s.MaximumValue),
		compare.P("startValue", s.StartValue),
		compare.P("cycle", s.Cycle),
		compare.P("lastValue", s.LastValue),
		compare.P("remarks", s.Remarks),
	}
}

func (v *View) Kind() Kind { return KindView }

func (v *View) Properties() []compare.Property {
	return []compare.Property{
		compare.P("schemaName", schemaNameOf(v)),
		compare.P("name", v.Name),
		compare.P("definition", v.Definition),
		compare.P("checkOption", v.CheckOption),
		compare.P("remarks", v.Remarks),
	}
}
