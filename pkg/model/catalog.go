package model

import (
	"github.com/pseudomuto/schemadelta/pkg/compare"
)

type (
	// Catalog is the root of a schema graph.
	Catalog struct {
		node
		Naming
		Schemas   *List[*Schema]
		Specifics map[string]string
	}

	// Schema is a namespace of tables, views, sequences and routines.
	Schema struct {
		node
		Naming
		Documented
		Tables    *List[*Table]
		Views     *List[*View]
		Sequences *List[*Sequence]
		Routines  *List[*Routine]
		Specifics map[string]string
	}
)

// NewCatalog creates an empty catalog.
func NewCatalog(name string) *Catalog {
	c := &Catalog{Naming: Naming{Name: name}}
	c.Schemas = NewList[*Schema](c, false)
	return c
}

func (c *Catalog) Kind() Kind { return KindCatalog }

func (c *Catalog) Properties() []compare.Property {
	return []compare.Property{
		compare.P("name", c.Name),
		compare.P("schemas", c.Schemas),
		compare.P("specifics", c.Specifics),
	}
}

// Schema returns the named schema, creating and adding it when missing.
func (c *Catalog) Schema(name string) *Schema {
	if s, ok := c.Schemas.Find(name); ok {
		return s
	}

	s := NewSchema(name)
	c.Schemas.Add(s)
	return s
}

// NewSchema creates an empty schema.
func NewSchema(name string) *Schema {
	s := &Schema{Naming: Naming{Name: name}}
	s.Tables = NewList[*Table](s, false)
	s.Views = NewList[*View](s, false)
	s.Sequences = NewList[*Sequence](s, false)
	s.Routines = NewList[*Routine](s, false)
	return s
}

func (s *Schema) Kind() Kind { return KindSchema }

func (s *Schema) Properties() []compare.Property {
	return []compare.Property{
		compare.P("name", s.Name),
		compare.P("tables", s.Tables),
		compare.P("views", s.Views),
		compare.P("sequences", s.Sequences),
		compare.P("routines", s.Routines),
		compare.P("remarks", s.Remarks),
		compare.P("specifics", s.Specifics),
	}
}
