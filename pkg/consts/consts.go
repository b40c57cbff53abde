package consts

import "os"

const (
	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)

	// DefaultCatalog names the catalog built from DDL files when none is given
	DefaultCatalog = "default"

	// DefaultSchema receives every object whose name is not schema-qualified
	DefaultSchema = "public"

	// DefaultConcurrency bounds the number of files parsed or graphs diffed at once
	DefaultConcurrency = 4

	// SchemaFileExt is the extension of the DDL files picked up when loading a directory
	SchemaFileExt = ".sql"

	// IncludeDirective pulls another DDL file into the current one at load time
	IncludeDirective = "-- schemadelta:include"
)
