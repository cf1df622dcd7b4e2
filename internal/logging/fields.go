package logging

// Field names for structured logging.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Pipeline fields.
	FieldLanguage    = "language"
	FieldRefactoring = "refactoring"
	FieldRegion      = "region"
	FieldRegions     = "regions"
	FieldDecls       = "decls"
	FieldEdits       = "edits"
	FieldDropped     = "dropped"
	FieldDiagnostics = "diagnostics"
	FieldChanged     = "changed"
	FieldWrite       = "write"
	FieldDryRun      = "dry_run"
	FieldBackup      = "backup"
	FieldFlavor      = "flavor"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
