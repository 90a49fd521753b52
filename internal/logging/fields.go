package logging

// Field names for structured log entries.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"
	FieldSource     = "source"
	FieldFormat     = "format"
	FieldJobs       = "jobs"
	FieldURI        = "uri"

	FieldFilesDiscovered = "files_discovered"
	FieldFilesChecked    = "files_checked"
	FieldFilesWithErrors = "files_with_errors"
	FieldDiagnostics     = "diagnostics"
	FieldGoldenUpdated   = "golden_updated"
	FieldBlocks          = "blocks"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
