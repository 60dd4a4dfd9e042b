// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldDuration   = "duration"
	FieldBytes      = "bytes"

	// Configuration fields.
	FieldConfig          = "config"
	FieldLanguageVersion = "language_version"
	FieldDesignTime      = "design_time"
	FieldJobs            = "jobs"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesWithIssues = "files_with_issues"
	FieldDiagnostics     = "diagnostics"
	FieldKind            = "kind"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Rule fields.
	FieldRule     = "rule"
	FieldSeverity = "severity"
)
