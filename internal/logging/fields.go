package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID identifies a single export invocation.
	FieldRunID = "run_id"
	// FieldLanguage is the FLEURS language config being processed.
	FieldLanguage = "language"
	// FieldEventType names the event a log line records (e.g. "sample_exported").
	FieldEventType = "event_type"
	// FieldErrorHint carries the suggested next step for warnings and errors.
	FieldErrorHint = "error_hint"
	// FieldImpact is the user-facing consequence of a warning.
	FieldImpact = "impact"
)
