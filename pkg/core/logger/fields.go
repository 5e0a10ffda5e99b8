package logger

// Standard field names for structured logging.
const (
	FieldRunID     = "run_id"
	FieldDocID     = "doc_id"
	FieldDate      = "date"
	FieldDocType   = "doc_type_code"
	FieldFiler     = "filer_name"
	FieldComponent = "component"

	FieldPath  = "path"
	FieldURL   = "url"
	FieldCount = "count"
	FieldError = "error"

	FieldDurationMS = "duration_ms"
	FieldStatus     = "status"
	FieldCheck      = "check"
)
