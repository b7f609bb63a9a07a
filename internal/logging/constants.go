package logging

// Standardized field names for structured logging across the import pipeline.
const (
	FieldSource     = "source"
	FieldRow        = "row"
	FieldImportID   = "import_id"
	FieldCategory   = "category"
	FieldConfidence = "confidence"
	FieldTier       = "tier"
	FieldReason     = "reason"
	FieldError      = "error"
	FieldCount      = "count"
	FieldFile       = "file_path"
	FieldAccountID  = "account_id"
	FieldDuration   = "duration_ms"
)
