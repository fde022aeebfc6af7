package logger

// Shared log field name constants, to keep field naming consistent
// across the project for log querying and analysis.
const (
	// FieldTraceID request trace ID
	FieldTraceID = "traceId"

	// FieldNoteID note ID
	FieldNoteID = "noteId"

	// FieldInterval repeat interval name
	FieldInterval = "interval"

	// FieldFireAt alarm target instant
	FieldFireAt = "fireAt"

	// FieldNextFireAt next computed occurrence
	FieldNextFireAt = "nextFireAt"

	// FieldDuration elapsed time
	FieldDuration = "duration"

	// FieldMethod method name
	FieldMethod = "method"

	// FieldError error message
	FieldError = "error"

	// FieldCount generic item count
	FieldCount = "count"
)
