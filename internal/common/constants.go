package common

const (
	// Conversion constants
	DefaultTargetWidth  = 800
	DefaultTargetHeight = 600
	DefaultJPEGQuality  = 85
	DefaultArchiveName  = "converted_files.zip"
	MaxConcurrencyLimit = 8

	// File operation constants
	DefaultFilePermissions = 0755

	// Event names
	EventEntriesChanged = "entries:changed"
	EventBatchStarted   = "batch:started"
	EventBatchFinished  = "batch:finished"
	EventStatsUpdate    = "stats:update"
)
