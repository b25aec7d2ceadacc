package constants

const (
	DefaultBatchSize   = 1000
	DefaultThreadCount = 3

	DefaultDelimiter      = ","
	DefaultQuoteCharacter = `"`
	DefaultSourceKey      = "message"

	// Synthesized column names are "column1", "column2", ... keyed off the
	// 1-based absolute position of the value in the parsed row.
	AutoColumnPrefix = "column"

	EventID        = "_event_id"
	EventTimestamp = "_event_timestamp"

	ConfigFolder = "CONFIG_FOLDER"
	LogLevel     = "LOG_LEVEL"
)

type ProcessorType string

const (
	CSVProcessor ProcessorType = "csv"
)
