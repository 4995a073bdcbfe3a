package commands

// CLI-specific constants
const (
	// DefaultEditorCommand is the default editor command
	DefaultEditorCommand = "vi"
	// TimestampFormat is used when listing history
	TimestampFormat = "2006-01-02 15:04:05"
)

// Error messages
const (
	ErrHistoryStoreUnavailable = "history is disabled in the configuration"
	ErrKeyRequired             = "an API key is required"
)

// Success messages
const (
	MsgNoDifferencesFromDefault = "No differences from the default request configuration."
	MsgNoHistoryRecorded        = "No history recorded yet."
	MsgAllCommandsBound         = "All enabled commands have a shortcut."
)
