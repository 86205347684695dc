package config

// Application constants shared across the gradex tools.
const (
	// Application Info
	AppName = "gradex"

	// File Paths (relative to executable)
	DefaultDataDir      = "data"
	DefaultInputDir     = "data/input"
	DefaultExtractedDir = "data/extracted"
	DefaultNotFoundDir  = "data/not-found"
	DefaultLogsDir      = "logs"
	DefaultTermsFile    = "terms.csv"

	// Output directory names created under the chosen output root.
	ExtractedDirName = "extracted"
	NotFoundDirName  = "not-found"

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultLogOutput = "console"
	DefaultLogFile   = "logs/gradex.log"

	// Extraction Settings
	DefaultWorkers = 1
	MaxWorkers     = 64
)
