package bootstrap

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files (read/write for owner, read for group/others)
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionLimit is the maximum number of log files to keep
	LogFileRetentionLimit = 10

	// LogFileRetentionCount is the number of log files to retain after cleanup
	LogFileRetentionCount = 9
)

// Log level string constants
const (
	LogLevelDebug = "DEBUG"
	LogLevelInfo  = "INFO"
	LogLevelWarn  = "WARN"
	LogLevelError = "ERROR"
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingIronQuest   = "Starting IronQuest"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file %s: %v\n"
)

// =============================================================================
// Startup Backfill Configuration
// =============================================================================

const (
	// BackfillWorkerCount is the number of workers draining the startup
	// milestone backfill queue.
	BackfillWorkerCount = 4

	// BackfillQueueSize bounds the backfill job queue.
	BackfillQueueSize = 256
)

// Log messages for the startup milestone backfill
const (
	LogMsgMilestoneBackfillStarted  = "Milestone quest backfill started"
	LogMsgMilestoneBackfillFinished = "Milestone quest backfill finished"
	ErrMsgFailedListUsers           = "failed to list users for milestone backfill"
)

// =============================================================================
// Event Handler Configuration
// =============================================================================

// Log messages for event handler registration
const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgActivityRecorderSubscribed = "Activity recorder subscribed"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
	ErrMsgFailedSubscribeActivity    = "failed to subscribe activity recorder"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"

	// Worker names for shutdown logging
	WorkerNameDailyReset  = "daily reset"
	WorkerNameWeeklyReset = "weekly reset"
)

// Shutdown log message format (worker name will be prepended)
const (
	LogMsgWorkerShutdownFailed = " worker shutdown failed"
)
