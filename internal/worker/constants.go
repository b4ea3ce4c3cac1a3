package worker

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// ============================================================================
// Log Messages - Quest Reset Workers
// ============================================================================

// Log messages for daily reset worker operations
const (
	LogMsgDailyResetStandby   = "Daily quest reset on standby"
	LogMsgDailyResetApproach  = "Daily quest reset scheduled"
	LogMsgDailyResetStarting  = "Daily quest reset starting"
	LogMsgDailyResetCompleted = "Daily quest reset completed"
	LogMsgDailyResetFailed    = "Daily quest reset failed"
)

// Log messages for weekly reset worker operations
const (
	LogMsgWeeklyResetScheduled = "Next weekly quest reset scheduled"
	LogMsgWeeklyResetStarting  = "Weekly quest reset starting"
	LogMsgWeeklyResetCompleted = "Weekly quest reset completed"
	LogMsgWeeklyResetFailed    = "Weekly quest reset failed"
)

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
