package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameWorkoutsRecorded     = "workouts_recorded_total"
	MetricNameRepsRecorded         = "reps_recorded_total"
	MetricNameXPGranted            = "xp_granted_total"
	MetricNameLevelUps             = "level_ups_total"
	MetricNameQuestsCompleted      = "quests_completed_total"
	MetricNameAchievementsUnlocked = "achievements_unlocked_total"
	MetricNameDuelsResolved        = "duels_resolved_total"
	MetricNameRaidDamageDealt      = "raid_damage_dealt_total"
	MetricNameRaidBossesDefeated   = "raid_bosses_defeated_total"
	MetricNameTerritoryBattles     = "territory_battles_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextWorkoutsRecorded     = "Total number of workouts recorded"
	HelpTextRepsRecorded         = "Total repetitions recorded across all workouts"
	HelpTextXPGranted            = "Total experience points granted"
	HelpTextLevelUps             = "Total number of level ups"
	HelpTextQuestsCompleted      = "Total number of quests completed"
	HelpTextAchievementsUnlocked = "Total number of achievements unlocked"
	HelpTextDuelsResolved        = "Total number of duels resolved"
	HelpTextRaidDamageDealt      = "Total raid boss damage dealt"
	HelpTextRaidBossesDefeated   = "Total number of raid bosses defeated"
	HelpTextTerritoryBattles     = "Total number of territory battles fought"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelExercise = "exercise"
	LabelQuestKey = "quest_key"
	LabelOutcome  = "outcome"
)

// Outcome label values
const (
	OutcomeWon      = "won"
	OutcomeDraw     = "draw"
	OutcomeCaptured = "captured"
	OutcomeDefended = "defended"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgPayloadUndecodable = "Event payload could not be decoded"
	LogMsgMetricsRecorded    = "Metrics recorded for event"
)
