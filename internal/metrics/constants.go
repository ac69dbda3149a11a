package metrics

// ============================================================================
// Metric Names
// ============================================================================

// Namespace prefixes every metric exported by the engine
const Namespace = "zephyr"

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
	MetricNameEventsDeadLettered = "events_dead_lettered_total"
)

// Progression metric names
const (
	MetricNameXPGranted            = "xp_granted_total"
	MetricNameLevelUps             = "level_ups_total"
	MetricNameLevelsCompleted      = "levels_completed_total"
	MetricNameStarsEarned          = "stars_earned_total"
	MetricNameStreakTransitions    = "streak_transitions_total"
	MetricNameShieldsConsumed      = "streak_shields_consumed_total"
	MetricNameAchievementsUnlocked = "achievements_unlocked_total"
	MetricNamePurchases            = "purchases_total"
	MetricNameCurrencySpent        = "currency_spent_total"
	MetricNameVIPExtensions        = "vip_extensions_total"
	MetricNameConsumablesUsed      = "consumables_used_total"
)

// Store metric names
const (
	MetricNameStateLoads      = "state_loads_total"
	MetricNameStatePersists   = "state_persists_total"
	MetricNamePersistDuration = "state_persist_duration_seconds"
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
	HelpTextEventsDeadLettered = "Total number of events written to the dead-letter file"
)

// Progression metric help text
const (
	HelpTextXPGranted            = "Total XP granted to students"
	HelpTextLevelUps             = "Total number of student level ups"
	HelpTextLevelsCompleted      = "Total number of curriculum levels completed"
	HelpTextStarsEarned          = "Total stars earned by students"
	HelpTextStreakTransitions    = "Total number of streak transitions by kind"
	HelpTextShieldsConsumed      = "Total number of streak shields consumed"
	HelpTextAchievementsUnlocked = "Total number of achievements unlocked"
	HelpTextPurchases            = "Total number of shop requests by kind"
	HelpTextCurrencySpent        = "Total currency spent in the shop"
	HelpTextVIPExtensions        = "Total number of VIP extensions"
	HelpTextConsumablesUsed      = "Total number of consumable charges used"
)

// Store metric help text
const (
	HelpTextStateLoads      = "Total number of progression state loads by result"
	HelpTextStatePersists   = "Total number of progression state writes by result"
	HelpTextPersistDuration = "Latency of progression state writes in seconds"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod      = "method"
	LabelPath        = "path"
	LabelStatus      = "status"
	LabelType        = "type"
	LabelSource      = "source"
	LabelSubject     = "subject"
	LabelAchievement = "achievement"
	LabelKind        = "kind"
	LabelCurrency    = "currency"
	LabelResult      = "result"
	LabelBackend     = "backend"
)

// Store load results
const (
	LoadResultCache    = "cache"
	LoadResultStore    = "store"
	LoadResultMissing  = "missing"
	LoadResultFallback = "fallback"
)

// Store write results
const (
	PersistResultOK       = "ok"
	PersistResultStale    = "stale"
	PersistResultFailed   = "failed"
	PersistResultDeferred = "deferred"
)

// UnmatchedRoute labels requests that matched no chi route
const UnmatchedRoute = "unmatched"

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// PersistLatencyBuckets covers store round trips from 0.5ms to 5s
var PersistLatencyBuckets = []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 5}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadUnreadable = "Event payload could not be decoded"
	LogMsgMetricsRecorded        = "Metrics recorded for event"
)
