package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestsTotal,
			Help:      HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestDuration,
			Help:      HelpTextHTTPRequestDuration,
			Buckets:   HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestsInFlight,
			Help:      HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameEventsPublished,
			Help:      HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameEventHandlerErrors,
			Help:      HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)

	EventsDeadLettered = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameEventsDeadLettered,
			Help:      HelpTextEventsDeadLettered,
		},
	)
)

// Progression Metrics
var (
	XPGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameXPGranted,
			Help:      HelpTextXPGranted,
		},
		[]string{LabelSource},
	)

	LevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameLevelUps,
			Help:      HelpTextLevelUps,
		},
	)

	LevelsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameLevelsCompleted,
			Help:      HelpTextLevelsCompleted,
		},
		[]string{LabelSubject},
	)

	StarsEarned = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameStarsEarned,
			Help:      HelpTextStarsEarned,
		},
	)

	StreakTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameStreakTransitions,
			Help:      HelpTextStreakTransitions,
		},
		[]string{LabelType},
	)

	ShieldsConsumed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameShieldsConsumed,
			Help:      HelpTextShieldsConsumed,
		},
	)

	AchievementsUnlocked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameAchievementsUnlocked,
			Help:      HelpTextAchievementsUnlocked,
		},
		[]string{LabelAchievement},
	)

	Purchases = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNamePurchases,
			Help:      HelpTextPurchases,
		},
		[]string{LabelKind, LabelStatus},
	)

	CurrencySpent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameCurrencySpent,
			Help:      HelpTextCurrencySpent,
		},
		[]string{LabelCurrency},
	)

	VIPExtensions = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameVIPExtensions,
			Help:      HelpTextVIPExtensions,
		},
	)

	ConsumablesUsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameConsumablesUsed,
			Help:      HelpTextConsumablesUsed,
		},
		[]string{LabelKind},
	)
)

// Store Metrics
var (
	StateLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameStateLoads,
			Help:      HelpTextStateLoads,
		},
		[]string{LabelBackend, LabelResult},
	)

	StatePersists = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameStatePersists,
			Help:      HelpTextStatePersists,
		},
		[]string{LabelBackend, LabelResult},
	)

	PersistDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricNamePersistDuration,
			Help:      HelpTextPersistDuration,
			Buckets:   PersistLatencyBuckets,
		},
		[]string{LabelBackend},
	)
)
