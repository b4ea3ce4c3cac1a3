package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	WorkoutsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWorkoutsRecorded,
			Help: HelpTextWorkoutsRecorded,
		},
		[]string{LabelExercise},
	)

	RepsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRepsRecorded,
			Help: HelpTextRepsRecorded,
		},
		[]string{LabelExercise},
	)

	XPGranted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameXPGranted,
			Help: HelpTextXPGranted,
		},
	)

	LevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLevelUps,
			Help: HelpTextLevelUps,
		},
	)

	QuestsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameQuestsCompleted,
			Help: HelpTextQuestsCompleted,
		},
		[]string{LabelQuestKey},
	)

	AchievementsUnlocked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAchievementsUnlocked,
			Help: HelpTextAchievementsUnlocked,
		},
	)

	DuelsResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDuelsResolved,
			Help: HelpTextDuelsResolved,
		},
		[]string{LabelOutcome},
	)

	RaidDamageDealt = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRaidDamageDealt,
			Help: HelpTextRaidDamageDealt,
		},
	)

	RaidBossesDefeated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRaidBossesDefeated,
			Help: HelpTextRaidBossesDefeated,
		},
	)

	TerritoryBattles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTerritoryBattles,
			Help: HelpTextTerritoryBattles,
		},
		[]string{LabelOutcome},
	)
)
