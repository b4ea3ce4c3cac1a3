package domain

import "time"

// QuestKind controls a quest's refresh lifecycle.
type QuestKind string

const (
	QuestKindDaily     QuestKind = "daily"
	QuestKindWeekly    QuestKind = "weekly"
	QuestKindMilestone QuestKind = "milestone"
)

// QuestMetricAny matches every exercise.
const QuestMetricAny = "any"

// Quest is a per-user quest instance. Completed is monotonic: once
// true it never reverts, and claiming is a separate explicit step.
type Quest struct {
	ID     string    `json:"id"`
	UserID string    `json:"user_id"`
	Kind   QuestKind `json:"kind"`

	QuestKey     string `json:"quest_key"`
	Description  string `json:"description"`
	TargetMetric string `json:"target_metric"` // exercise name or "any"
	TargetValue  int    `json:"target_value"`

	ProgressValue int        `json:"progress_value"` // <= TargetValue
	Completed     bool       `json:"completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	Claimed       bool       `json:"claimed"`
	ClaimedAt     *time.Time `json:"claimed_at,omitempty"`

	XPReward  int       `json:"xp_reward"`
	CreatedAt time.Time `json:"created_at"`
}

// MatchesExercise reports whether a workout of the given exercise
// counts toward this quest.
func (q *Quest) MatchesExercise(e Exercise) bool {
	return q.TargetMetric == QuestMetricAny || q.TargetMetric == string(e)
}

// QuestTemplate is a pool entry that quest refreshes instantiate from.
type QuestTemplate struct {
	QuestKey     string    `json:"quest_key"`
	Kind         QuestKind `json:"kind"`
	Description  string    `json:"description"`
	TargetMetric string    `json:"target_metric"`
	TargetValue  int       `json:"target_value"`
	XPReward     int       `json:"xp_reward"`
}

// QuestPoolConfig is the on-disk quest template pool.
type QuestPoolConfig struct {
	QuestPool []QuestTemplate `json:"quest_pool"`
}
