package domain

import "time"

// ─── Metric Keys ────────────────────────────────────────────────────────────

// MetricKey names one derived figure produced by the metric store.
// Achievement definitions reference metrics by key only — the evaluator has
// no per-domain special cases.
type MetricKey string

// Per-domain key constructors. The metric store publishes one of each per
// tracked domain.
func TotalKey(d ActivityDomain) MetricKey    { return MetricKey(string(d) + "_total") }
func TodayKey(d ActivityDomain) MetricKey    { return MetricKey(string(d) + "_today") }
func CountKey(d ActivityDomain) MetricKey    { return MetricKey(string(d) + "_count") }
func StreakKey(d ActivityDomain) MetricKey   { return MetricKey(string(d) + "_streak") }
func DistinctKey(d ActivityDomain) MetricKey { return MetricKey(string(d) + "_distinct") }
func BestDayKey(d ActivityDomain) MetricKey  { return MetricKey(string(d) + "_best_day") }
func PeakKey(d ActivityDomain) MetricKey     { return MetricKey(string(d) + "_peak") }

// Cross-domain and synthetic keys.
const (
	// MetricMoodPeak is the highest single mood level ever logged.
	// Identical to PeakKey(Mood); named for the catalog's readability.
	MetricMoodPeak MetricKey = "mood_peak"
	// MetricPerfectDays counts days meeting the sleep, water, workout and
	// mood goals together.
	MetricPerfectDays MetricKey = "perfect_days"
	// MetricWeekendWeeks counts consecutive weeks, ending at the current
	// week, whose workouts all fell on a Saturday or Sunday.
	MetricWeekendWeeks MetricKey = "weekend_weeks"
	// MetricActivityStreak counts consecutive days with any logged event.
	MetricActivityStreak MetricKey = "activity_streak"
	// MetricActivityDays counts distinct days with any logged event.
	MetricActivityDays MetricKey = "activity_days"

	// Milestone keys are not produced by the metric store; the evaluator
	// derives them from achievement state in a second pass.
	MetricUnlockedCount MetricKey = "achievements_unlocked"
	MetricUnlockedPct   MetricKey = "achievements_unlocked_pct"
)

// MetricSnapshot is the full set of derived figures at one point in time.
type MetricSnapshot map[MetricKey]float64

// ─── Achievement Types ──────────────────────────────────────────────────────

// AchievementCategory groups achievements by theme.
type AchievementCategory string

const (
	CatHealth     AchievementCategory = "health"
	CatFitness    AchievementCategory = "fitness"
	CatMind       AchievementCategory = "mind"
	CatDedication AchievementCategory = "dedication"
	CatSpecial    AchievementCategory = "special"
)

// Rarity ranks how hard an achievement is to earn.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Color returns the display color for a rarity tier.
func (r Rarity) Color() string {
	switch r {
	case RarityRare:
		return "#3B82F6"
	case RarityEpic:
		return "#8B5CF6"
	case RarityLegendary:
		return "#F59E0B"
	default:
		return "#6B7280"
	}
}

// AchievementDefinition is one immutable catalog entry. The only comparator
// is >=: the achievement unlocks the first time metrics[MetricKey] reaches
// Threshold. IDs are the stable cross-version key.
type AchievementDefinition struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Icon        string              `json:"icon"`
	Category    AchievementCategory `json:"category"`
	Rarity      Rarity              `json:"rarity"`
	MetricKey   MetricKey           `json:"metric_key"`
	Threshold   float64             `json:"threshold"`
}

// Milestone reports whether the definition's condition depends on other
// achievements' unlock state. Milestones are evaluated in a second pass.
func (d AchievementDefinition) Milestone() bool {
	return d.MetricKey == MetricUnlockedCount || d.MetricKey == MetricUnlockedPct
}

// AchievementStatus is the mutable per-definition record that gets persisted.
// Once Unlocked is true it never reverts except via an explicit reset.
type AchievementStatus struct {
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlockedAt"`
}

// AchievementState maps definition ID to unlock status.
type AchievementState map[string]AchievementStatus

// Clone returns a deep copy of the state.
func (s AchievementState) Clone() AchievementState {
	out := make(AchievementState, len(s))
	for id, st := range s {
		if st.UnlockedAt != nil {
			t := *st.UnlockedAt
			st.UnlockedAt = &t
		}
		out[id] = st
	}
	return out
}

// UnlockedCount returns how many achievements are unlocked.
func (s AchievementState) UnlockedCount() int {
	n := 0
	for _, st := range s {
		if st.Unlocked {
			n++
		}
	}
	return n
}
