// Package tracker implements the Vita progress-tracking core: metric
// aggregation over activity events, the achievement catalog, the rule
// evaluator, and the service that ties them to persistence.
package tracker

import (
	"time"

	"github.com/vitalog/vita/internal/domain"
)

// Goals holds the per-domain daily thresholds that make a day count toward
// a streak.
type Goals struct {
	WaterML          float64
	SleepHours       float64
	WorkoutSessions  int
	MoodLevel        float64
	NutritionEntries int
}

// DefaultGoals returns the stock daily goals: 2 liters of water, 8 hours of
// sleep, one workout, mood 4+/5, one logged meal.
func DefaultGoals() Goals {
	return Goals{
		WaterML:          2000,
		SleepHours:       8,
		WorkoutSessions:  1,
		MoodLevel:        4,
		NutritionEntries: 1,
	}
}

// dayAgg accumulates one domain's events for one calendar day.
type dayAgg struct {
	sum   float64
	count int
	max   float64
}

// MetricStore turns raw activity events into the derived figures the rule
// evaluator consumes: lifetime totals, per-day sums, streaks, and distinct
// category counts. It is not safe for concurrent use; the tracker service
// serializes access.
type MetricStore struct {
	goals    Goals
	loc      *time.Location
	days     map[domain.ActivityDomain]map[string]*dayAgg
	totals   map[domain.ActivityDomain]float64
	counts   map[domain.ActivityDomain]int
	distinct map[domain.ActivityDomain]map[string]struct{}
	peaks    map[domain.ActivityDomain]float64
}

// NewMetricStore creates an empty metric store. Calendar days are resolved
// in loc; pass time.Local for the user's device day boundaries.
func NewMetricStore(goals Goals, loc *time.Location) *MetricStore {
	if loc == nil {
		loc = time.Local
	}
	return &MetricStore{
		goals:    goals,
		loc:      loc,
		days:     make(map[domain.ActivityDomain]map[string]*dayAgg),
		totals:   make(map[domain.ActivityDomain]float64),
		counts:   make(map[domain.ActivityDomain]int),
		distinct: make(map[domain.ActivityDomain]map[string]struct{}),
		peaks:    make(map[domain.ActivityDomain]float64),
	}
}

// Record folds one event into the aggregates. Events may arrive out of
// order; per-day sums stay correct because each event lands on its own
// calendar day, and streaks are recomputed from scratch on every snapshot.
func (m *MetricStore) Record(e domain.ActivityEvent) {
	byDay := m.days[e.Domain]
	if byDay == nil {
		byDay = make(map[string]*dayAgg)
		m.days[e.Domain] = byDay
	}
	day := e.Day(m.loc)
	agg := byDay[day]
	if agg == nil {
		agg = &dayAgg{}
		byDay[day] = agg
	}
	agg.sum += e.Value
	agg.count++
	if e.Value > agg.max {
		agg.max = e.Value
	}

	m.totals[e.Domain] += e.Value
	m.counts[e.Domain]++
	if e.Value > m.peaks[e.Domain] {
		m.peaks[e.Domain] = e.Value
	}

	if e.Category != "" {
		set := m.distinct[e.Domain]
		if set == nil {
			set = make(map[string]struct{})
			m.distinct[e.Domain] = set
		}
		set[e.Category] = struct{}{}
	}
}

// RunningTotal returns the lifetime sum for a domain.
func (m *MetricStore) RunningTotal(d domain.ActivityDomain) float64 {
	return m.totals[d]
}

// DailyTotal returns the sum of events on one calendar day ("2006-01-02").
func (m *MetricStore) DailyTotal(d domain.ActivityDomain, day string) float64 {
	if agg := m.days[d][day]; agg != nil {
		return agg.sum
	}
	return 0
}

// qualifies reports whether one day's aggregate meets the domain's streak
// goal.
func (m *MetricStore) qualifies(d domain.ActivityDomain, agg *dayAgg) bool {
	if agg == nil {
		return false
	}
	switch d {
	case domain.Water:
		return agg.sum >= m.goals.WaterML
	case domain.Sleep:
		return agg.sum >= m.goals.SleepHours
	case domain.Workout:
		return agg.count >= m.goals.WorkoutSessions
	case domain.Mood:
		return agg.max >= m.goals.MoodLevel
	case domain.Nutrition:
		return agg.count >= m.goals.NutritionEntries
	}
	return false
}

// Streak returns the number of consecutive qualifying days for d ending at
// the calendar day of now. Always recomputed by walking backward — an
// out-of-order event can retroactively qualify an earlier day, which an
// incremental counter would miss.
func (m *MetricStore) Streak(d domain.ActivityDomain, now time.Time) int {
	byDay := m.days[d]
	streak := 0
	for day := now.In(m.loc); ; day = day.AddDate(0, 0, -1) {
		if !m.qualifies(d, byDay[day.Format("2006-01-02")]) {
			break
		}
		streak++
	}
	return streak
}

// ActivityStreak returns the number of consecutive days, ending at the
// calendar day of now, with at least one event in any domain.
func (m *MetricStore) ActivityStreak(now time.Time) int {
	streak := 0
	for day := now.In(m.loc); ; day = day.AddDate(0, 0, -1) {
		if !m.anyActivity(day.Format("2006-01-02")) {
			break
		}
		streak++
	}
	return streak
}

func (m *MetricStore) anyActivity(day string) bool {
	for _, byDay := range m.days {
		if agg := byDay[day]; agg != nil && agg.count > 0 {
			return true
		}
	}
	return false
}

// activeDays returns the count of distinct calendar days with any event.
func (m *MetricStore) activeDays() int {
	seen := make(map[string]struct{})
	for _, byDay := range m.days {
		for day := range byDay {
			seen[day] = struct{}{}
		}
	}
	return len(seen)
}

// bestDay returns the highest daily sum ever recorded for a domain.
func (m *MetricStore) bestDay(d domain.ActivityDomain) float64 {
	best := 0.0
	for _, agg := range m.days[d] {
		if agg.sum > best {
			best = agg.sum
		}
	}
	return best
}

// Snapshot derives the full metric set as of now. Milestone metrics
// (achievements_unlocked*) are not included — the evaluator computes those
// from achievement state.
func (m *MetricStore) Snapshot(now time.Time) domain.MetricSnapshot {
	snap := make(domain.MetricSnapshot)
	today := now.In(m.loc).Format("2006-01-02")

	for _, d := range domain.Domains() {
		snap[domain.TotalKey(d)] = m.totals[d]
		snap[domain.TodayKey(d)] = m.DailyTotal(d, today)
		snap[domain.CountKey(d)] = float64(m.counts[d])
		snap[domain.StreakKey(d)] = float64(m.Streak(d, now))
		snap[domain.DistinctKey(d)] = float64(len(m.distinct[d]))
		snap[domain.BestDayKey(d)] = m.bestDay(d)
		snap[domain.PeakKey(d)] = m.peaks[d]
	}

	snap[domain.MetricActivityStreak] = float64(m.ActivityStreak(now))
	snap[domain.MetricActivityDays] = float64(m.activeDays())
	snap[domain.MetricPerfectDays] = float64(m.perfectDays())
	snap[domain.MetricWeekendWeeks] = float64(m.weekendOnlyWeeks(now))

	return snap
}

// perfectDayDomains are the goals that together make a "perfect day".
// Nutrition is deliberately excluded — logging food is tracking, not a goal.
var perfectDayDomains = []domain.ActivityDomain{
	domain.Water, domain.Sleep, domain.Workout, domain.Mood,
}

// perfectDays counts calendar days on which every perfect-day goal was met.
func (m *MetricStore) perfectDays() int {
	days := make(map[string]struct{})
	for _, d := range perfectDayDomains {
		for day := range m.days[d] {
			days[day] = struct{}{}
		}
	}
	n := 0
	for day := range days {
		perfect := true
		for _, d := range perfectDayDomains {
			if !m.qualifies(d, m.days[d][day]) {
				perfect = false
				break
			}
		}
		if perfect {
			n++
		}
	}
	return n
}

// weekendOnlyWeeks counts consecutive weeks, walking backward from the week
// containing now, in which at least one workout happened and every workout
// fell on a Saturday or Sunday. A weekday workout, or a week with no workout
// at all, ends the run.
func (m *MetricStore) weekendOnlyWeeks(now time.Time) int {
	byDay := m.days[domain.Workout]
	weeks := 0
	day := now.In(m.loc)
	for start := day.AddDate(0, 0, -mondayOffset(day.Weekday())); ; start = start.AddDate(0, 0, -7) {
		hasWeekend, hasWeekday := false, false
		for i := 0; i < 7; i++ {
			d := start.AddDate(0, 0, i)
			agg := byDay[d.Format("2006-01-02")]
			if agg == nil || agg.count == 0 {
				continue
			}
			if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
				hasWeekend = true
			} else {
				hasWeekday = true
			}
		}
		if !hasWeekend || hasWeekday {
			break
		}
		weeks++
	}
	return weeks
}

// mondayOffset returns the number of days since the most recent Monday.
func mondayOffset(wd time.Weekday) int {
	if wd == time.Sunday {
		return 6
	}
	return int(wd) - 1
}
