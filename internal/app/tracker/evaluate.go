package tracker

import (
	"log"
	"time"

	"github.com/vitalog/vita/internal/domain"
)

// Evaluate checks every locked definition against the metric snapshot and
// returns the new state plus the definitions unlocked by this call, in
// catalog order. The input state is never mutated — the returned state is a
// copy with all of this call's transitions applied, so a failed persist
// cannot leave a half-applied in-memory view.
//
// Non-milestone definitions are evaluated first. Milestones (whose metric is
// the unlock state of other achievements) run afterward against the
// post-first-pass state, iterated to a fixpoint so that a milestone unlocked
// late in the pass can still satisfy another milestone in the same call.
//
// A definition referencing a metric the store does not produce is skipped
// and logged; it never aborts the rest of the catalog.
func Evaluate(snap domain.MetricSnapshot, catalog []domain.AchievementDefinition, state domain.AchievementState, now time.Time) (domain.AchievementState, []domain.AchievementDefinition) {
	next := state.Clone()
	var unlocked []domain.AchievementDefinition

	// Pass 1: independent predicates.
	for _, def := range catalog {
		if def.Milestone() || next[def.ID].Unlocked {
			continue
		}
		value, ok := snap[def.MetricKey]
		if !ok {
			log.Printf("tracker: skipping %q: %v (%s)", def.ID, domain.ErrUnknownMetric, def.MetricKey)
			continue
		}
		if value >= def.Threshold {
			unlocked = append(unlocked, unlock(next, def, now))
		}
	}

	// Pass 2: milestones, to a fixpoint. Each milestone's metric counts the
	// OTHER definitions' unlocks — otherwise "unlock everything" could never
	// reach 100% since the milestone itself would always be missing.
	for changed := true; changed; {
		changed = false
		for _, def := range catalog {
			if !def.Milestone() || next[def.ID].Unlocked {
				continue
			}
			if milestoneValue(def, catalog, next) >= def.Threshold {
				unlocked = append(unlocked, unlock(next, def, now))
				changed = true
			}
		}
	}

	return next, unlocked
}

func unlock(state domain.AchievementState, def domain.AchievementDefinition, now time.Time) domain.AchievementDefinition {
	at := now
	state[def.ID] = domain.AchievementStatus{Unlocked: true, UnlockedAt: &at}
	return def
}

// milestoneValue resolves a milestone definition's metric from achievement
// state, excluding the definition itself from both numerator and denominator.
func milestoneValue(def domain.AchievementDefinition, catalog []domain.AchievementDefinition, state domain.AchievementState) float64 {
	count := 0
	for id, st := range state {
		if st.Unlocked && id != def.ID {
			count++
		}
	}
	switch def.MetricKey {
	case domain.MetricUnlockedCount:
		return float64(count)
	case domain.MetricUnlockedPct:
		others := len(catalog) - 1
		if others <= 0 {
			return 0
		}
		return float64(count) / float64(others) * 100
	}
	return 0
}
