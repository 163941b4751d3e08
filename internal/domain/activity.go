// Package domain holds the pure types of the Vita health tracker.
// Domain types carry no infrastructure dependency — they are shared by the
// tracker core, the persistence gateway, the HTTP API, and the CLI.
package domain

import (
	"fmt"
	"time"
)

// ActivityDomain is one tracked health dimension.
type ActivityDomain string

const (
	Water     ActivityDomain = "water"
	Sleep     ActivityDomain = "sleep"
	Workout   ActivityDomain = "workout"
	Mood      ActivityDomain = "mood"
	Nutrition ActivityDomain = "nutrition"
)

// Domains lists every tracked domain in canonical order.
func Domains() []ActivityDomain {
	return []ActivityDomain{Water, Sleep, Workout, Mood, Nutrition}
}

// Valid reports whether d names a known domain.
func (d ActivityDomain) Valid() bool {
	switch d {
	case Water, Sleep, Workout, Mood, Nutrition:
		return true
	}
	return false
}

// Unit returns the measurement unit for the domain's Value field.
func (d ActivityDomain) Unit() string {
	switch d {
	case Water:
		return "ml"
	case Sleep:
		return "hours"
	case Workout:
		return "minutes"
	case Mood:
		return "level"
	case Nutrition:
		return "kcal"
	}
	return ""
}

// ActivityEvent is an immutable fact: the user logged one action.
// Value semantics are domain-specific (ml of water, hours of sleep, minutes
// of workout, mood level 1–5, kcal of food). Category carries the secondary
// dimension where one exists: workout type, food name, mood level as text.
type ActivityEvent struct {
	ID         string         `json:"id"`
	Domain     ActivityDomain `json:"domain"`
	Value      float64        `json:"value"`
	Category   string         `json:"category,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Validate checks the event against the ingestion boundary rules.
// now is the ingestion time; skew is the allowed clock tolerance for events
// stamped slightly in the future (default 0).
func (e ActivityEvent) Validate(now time.Time, skew time.Duration) error {
	if !e.Domain.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownDomain, e.Domain)
	}
	if e.OccurredAt.IsZero() {
		return fmt.Errorf("%w: missing timestamp", ErrInvalidEvent)
	}
	if e.OccurredAt.After(now.Add(skew)) {
		return fmt.Errorf("%w: event at %s is after %s", ErrFutureEvent,
			e.OccurredAt.Format(time.RFC3339), now.Format(time.RFC3339))
	}
	if e.Value <= 0 {
		return fmt.Errorf("%w: value %v must be positive", ErrInvalidEvent, e.Value)
	}
	if e.Domain == Mood && (e.Value < 1 || e.Value > 5) {
		return fmt.Errorf("%w: mood level %v outside 1-5", ErrInvalidEvent, e.Value)
	}
	return nil
}

// Day returns the calendar day of the event in the given location.
func (e ActivityEvent) Day(loc *time.Location) string {
	return e.OccurredAt.In(loc).Format("2006-01-02")
}
