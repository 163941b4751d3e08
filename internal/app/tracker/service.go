package tracker

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/vitalog/vita/internal/domain"
	"github.com/vitalog/vita/internal/infra/metrics"
)

// StateGateway loads and saves achievement state. Implemented by the
// persistence gateway in internal/infra/store.
type StateGateway interface {
	Load(ctx context.Context) (domain.AchievementState, error)
	Save(ctx context.Context, state domain.AchievementState) error
}

// EventLog is the durable activity history. Ingested events are appended so
// a later process can rebuild the metric store — lifetime totals, streaks and
// distinct counts must survive restarts, not just unlock flags.
type EventLog interface {
	AppendEvent(ctx context.Context, e domain.ActivityEvent) error
	Events(ctx context.Context) ([]domain.ActivityEvent, error)
}

// Achievement is one catalog entry joined with its unlock status — the shape
// the CLI and HTTP API render.
type Achievement struct {
	domain.AchievementDefinition
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

// Service owns the achievement state and runs the ingest→evaluate→persist
// sequence. A single mutex serializes the whole sequence: two near-
// simultaneous activity logs must not race and silently drop an unlock, and
// saves issued under the lock can never overwrite newer state with stale
// data.
type Service struct {
	mu      sync.Mutex
	store   *MetricStore
	catalog []domain.AchievementDefinition
	state   domain.AchievementState
	gateway StateGateway
	events  EventLog
	skew    time.Duration
}

// NewService creates a tracker service around an injected state gateway and
// event log. Call Init before first use to hydrate persisted state and
// replay the activity history.
func NewService(gw StateGateway, events EventLog, goals Goals, loc *time.Location, skew time.Duration) *Service {
	return &Service{
		store:   NewMetricStore(goals, loc),
		catalog: Catalog(),
		state:   domain.SeedState(Catalog()),
		gateway: gw,
		events:  events,
		skew:    skew,
	}
}

// Init hydrates achievement state from the gateway and rebuilds the metric
// store from the event log. Replay keeps lifetime totals, streaks and
// distinct counts correct across restarts. The gateway handles first-run
// seeding and corrupt-blob recovery, so a bad state blob never fails Init;
// an unreadable event history does, since evaluating against empty metrics
// would silently misreport every lifetime achievement.
func (s *Service) Init(ctx context.Context) error {
	state, err := s.gateway.Load(ctx)
	if err != nil {
		return fmt.Errorf("load achievement state: %w", err)
	}
	history, err := s.events.Events(ctx)
	if err != nil {
		return fmt.Errorf("replay activity history: %w", err)
	}
	s.mu.Lock()
	s.state = state
	for _, e := range history {
		s.store.Record(e)
	}
	s.mu.Unlock()
	metrics.AchievementsUnlockedCurrent.Set(float64(state.UnlockedCount()))
	return nil
}

// LogActivity is the combined "log activity" operation: normalize and ingest
// the event, re-evaluate the catalog against the updated metrics, persist the
// new state, and return the achievements unlocked by this call for UI
// notification.
//
// An invalid event is rejected synchronously and leaves all state unchanged.
// A save failure degrades durability, not correctness: it is logged, the
// in-memory state remains authoritative, and unlocks are still returned.
func (s *Service) LogActivity(ctx context.Context, e domain.ActivityEvent) ([]domain.AchievementDefinition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	norm, err := Normalize(e, now, s.skew)
	if err != nil {
		metrics.EventsRejected.WithLabelValues(string(e.Domain)).Inc()
		return nil, err
	}
	e = norm
	s.store.Record(e)
	metrics.EventsIngested.WithLabelValues(string(e.Domain)).Inc()
	if err := s.events.AppendEvent(ctx, e); err != nil {
		log.Printf("tracker: append activity event: %v (event held in memory only)", err)
	}

	start := time.Now()
	snap := s.store.Snapshot(now)
	newState, unlocked := Evaluate(snap, s.catalog, s.state, now)
	metrics.EvaluationDuration.Observe(time.Since(start).Seconds())

	s.state = newState
	for _, def := range unlocked {
		metrics.AchievementsUnlocked.WithLabelValues(string(def.Rarity)).Inc()
	}
	metrics.AchievementsUnlockedCurrent.Set(float64(newState.UnlockedCount()))

	if err := s.gateway.Save(ctx, newState); err != nil {
		metrics.StateSaves.WithLabelValues("error").Inc()
		log.Printf("tracker: save achievement state: %v (in-memory state remains authoritative)", err)
	} else {
		metrics.StateSaves.WithLabelValues("ok").Inc()
	}

	return unlocked, nil
}

// Reset clears every achievement back to locked and persists the cleared
// state. It holds the same lock as LogActivity, so a concurrent evaluation
// can never observe a partially-reset state.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = domain.SeedState(s.catalog)
	metrics.AchievementsUnlockedCurrent.Set(0)
	if err := s.gateway.Save(ctx, s.state); err != nil {
		metrics.StateSaves.WithLabelValues("error").Inc()
		return fmt.Errorf("persist reset state: %w", err)
	}
	metrics.StateSaves.WithLabelValues("ok").Inc()
	return nil
}

// List returns every achievement with its unlock status, in catalog order.
func (s *Service) List() []Achievement {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Achievement, 0, len(s.catalog))
	for _, def := range s.catalog {
		st := s.state[def.ID]
		a := Achievement{AchievementDefinition: def, Unlocked: st.Unlocked}
		if st.UnlockedAt != nil {
			t := *st.UnlockedAt
			a.UnlockedAt = &t
		}
		out = append(out, a)
	}
	return out
}

// Snapshot returns the current derived metrics.
func (s *Service) Snapshot() domain.MetricSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Snapshot(time.Now())
}

// Progress returns (unlocked, total) achievement counts.
func (s *Service) Progress() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.UnlockedCount(), len(s.catalog)
}

// ProgressFor reports a definition's current metric value against its
// threshold. ok is false for unknown IDs.
func (s *Service) ProgressFor(id string) (current, threshold float64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, def := range s.catalog {
		if def.ID != id {
			continue
		}
		if def.Milestone() {
			return milestoneValue(def, s.catalog, s.state), def.Threshold, true
		}
		snap := s.store.Snapshot(time.Now())
		return snap[def.MetricKey], def.Threshold, true
	}
	return 0, 0, false
}
