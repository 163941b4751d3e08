// Package store persists achievement state as an opaque JSON blob behind a
// string key-value interface. The gateway owns first-run seeding, additive
// merging across catalog versions, and best-effort recovery of corrupt blobs.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/vitalog/vita/internal/domain"
)

// KV is the injected persistence store: one asynchronous string key-value
// surface. Implementations must guarantee that a Get issued after a
// successful Set in the same process observes the written value.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// StateKey is the single fixed key the achievement blob lives under.
const StateKey = "achievements_state"

// Gateway serializes AchievementState to one KV entry.
type Gateway struct {
	kv      KV
	catalog []domain.AchievementDefinition
}

// NewGateway creates a gateway bound to a KV store and the catalog used for
// seeding and merging.
func NewGateway(kv KV, catalog []domain.AchievementDefinition) *Gateway {
	return &Gateway{kv: kv, catalog: catalog}
}

// persistedStatus is the wire form of one achievement record. Timestamps
// cross the boundary as RFC 3339 strings — never as native time values.
type persistedStatus struct {
	Unlocked   bool    `json:"unlocked"`
	UnlockedAt *string `json:"unlockedAt"`
}

// Load returns the achievement state: seeded on first run, merged additively
// with the stored blob otherwise. Storage and parse failures never become
// hard errors — the caller always gets a usable state. Whatever unlock flags
// survive in a corrupt blob are preserved.
func (g *Gateway) Load(ctx context.Context) (domain.AchievementState, error) {
	seed := domain.SeedState(g.catalog)

	raw, ok, err := g.kv.Get(ctx, StateKey)
	if err != nil {
		log.Printf("store: %v: %v (falling back to seeded state)", domain.ErrStorageRead, err)
		return seed, nil
	}
	if !ok {
		// First run: persist the seed so later loads see a blob.
		if err := g.Save(ctx, seed); err != nil {
			log.Printf("store: seed first-run state: %v", err)
		}
		return seed, nil
	}

	stored := decodeState(raw)
	return domain.MergeStates(seed, stored), nil
}

// Save writes the state blob. Synchronous: once Save returns nil, a Load in
// the same process observes this state.
func (g *Gateway) Save(ctx context.Context, state domain.AchievementState) error {
	blob := make(map[string]persistedStatus, len(state))
	for id, st := range state {
		p := persistedStatus{Unlocked: st.Unlocked}
		if st.UnlockedAt != nil {
			s := st.UnlockedAt.Format(time.RFC3339Nano)
			p.UnlockedAt = &s
		}
		blob[id] = p
	}
	data, err := json.Marshal(blob)
	if err != nil {
		return fmt.Errorf("encode achievement state: %w", err)
	}
	if err := g.kv.Set(ctx, StateKey, string(data)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageWrite, err)
	}
	return nil
}

// decodeState parses a stored blob, recovering whatever records it can.
// A fully unparseable blob yields an empty state (the caller merges against
// the seed); a partially corrupt blob yields the records that still parse.
func decodeState(raw string) domain.AchievementState {
	state := make(domain.AchievementState)

	var blob map[string]persistedStatus
	if err := json.Unmarshal([]byte(raw), &blob); err == nil {
		for id, p := range blob {
			state[id] = toStatus(p)
		}
		return state
	}

	// Top-level parse failed. Try record-by-record recovery so one mangled
	// entry does not cost the user every unlock.
	var loose map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &loose); err != nil {
		log.Printf("store: %v: unparseable blob (%d bytes)", domain.ErrCorruptState, len(raw))
		return state
	}
	for id, msg := range loose {
		var p persistedStatus
		if err := json.Unmarshal(msg, &p); err != nil {
			log.Printf("store: %v: dropping record %q", domain.ErrCorruptState, id)
			continue
		}
		state[id] = toStatus(p)
	}
	return state
}

func toStatus(p persistedStatus) domain.AchievementStatus {
	st := domain.AchievementStatus{Unlocked: p.Unlocked}
	if p.UnlockedAt != nil {
		if t, err := time.Parse(time.RFC3339Nano, *p.UnlockedAt); err == nil {
			st.UnlockedAt = &t
		}
	}
	return st
}
