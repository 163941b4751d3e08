package domain

// SeedState builds the initial all-locked state for a catalog: one record
// per definition, unlocked=false.
func SeedState(catalog []AchievementDefinition) AchievementState {
	state := make(AchievementState, len(catalog))
	for _, def := range catalog {
		state[def.ID] = AchievementStatus{}
	}
	return state
}

// MergeStates overlays stored unlock records onto a seeded state.
// The merge is additive: every seed ID is present in the result, stored
// records for known IDs win, and stored records for IDs no longer in the
// catalog are dropped. A user's unlock is never lost across catalog bumps.
func MergeStates(seed, stored AchievementState) AchievementState {
	merged := seed.Clone()
	for id, st := range stored {
		if _, known := merged[id]; !known {
			continue
		}
		if st.UnlockedAt != nil {
			t := *st.UnlockedAt
			st.UnlockedAt = &t
		}
		merged[id] = st
	}
	return merged
}
