package tracker

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/vitalog/vita/internal/domain"
)

// Normalize validates an incoming event against the ingestion boundary and
// fills in the fields domain screens leave blank: the event ID and, for mood
// entries, the level-as-category used for distinct-level tracking.
// A rejected event leaves all state untouched.
func Normalize(e domain.ActivityEvent, now time.Time, skew time.Duration) (domain.ActivityEvent, error) {
	if err := e.Validate(now, skew); err != nil {
		return domain.ActivityEvent{}, err
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Domain == domain.Mood && e.Category == "" {
		e.Category = strconv.Itoa(int(e.Value))
	}
	return e, nil
}
