package subject

import (
	"time"

	"github.com/google/uuid"
)

// Subject is the read-only view of an enrolled user as the scheduler sees it.
// Exit-condition flags are materialized upstream; the scheduler never computes
// them itself.
type Subject struct {
	ID          uuid.UUID
	ReferenceAt time.Time // reference event for all stage delays (e.g. signup)
	Flags       map[string]bool
}

// Flag reports a materialized exit-condition flag. Unknown flags are false.
func (s Subject) Flag(name string) bool {
	return s.Flags[name]
}

// Age is the elapsed time since the subject's reference event.
func (s Subject) Age(now time.Time) time.Duration {
	return now.Sub(s.ReferenceAt)
}
