package commands

import (
	"context"
	"time"

	"engagement-scheduler/internal/domain/sequence"
	"engagement-scheduler/internal/domain/subject"

	"github.com/google/uuid"
)

// Candidate is one subject hydrated for evaluation: current state plus the
// markers already recorded for the sequence under consideration.
type Candidate struct {
	Subject subject.Subject
	Markers sequence.MarkerSet
}

// CandidateQuery bounds one page of candidates. The repository pre-filters to
// active, non-test subjects inside the horizon who have not completed the
// sequence; the evaluator remains the source of truth for eligibility.
type CandidateQuery struct {
	SequenceID      sequence.ID
	MinReferenceAge time.Duration
	MaxReferenceAge time.Duration
	TerminalStageID sequence.StageID
	PageSize        int32
}

type SubjectRepository interface {
	ListCandidates(ctx context.Context, q CandidateQuery) ([]Candidate, error)
}

// MarkerStore records dispatches. TryRecord is an atomic insert-if-absent:
// exactly one of any number of concurrent callers for the same key observes
// created=true. This uniqueness is the engine's sole synchronization point.
type MarkerStore interface {
	TryRecord(ctx context.Context, subjectID uuid.UUID, sequenceID sequence.ID, stageID sequence.StageID, at time.Time) (created bool, err error)
}

type DeliveryReceipt struct {
	MessageID string
}

// Notifier renders and sends the message for one subject and stage. Any error
// is treated uniformly as "retry next run"; transient-vs-permanent nuance
// belongs to the notifier's own retry policy.
type Notifier interface {
	Send(ctx context.Context, subjectID uuid.UUID, stageID sequence.StageID, contentRef string) (*DeliveryReceipt, error)
}
