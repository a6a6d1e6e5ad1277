package sequence

import (
	"time"

	"engagement-scheduler/internal/domain/subject"
)

type ID string

type StageID string

// ExitCondition is a predicate over a subject that, once true, permanently
// disqualifies a stage (or a whole sequence, when used as the global exit).
type ExitCondition func(subject.Subject) bool

// FlagSet builds an exit condition from a materialized subject flag.
func FlagSet(name string) ExitCondition {
	return func(s subject.Subject) bool {
		return s.Flag(name)
	}
}

// Always is the exit condition of a soft-deprecated stage: it never fires
// again but keeps its position in the catalogue.
func Always() ExitCondition {
	return func(subject.Subject) bool {
		return true
	}
}

// Stage is one time-delayed step within a sequence.
type Stage struct {
	ID         StageID
	Delay      time.Duration // eligible once now - referenceAt >= Delay
	Exit       ExitCondition // nil means the stage has no own exit condition
	ContentRef string
	Deprecated bool
}

func (s Stage) exitSatisfied(subj subject.Subject) bool {
	return s.Exit != nil && s.Exit(subj)
}
