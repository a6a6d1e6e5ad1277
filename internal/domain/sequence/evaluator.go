package sequence

import (
	"time"

	"engagement-scheduler/internal/domain/subject"
)

// MarkerSet is the set of stages already dispatched to one subject for one
// sequence, keyed by stage with the dispatch timestamp as value.
type MarkerSet map[StageID]time.Time

func (m MarkerSet) Has(id StageID) bool {
	_, ok := m[id]
	return ok
}

// SelectStage picks the single stage to fire for a subject this pass, or
// reports none. The scan runs most-advanced first and stops at the first due
// stage: that stage is the only candidate of the pass. A long-dormant subject
// therefore gets only the latest due message, and stages it aged past are
// permanently skipped without ever receiving markers.
//
// The sole candidate still does not fire when a dispatch marker already
// exists for it, or when its own exit condition is satisfied (the stage is
// moot; it never fires and is never recorded). The sequence's global exit
// condition short-circuits the whole scan.
func SelectStage(subj subject.Subject, def *Definition, markers MarkerSet, now time.Time) (Stage, bool) {
	if def.globalExitSatisfied(subj) {
		return Stage{}, false
	}

	age := subj.Age(now)
	for _, i := range def.scanOrder {
		st := def.stages[i]
		if age < st.Delay {
			// Not yet due; an earlier stage may be.
			continue
		}
		if markers.Has(st.ID) {
			return Stage{}, false
		}
		if st.exitSatisfied(subj) {
			return Stage{}, false
		}
		return st, true
	}
	return Stage{}, false
}
