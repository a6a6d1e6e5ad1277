package sequence

import (
	"sort"
	"time"

	"engagement-scheduler/internal/domain/subject"
	"engagement-scheduler/internal/pkg/errs"
)

var (
	ErrNoStages        = errs.New("sequence must declare at least one stage")
	ErrDuplicateStage  = errs.New("duplicate stage id")
	ErrNegativeDelay   = errs.New("stage delay must not be negative")
	ErrUnorderedStages = errs.New("stage delays must be declared in ascending order")
	ErrEmptySequenceID = errs.New("sequence id must not be empty")
	ErrEmptyStageID    = errs.New("stage id must not be empty")
	ErrUnknownStage    = errs.New("unknown stage")
	ErrEmptyContentRef = errs.New("stage content ref must not be empty")
	ErrInvalidVersion  = errs.New("sequence version must be positive")
	ErrNilExitOnGlobal = errs.New("global exit condition must not be nil")
)

// Definition is an immutable, ordered catalogue entry for one notification
// campaign. Stages are declared in ascending delay order (append-only).
type Definition struct {
	id         ID
	version    int
	globalExit ExitCondition
	stages     []Stage
	// scanOrder holds stage indexes in evaluation order: delay descending,
	// declaration order within equal delays (first declared wins a tie).
	scanOrder []int
}

func NewDefinition(id ID, version int, globalExit ExitCondition, stages []Stage) (*Definition, error) {
	if id == "" {
		return nil, ErrEmptySequenceID
	}
	if version <= 0 {
		return nil, ErrInvalidVersion
	}
	if globalExit == nil {
		return nil, ErrNilExitOnGlobal
	}
	if len(stages) == 0 {
		return nil, ErrNoStages
	}

	seen := make(map[StageID]struct{}, len(stages))
	for i, st := range stages {
		if st.ID == "" {
			return nil, ErrEmptyStageID
		}
		if st.ContentRef == "" {
			return nil, ErrEmptyContentRef
		}
		if st.Delay < 0 {
			return nil, ErrNegativeDelay
		}
		if _, dup := seen[st.ID]; dup {
			return nil, ErrDuplicateStage
		}
		seen[st.ID] = struct{}{}
		if i > 0 && st.Delay < stages[i-1].Delay {
			return nil, ErrUnorderedStages
		}
	}

	d := &Definition{
		id:         id,
		version:    version,
		globalExit: globalExit,
		stages:     append([]Stage(nil), stages...),
	}
	d.scanOrder = buildScanOrder(d.stages)
	return d, nil
}

func buildScanOrder(stages []Stage) []int {
	order := make([]int, len(stages))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		if stages[order[a]].Delay != stages[order[b]].Delay {
			return stages[order[a]].Delay > stages[order[b]].Delay
		}
		return order[a] < order[b]
	})
	return order
}

func (d *Definition) ID() ID {
	return d.id
}

func (d *Definition) Version() int {
	return d.version
}

// Stages returns the stages in declaration (delay ascending) order.
func (d *Definition) Stages() []Stage {
	return append([]Stage(nil), d.stages...)
}

func (d *Definition) Stage(id StageID) (Stage, bool) {
	for _, st := range d.stages {
		if st.ID == id {
			return st, true
		}
	}
	return Stage{}, false
}

// TerminalStage is the most advanced stage; its marker means the subject has
// completed the sequence.
func (d *Definition) TerminalStage() Stage {
	return d.stages[d.scanOrder[0]]
}

// MinDelay and MaxDelay bound the sequence's horizon: nothing is eligible
// before MinDelay, and the terminal stage becomes due at MaxDelay.
func (d *Definition) MinDelay() time.Duration {
	return d.stages[0].Delay
}

func (d *Definition) MaxDelay() time.Duration {
	return d.stages[len(d.stages)-1].Delay
}

func (d *Definition) globalExitSatisfied(subj subject.Subject) bool {
	return d.globalExit(subj)
}

// withDeprecatedStage returns a copy whose named stage can never fire again.
// The copy keeps the stage's position so markers recorded under the old
// definition stay meaningful.
func (d *Definition) withDeprecatedStage(stageID StageID) (*Definition, error) {
	idx := -1
	for i, st := range d.stages {
		if st.ID == stageID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrUnknownStage
	}

	stages := append([]Stage(nil), d.stages...)
	stages[idx].Exit = Always()
	stages[idx].Deprecated = true

	cp := &Definition{
		id:         d.id,
		version:    d.version + 1,
		globalExit: d.globalExit,
		stages:     stages,
	}
	cp.scanOrder = buildScanOrder(cp.stages)
	return cp, nil
}
