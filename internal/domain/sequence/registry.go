package sequence

import (
	"sync"

	"engagement-scheduler/internal/pkg/errs"
)

// Registry is the static, versioned catalogue of sequence definitions.
// Definitions are immutable; Deprecate swaps in a copy so in-flight runs keep
// a consistent view.
type Registry struct {
	mu    sync.RWMutex
	defs  map[ID]*Definition
	order []ID
}

func NewRegistry() *Registry {
	return &Registry{
		defs: make(map[ID]*Definition),
	}
}

func (r *Registry) Register(def *Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[def.ID()]; exists {
		return errs.ErrDuplicateSequence
	}
	r.defs[def.ID()] = def
	r.order = append(r.order, def.ID())
	return nil
}

func (r *Registry) Get(id ID) (*Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.defs[id]
	if !ok {
		return nil, errs.ErrSequenceNotFound
	}
	return def, nil
}

// List returns definitions in registration order.
func (r *Registry) List() []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Definition, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.defs[id])
	}
	return out
}

// Deprecate soft-deprecates a stage by forcing its exit condition to
// always-true. Removing or renumbering stages is unsafe while subjects hold
// markers for them, so this is the only supported retirement path.
func (r *Registry) Deprecate(id ID, stageID StageID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	def, ok := r.defs[id]
	if !ok {
		return errs.ErrSequenceNotFound
	}
	next, err := def.withDeprecatedStage(stageID)
	if err != nil {
		return errs.Mark(err, errs.ErrStageNotFound)
	}
	r.defs[id] = next
	return nil
}
