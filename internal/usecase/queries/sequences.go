package queries

import (
	"context"

	"engagement-scheduler/internal/domain/sequence"
)

// StageView represents read-optimized stage data for the catalogue surface.
type StageView struct {
	ID         string `json:"id"`
	Delay      string `json:"delay"`
	ContentRef string `json:"content_ref"`
	Deprecated bool   `json:"deprecated"`
}

// SequenceView represents read-optimized sequence data.
type SequenceView struct {
	ID      string      `json:"id"`
	Version int         `json:"version"`
	Stages  []StageView `json:"stages"`
}

type SequenceQueries interface {
	List(ctx context.Context) ([]*SequenceView, error)
	GetByID(ctx context.Context, id sequence.ID) (*SequenceView, error)
}

type sequenceQueriesImpl struct {
	registry *sequence.Registry
}

func NewSequenceQueries(registry *sequence.Registry) SequenceQueries {
	return &sequenceQueriesImpl{
		registry: registry,
	}
}

func (q *sequenceQueriesImpl) List(_ context.Context) ([]*SequenceView, error) {
	defs := q.registry.List()
	out := make([]*SequenceView, len(defs))
	for i, def := range defs {
		out[i] = toSequenceView(def)
	}
	return out, nil
}

func (q *sequenceQueriesImpl) GetByID(_ context.Context, id sequence.ID) (*SequenceView, error) {
	def, err := q.registry.Get(id)
	if err != nil {
		return nil, err
	}
	return toSequenceView(def), nil
}

func toSequenceView(def *sequence.Definition) *SequenceView {
	stages := def.Stages()
	view := &SequenceView{
		ID:      string(def.ID()),
		Version: def.Version(),
		Stages:  make([]StageView, len(stages)),
	}
	for i, st := range stages {
		view.Stages[i] = StageView{
			ID:         string(st.ID),
			Delay:      st.Delay.String(),
			ContentRef: st.ContentRef,
			Deprecated: st.Deprecated,
		}
	}
	return view
}
