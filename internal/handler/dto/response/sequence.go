package response

import (
	"engagement-scheduler/internal/usecase/queries"
)

type StageResponse struct {
	ID         string `json:"id"`
	Delay      string `json:"delay"`
	ContentRef string `json:"content_ref"`
	Deprecated bool   `json:"deprecated"`
}

type SequenceResponse struct {
	ID      string          `json:"id"`
	Version int             `json:"version"`
	Stages  []StageResponse `json:"stages"`
}

func FromSequenceView(view *queries.SequenceView) SequenceResponse {
	stages := make([]StageResponse, len(view.Stages))
	for i, st := range view.Stages {
		stages[i] = StageResponse{
			ID:         st.ID,
			Delay:      st.Delay,
			ContentRef: st.ContentRef,
			Deprecated: st.Deprecated,
		}
	}
	return SequenceResponse{
		ID:      view.ID,
		Version: view.Version,
		Stages:  stages,
	}
}

func FromSequenceList(views []*queries.SequenceView) []SequenceResponse {
	out := make([]SequenceResponse, len(views))
	for i, v := range views {
		out[i] = FromSequenceView(v)
	}
	return out
}
