package repository

import (
	"context"
	"time"

	"engagement-scheduler/internal/domain/sequence"
	"engagement-scheduler/internal/infra"
	"engagement-scheduler/internal/infra/db"

	"github.com/google/uuid"
)

const tryRecordMarkerSQL = `
INSERT INTO dispatch_markers (subject_id, sequence_id, stage_id, dispatched_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (subject_id, sequence_id, stage_id) DO NOTHING`

// MarkerRepository persists dispatch markers. Markers are immutable: created
// exactly once per (subject, sequence, stage), never updated or deleted.
type MarkerRepository struct {
	db db.DBTX
}

func NewMarkerRepository(db db.DBTX) *MarkerRepository {
	return &MarkerRepository{
		db: db,
	}
}

// TryRecord inserts the marker if absent. The table's composite primary key
// guarantees that exactly one of any number of concurrent callers for the
// same key observes created=true; everyone else gets created=false and must
// treat the dispatch as already handled.
func (r *MarkerRepository) TryRecord(ctx context.Context, subjectID uuid.UUID, sequenceID sequence.ID, stageID sequence.StageID, at time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, tryRecordMarkerSQL, subjectID, string(sequenceID), string(stageID), at)
	if err != nil {
		return false, infra.WrapRepoErr(infra.KindDBFailure, "failed to record dispatch marker", err)
	}
	return tag.RowsAffected() == 1, nil
}
