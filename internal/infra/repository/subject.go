package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"engagement-scheduler/internal/domain/sequence"
	"engagement-scheduler/internal/domain/subject"
	"engagement-scheduler/internal/infra"
	"engagement-scheduler/internal/infra/db"
	"engagement-scheduler/internal/pkg/clock"
	"engagement-scheduler/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const listCandidatesSQL = `
SELECT s.id, s.reference_at, s.exit_flags
FROM subjects s
WHERE s.is_active
  AND NOT s.is_test
  AND s.kind = 'student'
  AND s.reference_at <= $1
  AND s.reference_at >= $2
  AND NOT EXISTS (
        SELECT 1 FROM dispatch_markers m
        WHERE m.subject_id = s.id
          AND m.sequence_id = $3
          AND m.stage_id = $4
  )
ORDER BY s.reference_at, s.id
LIMIT $5`

const listMarkersForPageSQL = `
SELECT subject_id, stage_id, dispatched_at
FROM dispatch_markers
WHERE sequence_id = $1
  AND subject_id = ANY($2)`

const findSubjectEmailSQL = `
SELECT email FROM subjects WHERE id = $1`

// SubjectReadStore is the read-only candidate query surface. Subjects are
// owned by the upstream platform; the scheduler only reads them.
type SubjectReadStore struct {
	db    db.DBTX
	clock clock.Clock
}

func NewSubjectReadStore(db db.DBTX, clk clock.Clock) *SubjectReadStore {
	return &SubjectReadStore{
		db:    db,
		clock: clk,
	}
}

// ListCandidates returns a bounded page of subjects inside the sequence
// horizon, ordered by reference timestamp for deterministic runs. Subjects
// holding the terminal stage marker have completed the sequence and are
// filtered out in SQL; every finer-grained decision stays with the evaluator.
func (s *SubjectReadStore) ListCandidates(ctx context.Context, q commands.CandidateQuery) ([]commands.Candidate, error) {
	now := s.clock.Now()
	newestAdmissible := now.Add(-q.MinReferenceAge)
	oldestAdmissible := now.Add(-q.MaxReferenceAge)

	rows, err := s.db.Query(ctx, listCandidatesSQL,
		newestAdmissible, oldestAdmissible, string(q.SequenceID), string(q.TerminalStageID), q.PageSize)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list candidate subjects", err)
	}
	defer rows.Close()

	var candidates []commands.Candidate
	ids := make([]uuid.UUID, 0, q.PageSize)
	for rows.Next() {
		var (
			id          uuid.UUID
			referenceAt time.Time
			rawFlags    []byte
		)
		if err := rows.Scan(&id, &referenceAt, &rawFlags); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan candidate subject", err)
		}
		flags := map[string]bool{}
		if len(rawFlags) > 0 {
			if err := json.Unmarshal(rawFlags, &flags); err != nil {
				return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to decode exit flags", err)
			}
		}
		candidates = append(candidates, commands.Candidate{
			Subject: subject.Subject{
				ID:          id,
				ReferenceAt: referenceAt,
				Flags:       flags,
			},
			Markers: sequence.MarkerSet{},
		})
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read candidate subjects", err)
	}
	if len(candidates) == 0 {
		return candidates, nil
	}

	if err := s.hydrateMarkers(ctx, q.SequenceID, ids, candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

func (s *SubjectReadStore) hydrateMarkers(ctx context.Context, sequenceID sequence.ID, ids []uuid.UUID, candidates []commands.Candidate) error {
	rows, err := s.db.Query(ctx, listMarkersForPageSQL, string(sequenceID), ids)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to list dispatch markers", err)
	}
	defer rows.Close()

	bySubject := make(map[uuid.UUID]sequence.MarkerSet, len(ids))
	for i := range candidates {
		bySubject[candidates[i].Subject.ID] = candidates[i].Markers
	}

	for rows.Next() {
		var (
			subjectID    uuid.UUID
			stageID      string
			dispatchedAt time.Time
		)
		if err := rows.Scan(&subjectID, &stageID, &dispatchedAt); err != nil {
			return infra.WrapRepoErr(infra.KindDBFailure, "failed to scan dispatch marker", err)
		}
		if set, ok := bySubject[subjectID]; ok {
			set[sequence.StageID(stageID)] = dispatchedAt
		}
	}
	if err := rows.Err(); err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to read dispatch markers", err)
	}
	return nil
}

// EmailFor resolves a subject's delivery address for the notifier.
func (s *SubjectReadStore) EmailFor(ctx context.Context, subjectID uuid.UUID) (string, error) {
	var email string
	err := s.db.QueryRow(ctx, findSubjectEmailSQL, subjectID).Scan(&email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", infra.WrapRepoErr(infra.KindNotFound, "subject not found", err)
		}
		return "", infra.WrapRepoErr(infra.KindDBFailure, "failed to find subject email", err)
	}
	return email, nil
}
