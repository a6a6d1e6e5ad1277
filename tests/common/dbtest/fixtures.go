//go:build unit || e2e

package dbtest

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// SubjectOption tweaks the default seeded subject (active, non-test student
// with empty exit flags).
type SubjectOption func(*subjectRow)

type subjectRow struct {
	kind     string
	isActive bool
	isTest   bool
	flags    map[string]bool
}

func AsKind(kind string) SubjectOption {
	return func(r *subjectRow) { r.kind = kind }
}

func Inactive() SubjectOption {
	return func(r *subjectRow) { r.isActive = false }
}

func TestAccount() SubjectOption {
	return func(r *subjectRow) { r.isTest = true }
}

func WithFlag(name string) SubjectOption {
	return func(r *subjectRow) { r.flags[name] = true }
}

func CreateTestSubject(t *testing.T, db DBLike, email string, referenceAt time.Time, opts ...SubjectOption) uuid.UUID {
	t.Helper()

	row := subjectRow{
		kind:     "student",
		isActive: true,
		flags:    map[string]bool{},
	}
	for _, opt := range opts {
		opt(&row)
	}
	flagsJSON, err := json.Marshal(row.flags)
	require.NoError(t, err)

	subjectID := uuid.New()
	_, err = db.Exec(context.Background(),
		"INSERT INTO subjects (id, email, kind, is_active, is_test, reference_at, exit_flags) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		subjectID, email, row.kind, row.isActive, row.isTest, referenceAt, flagsJSON)
	require.NoError(t, err)

	return subjectID
}

func SetSubjectFlag(t *testing.T, db DBLike, subjectID uuid.UUID, name string) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"UPDATE subjects SET exit_flags = exit_flags || jsonb_build_object($2::text, true) WHERE id = $1",
		subjectID, name)
	require.NoError(t, err)
}

func CreateDispatchMarker(t *testing.T, db DBLike, subjectID uuid.UUID, sequenceID, stageID string, at time.Time) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"INSERT INTO dispatch_markers (subject_id, sequence_id, stage_id, dispatched_at) VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING",
		subjectID, sequenceID, stageID, at)
	require.NoError(t, err)
}

func CountMarkers(t *testing.T, db DBLike, subjectID uuid.UUID, sequenceID string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM dispatch_markers WHERE subject_id = $1 AND sequence_id = $2",
		subjectID, sequenceID).Scan(&n)
	require.NoError(t, err)
	return n
}

func HasMarker(t *testing.T, db DBLike, subjectID uuid.UUID, sequenceID, stageID string) bool {
	t.Helper()

	var exists bool
	err := db.QueryRow(context.Background(),
		"SELECT EXISTS (SELECT 1 FROM dispatch_markers WHERE subject_id = $1 AND sequence_id = $2 AND stage_id = $3)",
		subjectID, sequenceID, stageID).Scan(&exists)
	require.NoError(t, err)
	return exists
}

// truncates all tables between tests
func TruncateAll(t *testing.T, db DBLike) {
	t.Helper()

	_, err := db.Exec(context.Background(), "TRUNCATE dispatch_markers, subjects")
	require.NoError(t, err)
}
