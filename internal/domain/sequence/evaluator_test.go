//go:build unit

package sequence_test

import (
	"testing"
	"time"

	"engagement-scheduler/internal/domain/sequence"
	"engagement-scheduler/internal/domain/subject"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoginRecovery(t *testing.T) *sequence.Definition {
	t.Helper()
	def, err := sequence.NewDefinition(
		"login-recovery", 1,
		sequence.FlagSet("has_logged_in"),
		[]sequence.Stage{
			{ID: "3h", Delay: 3 * time.Hour, Exit: sequence.FlagSet("has_logged_in"), ContentRef: "email/login-recovery/3h"},
			{ID: "24h", Delay: 24 * time.Hour, Exit: sequence.FlagSet("has_logged_in"), ContentRef: "email/login-recovery/24h"},
			{ID: "72h", Delay: 72 * time.Hour, Exit: sequence.FlagSet("has_logged_in"), ContentRef: "email/login-recovery/72h"},
			{ID: "7d", Delay: 7 * 24 * time.Hour, Exit: sequence.FlagSet("has_logged_in"), ContentRef: "email/login-recovery/7d"},
		},
	)
	require.NoError(t, err)
	return def
}

func newSubject(referenceAt time.Time, flags map[string]bool) subject.Subject {
	return subject.Subject{
		ID:          uuid.New(),
		ReferenceAt: referenceAt,
		Flags:       flags,
	}
}

func TestSelectStage_DormantSubjectTimeline(t *testing.T) {
	def := newLoginRecovery(t)
	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	subj := newSubject(t0, nil)

	// Replays the reference scenario: a subject that never logs in, runs at
	// irregular intervals, markers accumulating only for fired stages.
	markers := sequence.MarkerSet{}
	var fired []string

	runs := []time.Duration{
		1 * time.Hour,       // nothing due yet
		25 * time.Hour,      // 24h fires; 3h is permanently skipped
		26 * time.Hour,      // nothing: 24h already sent, 3h stays skipped
		73 * time.Hour,      // 72h fires (no run happened between 25h and 73h)
		8 * 24 * time.Hour,  // 7d fires
		9 * 24 * time.Hour,  // sequence exhausted
	}
	for _, offset := range runs {
		st, ok := sequence.SelectStage(subj, def, markers, t0.Add(offset))
		if ok {
			fired = append(fired, string(st.ID))
			markers[st.ID] = t0.Add(offset)
		}
	}

	want := []string{"24h", "72h", "7d"}
	if diff := cmp.Diff(want, fired); diff != "" {
		t.Errorf("fired stages mismatch (-want +got):\n%s", diff)
	}
	// The skipped 3h stage never received a marker.
	assert.False(t, markers.Has("3h"))
}

func TestSelectStage_MostAdvancedDueWins(t *testing.T) {
	def := newLoginRecovery(t)
	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	subj := newSubject(t0, nil)

	// Both 3h and 24h are due and unmarked; only the most advanced fires.
	st, ok := sequence.SelectStage(subj, def, sequence.MarkerSet{}, t0.Add(25*time.Hour))
	require.True(t, ok)
	assert.Equal(t, sequence.StageID("24h"), st.ID)
}

func TestSelectStage_NothingDue(t *testing.T) {
	def := newLoginRecovery(t)
	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	subj := newSubject(t0, nil)

	_, ok := sequence.SelectStage(subj, def, sequence.MarkerSet{}, t0.Add(time.Hour))
	assert.False(t, ok)
}

func TestSelectStage_GlobalExitShortCircuits(t *testing.T) {
	def := newLoginRecovery(t)
	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	subj := newSubject(t0, map[string]bool{"has_logged_in": true})

	// Logged in at T0+30h: no stage fires at T0+73h and none ever will.
	_, ok := sequence.SelectStage(subj, def, sequence.MarkerSet{}, t0.Add(73*time.Hour))
	assert.False(t, ok)
}

func TestSelectStage_StageExitMakesStageMoot(t *testing.T) {
	def, err := sequence.NewDefinition(
		"onboarding-nudges", 1,
		sequence.FlagSet("onboarding_complete"),
		[]sequence.Stage{
			{ID: "profile-24h", Delay: 24 * time.Hour, Exit: sequence.FlagSet("profile_complete"), ContentRef: "email/onboarding/profile"},
			{ID: "first-lesson-96h", Delay: 96 * time.Hour, Exit: sequence.FlagSet("first_lesson_complete"), ContentRef: "email/onboarding/first-lesson"},
		},
	)
	require.NoError(t, err)

	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	subj := newSubject(t0, map[string]bool{"profile_complete": true})

	// The profile nudge is moot: never dispatched, never recorded.
	_, ok := sequence.SelectStage(subj, def, sequence.MarkerSet{}, t0.Add(25*time.Hour))
	assert.False(t, ok)

	// The later stage is unaffected once it becomes due.
	st, ok := sequence.SelectStage(subj, def, sequence.MarkerSet{}, t0.Add(97*time.Hour))
	require.True(t, ok)
	assert.Equal(t, sequence.StageID("first-lesson-96h"), st.ID)
}

func TestSelectStage_EqualDelayTieBreak(t *testing.T) {
	def, err := sequence.NewDefinition(
		"tie", 1,
		sequence.FlagSet("done"),
		[]sequence.Stage{
			{ID: "a", Delay: time.Hour, Exit: sequence.FlagSet("a_done"), ContentRef: "email/login-recovery/3h"},
			{ID: "b", Delay: time.Hour, Exit: sequence.FlagSet("b_done"), ContentRef: "email/login-recovery/24h"},
		},
	)
	require.NoError(t, err)

	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	subj := newSubject(t0, nil)

	// Declaration order breaks the tie: first declared wins.
	st, ok := sequence.SelectStage(subj, def, sequence.MarkerSet{}, t0.Add(2*time.Hour))
	require.True(t, ok)
	assert.Equal(t, sequence.StageID("a"), st.ID)
}

func TestSelectStage_ReturnsNothingAfterMarker(t *testing.T) {
	def := newLoginRecovery(t)
	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	subj := newSubject(t0, nil)

	markers := sequence.MarkerSet{"24h": t0.Add(25 * time.Hour)}

	// Re-running right after a successful dispatch selects nothing; the
	// stale 3h stage must not leak through.
	_, ok := sequence.SelectStage(subj, def, markers, t0.Add(25*time.Hour+time.Minute))
	assert.False(t, ok)
}
