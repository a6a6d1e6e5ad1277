//go:build unit

package sequence_test

import (
	"testing"
	"time"

	"engagement-scheduler/internal/domain/sequence"
	"engagement-scheduler/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistryWithLoginRecovery(t *testing.T) (*sequence.Registry, *sequence.Definition) {
	t.Helper()
	reg := sequence.NewRegistry()
	def := newLoginRecovery(t)
	require.NoError(t, reg.Register(def))
	return reg, def
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	reg, def := newRegistryWithLoginRecovery(t)

	got, err := reg.Get("login-recovery")
	require.NoError(t, err)
	assert.Same(t, def, got)

	_, err = reg.Get("missing")
	assert.ErrorIs(t, err, errs.ErrSequenceNotFound)
}

func TestRegistry_RejectsDuplicateID(t *testing.T) {
	reg, _ := newRegistryWithLoginRecovery(t)

	err := reg.Register(newLoginRecovery(t))
	assert.ErrorIs(t, err, errs.ErrDuplicateSequence)
}

func TestRegistry_ListKeepsRegistrationOrder(t *testing.T) {
	reg := sequence.NewRegistry()

	second, err := sequence.NewDefinition("b", 1, sequence.FlagSet("done"), validStages())
	require.NoError(t, err)
	first, err := sequence.NewDefinition("a", 1, sequence.FlagSet("done"), validStages())
	require.NoError(t, err)

	require.NoError(t, reg.Register(second))
	require.NoError(t, reg.Register(first))

	defs := reg.List()
	require.Len(t, defs, 2)
	assert.Equal(t, sequence.ID("b"), defs[0].ID())
	assert.Equal(t, sequence.ID("a"), defs[1].ID())
}

func TestRegistry_DeprecateStage(t *testing.T) {
	reg, original := newRegistryWithLoginRecovery(t)

	require.NoError(t, reg.Deprecate("login-recovery", "24h"))

	got, err := reg.Get("login-recovery")
	require.NoError(t, err)

	// Deprecation swaps in a new copy with a bumped version; the original
	// definition a running pass may hold is untouched.
	assert.NotSame(t, original, got)
	assert.Equal(t, original.Version()+1, got.Version())
	st, ok := got.Stage("24h")
	require.True(t, ok)
	assert.True(t, st.Deprecated)

	st, _ = original.Stage("24h")
	assert.False(t, st.Deprecated)

	// A deprecated stage never fires, even when it is the first due one.
	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	subj := newSubject(t0, nil)
	_, ok = sequence.SelectStage(subj, got, sequence.MarkerSet{}, t0.Add(25*time.Hour))
	assert.False(t, ok)
}

func TestRegistry_DeprecateErrors(t *testing.T) {
	reg, _ := newRegistryWithLoginRecovery(t)

	err := reg.Deprecate("missing", "24h")
	assert.ErrorIs(t, err, errs.ErrSequenceNotFound)

	err = reg.Deprecate("login-recovery", "missing")
	assert.ErrorIs(t, err, errs.ErrStageNotFound)
}
