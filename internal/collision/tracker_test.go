package collision

import (
	"testing"

	"github.com/arloliu/dtext/errs"
	"github.com/stretchr/testify/require"
)

func TestNewTracker(t *testing.T) {
	tracker := NewTracker()

	require.NotNil(t, tracker)
	require.Equal(t, 0, tracker.Count())
	require.Empty(t, tracker.Triggers())
}

func TestTracker_TrackMapping_Success(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.TrackMapping('t', '\t'))
	require.NoError(t, tracker.TrackMapping('n', '\n'))
	require.Equal(t, 2, tracker.Count())
	require.Equal(t, []rune{'t', 'n'}, tracker.Triggers())
	require.True(t, tracker.HasTrigger('t'))
	require.True(t, tracker.HasLiteral('\n'))
	require.False(t, tracker.HasLiteral('\r'))

	m, ok := tracker.Lookup('n')
	require.True(t, ok)
	require.Equal(t, Meaning{Literal: '\n'}, m)
}

func TestTracker_TrackMapping_Duplicate(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.TrackMapping('t', '\t'))
	require.NoError(t, tracker.TrackMapping('t', '\t'), "identical pair is idempotent")
	require.Equal(t, 1, tracker.Count())
}

func TestTracker_TrackMapping_TriggerConflict(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.TrackMapping('t', '\t'))
	err := tracker.TrackMapping('t', ',')
	require.ErrorIs(t, err, errs.ErrTriggerConflict)
	require.Equal(t, 1, tracker.Count())
}

func TestTracker_TrackMapping_LiteralConflict(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.TrackMapping('t', '\t'))
	err := tracker.TrackMapping('T', '\t')
	require.ErrorIs(t, err, errs.ErrLiteralConflict)
	require.False(t, tracker.HasTrigger('T'))
}

func TestTracker_TrackNull(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.TrackNull('N'))
	require.NoError(t, tracker.TrackNull('N'))
	require.ErrorIs(t, tracker.TrackNull('0'), errs.ErrTriggerConflict)
	require.ErrorIs(t, tracker.TrackMapping('N', 'x'), errs.ErrTriggerConflict)

	m, ok := tracker.Lookup('N')
	require.True(t, ok)
	require.True(t, m.Null)
	require.Equal(t, "<null>", m.String())
}

func TestTracker_Reserve(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.Reserve('\n', "line separator"))
	require.ErrorIs(t, tracker.TrackMapping('\n', 'x'), errs.ErrTriggerConflict)

	require.NoError(t, tracker.TrackMapping('\r', 'y'))
	require.ErrorIs(t, tracker.Reserve('\r', "line separator"), errs.ErrTriggerConflict)
}

func TestTracker_Reset(t *testing.T) {
	tracker := NewTracker()
	require.NoError(t, tracker.TrackMapping('t', '\t'))
	require.NoError(t, tracker.Reserve('\n', "line separator"))

	tracker.Reset()

	require.Equal(t, 0, tracker.Count())
	require.False(t, tracker.HasLiteral('\t'))
	require.NoError(t, tracker.TrackMapping('\n', 'x'))
}
