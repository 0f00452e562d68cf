package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/quadra/internal/game"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// playedSnapshot drives a short game so the snapshot has real content.
func playedSnapshot(t *testing.T) game.Snapshot {
	t.Helper()
	st := game.NewState()
	var err error
	st, err = st.Apply(game.ActivateCell{}) // place at 0
	require.NoError(t, err)
	st, err = st.Apply(game.MoveCursor{Direction: game.Right})
	require.NoError(t, err)
	return st.Snapshot()
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	snap := playedSnapshot(t)
	require.NoError(t, s.Save(ctx, Saved{Snapshot: snap, Rule: game.RuleSpin}))

	got, err := s.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, snap.Board, got.Snapshot.Board)
	assert.Equal(t, snap.Cursor, got.Snapshot.Cursor)
	assert.Equal(t, snap.ActivePlayer, got.Snapshot.ActivePlayer)
	assert.Equal(t, snap.CanPlace, got.Snapshot.CanPlace)
	assert.Equal(t, snap.CanTurn, got.Snapshot.CanTurn)
	assert.Equal(t, game.RuleSpin, got.Rule)
	assert.False(t, got.SavedAt.IsZero())
}

func TestSaveReplacesPrevious(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.Save(ctx, Saved{Snapshot: game.NewState().Snapshot(), Rule: game.RuleConfirm}))

	snap := playedSnapshot(t)
	require.NoError(t, s.Save(ctx, Saved{Snapshot: snap, Rule: game.RuleConfirm}))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap.Cursor, got.Snapshot.Cursor)
	assert.Equal(t, snap.Board, got.Snapshot.Board)

	var count int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM session`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestLoadEmptyStore(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.Save(ctx, Saved{Snapshot: game.NewState().Snapshot(), Rule: game.RuleConfirm}))
	require.NoError(t, s.Clear(ctx))

	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, ErrNoSession)

	// clearing an already empty store is fine
	require.NoError(t, s.Clear(ctx))
}

func TestLoadedSnapshotRestores(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	snap := playedSnapshot(t)
	require.NoError(t, s.Save(ctx, Saved{Snapshot: snap, Rule: game.RuleConfirm}))

	got, err := s.Load(ctx)
	require.NoError(t, err)

	st, err := game.Restore(got.Snapshot)
	require.NoError(t, err)
	assert.Equal(t, snap.Cursor, st.Cursor())
	assert.Equal(t, game.PlayerOne, st.Board().Occupant(0))
	assert.Equal(t, game.AwaitingTurnAction, st.Phase())
}

func TestBoardEncoding(t *testing.T) {
	var cells [game.CellCount]game.Player
	cells[0] = game.PlayerOne
	cells[48] = game.PlayerTwo

	encoded := encodeBoard(cells)
	require.Len(t, encoded, game.CellCount)
	assert.Equal(t, byte('1'), encoded[0])
	assert.Equal(t, byte('2'), encoded[48])

	decoded, err := decodeBoard(encoded)
	require.NoError(t, err)
	assert.Equal(t, cells, decoded)

	_, err = decodeBoard("123")
	assert.Error(t, err)
	_, err = decodeBoard(encoded[:48] + "9")
	assert.Error(t, err)
}
