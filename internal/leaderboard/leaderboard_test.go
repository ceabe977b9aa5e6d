package leaderboard

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsert_SortsDescendingAndCaps(t *testing.T) {
	var board []Entry
	for i := 1; i <= 15; i++ {
		board = Upsert(board, fmt.Sprintf("cat-%02d", i), float64(i*100))
	}

	require.Len(t, board, Cap)
	assert.Equal(t, "cat-15", board[0].Name)
	assert.Equal(t, float64(1500), board[0].Score)
	assert.Equal(t, "cat-06", board[Cap-1].Name)

	for i := 1; i < len(board); i++ {
		assert.GreaterOrEqual(t, board[i-1].Score, board[i].Score)
	}
}

func TestUpsert_KeepsHigherScoreForExistingName(t *testing.T) {
	board := Upsert(nil, "Whiskers", 500)
	board = Upsert(board, "Whiskers", 200)

	require.Len(t, board, 1)
	assert.Equal(t, float64(500), board[0].Score)

	board = Upsert(board, "Whiskers", 900)
	require.Len(t, board, 1)
	assert.Equal(t, float64(900), board[0].Score)
}

func TestUpsert_DoesNotMutateInput(t *testing.T) {
	orig := []Entry{{Name: "a", Score: 10}, {Name: "b", Score: 20}}
	Upsert(orig, "a", 99)
	assert.Equal(t, float64(10), orig[0].Score)
}

func TestRank(t *testing.T) {
	board := []Entry{{Name: "a", Score: 30}, {Name: "b", Score: 20}}
	assert.Equal(t, 1, Rank(board, "a"))
	assert.Equal(t, 2, Rank(board, "b"))
	assert.Equal(t, 0, Rank(board, "nobody"))
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	fs, err := NewFileStore(dir)
	require.NoError(t, err)
	fs.Submit("Mittens", 1200)
	fs.Submit("Tabby", 3400)

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	top := reopened.Top()
	require.Len(t, top, 2)
	assert.Equal(t, "Tabby", top[0].Name)
	assert.Equal(t, "Mittens", top[1].Name)
}

func TestMemoryStore(t *testing.T) {
	var m MemoryStore
	m.Submit("a", 1)
	entries := m.Submit("b", 2)
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0].Name)
}
