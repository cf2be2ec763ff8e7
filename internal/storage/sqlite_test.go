package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func save(t *testing.T, store *Store, gameID string, score int) {
	t.Helper()
	if _, err := store.SaveScore(ScoreEntry{GameID: gameID, Score: score}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}

	if err := store.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveScore(ScoreEntry{
		GameID:   "tetris",
		Player:   "ann",
		Source:   SourceWeb,
		Score:    1200,
		Level:    3,
		Lines:    24,
		Duration: 95000,
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	save(t, store, "tetris", 200)
	save(t, store, "tetris", 50)
	save(t, store, "tetris_sprint", 999)

	scores, err := store.TopScores("tetris", 10)
	require.NoError(t, err)
	require.Len(t, scores, 3)

	assert.Equal(t, []int{1200, 200, 50}, []int{scores[0].Score, scores[1].Score, scores[2].Score})

	top := scores[0]
	assert.Equal(t, "ann", top.Player)
	assert.Equal(t, SourceWeb, top.Source)
	assert.Equal(t, 3, top.Level)
	assert.Equal(t, 24, top.Lines)
	assert.Equal(t, int64(95000), top.Duration)
	assert.False(t, top.CreatedAt.IsZero(), "created_at should be parsed")

	// Defaults applied on insert.
	assert.Equal(t, SourceTerminal, scores[1].Source)
	assert.Equal(t, 1, scores[1].Level)

	sprint, err := store.TopScores("tetris_sprint", 10)
	require.NoError(t, err)
	assert.Len(t, sprint, 1)
}

func TestStoreSaveScoreRequiresGameID(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveScore(ScoreEntry{Score: 10})
	assert.Error(t, err)
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		save(t, store, "test", (i+1)*100)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}

	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	// Non-positive limit falls back to 10.
	all, err := store.TopScores("test", 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestStoreTopScoresFrom(t *testing.T) {
	store := openTestStore(t)

	entries := []ScoreEntry{
		{GameID: "tetris", Source: SourceWeb, Score: 300},
		{GameID: "tetris", Source: SourceSSH, Score: 500},
		{GameID: "tetris", Source: SourceWeb, Score: 100},
		{GameID: "tetris", Source: SourceTerminal, Score: 700},
	}
	for _, e := range entries {
		_, err := store.SaveScore(e)
		require.NoError(t, err)
	}

	tests := []struct {
		source string
		want   []int
	}{
		{"", []int{700, 500, 300, 100}},
		{SourceWeb, []int{300, 100}},
		{SourceSSH, []int{500}},
		{"unknown", nil},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got, err := store.TopScoresFrom("tetris", tt.source, 10)
			require.NoError(t, err)

			var scores []int
			for _, e := range got {
				scores = append(scores, e.Score)
			}
			assert.Equal(t, tt.want, scores)
		})
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("tetris")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	save(t, store, "tetris", 100)
	save(t, store, "tetris", 300)
	save(t, store, "tetris", 200)

	high, err = store.HighScore("tetris")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "tetris", 100)
	save(t, store, "tetris", 200)
	save(t, store, "tetris_sprint", 300)

	if err := store.ClearScores("tetris"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	marathon, _ := store.TopScores("tetris", 10)
	if len(marathon) != 0 {
		t.Errorf("Expected 0 marathon scores after clear, got %d", len(marathon))
	}

	sprint, _ := store.TopScores("tetris_sprint", 10)
	if len(sprint) != 1 {
		t.Errorf("Sprint scores should not be affected by clearing marathon")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		save(t, store, "test", i*10)
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}

	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("tetris")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.GamesCount)
	assert.Equal(t, 1, empty.BestLevel)

	for _, e := range []ScoreEntry{
		{GameID: "tetris", Score: 100, Level: 1, Lines: 4},
		{GameID: "tetris", Score: 500, Level: 4, Lines: 31},
		{GameID: "tetris_sprint", Score: 900, Level: 5, Lines: 40},
	} {
		_, err := store.SaveScore(e)
		require.NoError(t, err)
	}

	st, err := store.GetGameStats("tetris")
	require.NoError(t, err)
	assert.Equal(t, 2, st.GamesCount)
	assert.Equal(t, 500, st.HighScore)
	assert.InDelta(t, 300.0, st.AvgScore, 0.001)
	assert.Equal(t, 31, st.MostLines)
	assert.Equal(t, 4, st.BestLevel)

	all, err := store.GetAllGamesStats()
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, 40, all["tetris_sprint"].MostLines)
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreHomeExpansion(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.tetris/scores.db")
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(filepath.Join(home, ".tetris", "scores.db"))
	assert.NoError(t, err)
}

func TestStoreConcurrentSaves(t *testing.T) {
	store := openTestStore(t)

	const writers, perWriter = 16, 10
	errs := make(chan error, writers*perWriter)
	var wg sync.WaitGroup
	for w := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perWriter {
				if _, err := store.SaveScore(ScoreEntry{GameID: "tetris", Source: SourceWeb, Score: w*100 + i}); err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("SaveScore() failed under contention: %v", err)
	}

	all, err := store.AllScores("tetris")
	require.NoError(t, err)
	assert.Len(t, all, writers*perWriter)
}
