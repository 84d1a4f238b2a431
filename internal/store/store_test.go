package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashmaster/internal/deck"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open("file:" + name + "?mode=memory&cache=shared")
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMigrationsApplied(t *testing.T) {
	s := openTestStore(t)

	v, err := s.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(2), v)
}

func TestDeckStore_LoadEmpty(t *testing.T) {
	ds := openTestStore(t).DeckStore()

	_, err := ds.Load(context.Background())
	assert.ErrorIs(t, err, deck.ErrNoState)
}

func TestDeckStore_RoundTrip(t *testing.T) {
	ds := openTestStore(t).DeckStore()
	ctx := context.Background()

	studied := deck.Timestamp(1_700_000_000_123)
	decks := []deck.Deck{
		{
			ID:          "b",
			Title:       "Second",
			Description: "desc",
			Category:    "General",
			Cards: []deck.Flashcard{
				{ID: "c1", Question: "q1", Answer: "a1"},
				{ID: "c2", Question: "q2", Answer: "a2"},
			},
			Mastery:       64,
			LastStudiedAt: &studied,
			CreatedAt:     1_600_000_000_000,
		},
		{
			ID:        "a",
			Title:     "First",
			Category:  "Science",
			Cards:     []deck.Flashcard{{ID: "c3", Question: "q3", Answer: "a3"}},
			CreatedAt: 1_500_000_000_000,
		},
	}

	require.NoError(t, ds.Save(ctx, decks))
	got, err := ds.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, decks, got)

	// Saving again overwrites the single row.
	require.NoError(t, ds.Save(ctx, decks[:1]))
	got, err = ds.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestDeckStore_WireFormat(t *testing.T) {
	ds := openTestStore(t).DeckStore()
	ctx := context.Background()

	require.NoError(t, ds.Save(ctx, []deck.Deck{{
		ID:        "1",
		Title:     "T",
		Cards:     []deck.Flashcard{{ID: "c", Question: "q", Answer: "a"}},
		CreatedAt: 42,
	}}))

	raw, err := ds.LoadRaw(ctx)
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"id":"1","title":"T","description":"","category":"","cards":[{"id":"c","question":"q","answer":"a"}],"mastery":0,"createdAt":42}]`,
		string(raw))
}

func TestDeckStore_ReadsLocalStorageLayout(t *testing.T) {
	ds := openTestStore(t).DeckStore()
	ctx := context.Background()

	raw := `[{"id":"1","title":"Biology","description":"d","category":"Science",` +
		`"cards":[{"id":"c1","question":"q","answer":"a"}],"mastery":85,` +
		`"lastStudiedAt":1700000000000,"createdAt":1690000000000}]`
	require.NoError(t, ds.SaveRaw(ctx, []byte(raw)))

	decks, err := ds.Load(ctx)
	require.NoError(t, err)
	require.Len(t, decks, 1)
	assert.Equal(t, 85, decks[0].Mastery)
	require.NotNil(t, decks[0].LastStudiedAt)
	assert.Equal(t, deck.Timestamp(1700000000000), *decks[0].LastStudiedAt)
}

func TestDeckStore_ClampsMastery(t *testing.T) {
	ds := openTestStore(t).DeckStore()
	ctx := context.Background()

	raw := `[{"id":"1","title":"High","cards":[{"id":"c","question":"q","answer":"a"}],"mastery":250,"createdAt":1},` +
		`{"id":"2","title":"Low","cards":[{"id":"d","question":"q","answer":"a"}],"mastery":-5,"createdAt":2}]`
	require.NoError(t, ds.SaveRaw(ctx, []byte(raw)))

	decks, err := ds.Load(ctx)
	require.NoError(t, err)
	require.Len(t, decks, 2)
	assert.Equal(t, 100, decks[0].Mastery)
	assert.Equal(t, 0, decks[1].Mastery)
}

func TestDeckStore_Corrupt(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "{definitely not json"},
		{"wrong shape", `{"id":"1"}`},
		{"null", "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := openTestStore(t).DeckStore()
			ctx := context.Background()
			require.NoError(t, ds.SaveRaw(ctx, []byte(tt.raw)))

			_, err := ds.Load(ctx)
			assert.ErrorIs(t, err, deck.ErrCorruptState)
		})
	}
}

func TestDeckStore_CorruptFallsBackToSeed(t *testing.T) {
	ds := openTestStore(t).DeckStore()
	ctx := context.Background()
	require.NoError(t, ds.SaveRaw(ctx, []byte("garbage")))

	repo, err := deck.Open(ctx, ds)
	require.NoError(t, err)
	assert.Equal(t, 3, repo.Len())

	// The seed replaced the corrupt value.
	decks, err := ds.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, decks, 3)
}

func TestDeckStore_Clear(t *testing.T) {
	ds := openTestStore(t).DeckStore()
	ctx := context.Background()

	require.NoError(t, ds.Save(ctx, []deck.Deck{}))
	require.NoError(t, ds.Clear(ctx))

	_, err := ds.Load(ctx)
	assert.True(t, errors.Is(err, deck.ErrNoState))
}

func TestRepositoryPersistsThroughStore(t *testing.T) {
	ds := openTestStore(t).DeckStore()
	ctx := context.Background()

	repo, err := deck.Open(ctx, ds)
	require.NoError(t, err)
	created, err := repo.CreateDeck(ctx, "Imported", []deck.CardInput{{Question: "q", Answer: "a"}})
	require.NoError(t, err)
	require.NoError(t, repo.UpdateMastery(ctx, created.ID, 80))

	reopened, err := deck.Open(ctx, ds)
	require.NoError(t, err)
	assert.Equal(t, repo.Decks(), reopened.Decks())
}

func TestLLMEvents(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "gemini", Model: "gemini-3-flash-preview", Purpose: "flashcards",
		InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true,
		RequestBody: "[user]\nhello", ResponseBody: `{"cards":[]}`,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "gemini", Model: "gemini-3-flash-preview", Purpose: "flashcards",
		InputTokens: 10, OutputTokens: 0, LatencyMs: 400, Success: false,
		ErrorMessage: "boom",
	}))

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 10})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "boom", events[0].ErrorMessage, "newest first")
	assert.False(t, events[0].Success)
	assert.True(t, events[1].Success)
	assert.WithinDuration(t, time.Now(), events[0].Timestamp, time.Minute)

	e, err := repo.GetLLMEvent(ctx, events[1].ID)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, `{"cards":[]}`, e.ResponseBody)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 1)
	assert.Equal(t, "flashcards", byPurpose[0].Purpose)
	assert.Equal(t, 2, byPurpose[0].Calls)
	assert.Equal(t, 110, byPurpose[0].InputTokens)
	assert.Equal(t, int64(300), byPurpose[0].AvgLatencyMs)

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 1)
	assert.Equal(t, "gemini-3-flash-preview", byModel[0].Model)
}

func TestStudySessions(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendStudySession(ctx, StudySessionData{DeckID: "1", DeckTitle: "Bio", Correct: 1, Total: 2, Mastery: 50}))
	require.NoError(t, repo.AppendStudySession(ctx, StudySessionData{DeckID: "2", DeckTitle: "Spanish", Correct: 2, Total: 2, Mastery: 100}))
	require.NoError(t, repo.AppendStudySession(ctx, StudySessionData{DeckID: "1", DeckTitle: "Bio", Correct: 2, Total: 2, Mastery: 100}))

	all, err := repo.QueryStudySessions(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "1", all[0].DeckID)
	assert.Equal(t, 100, all[0].Mastery)

	bio, err := repo.QueryStudySessions(ctx, QueryOpts{DeckID: "1", Limit: 1})
	require.NoError(t, err)
	require.Len(t, bio, 1)
	assert.Equal(t, 2, bio[0].Correct)
}
