package deck

import "time"

// SeedDecks returns the sample collection written on first run.
func SeedDecks(now time.Time) []Deck {
	ago := func(d time.Duration) *Timestamp {
		ts := TimestampOf(now.Add(-d))
		return &ts
	}

	return []Deck{
		{
			ID:          "1",
			Title:       "Biology 101 - Cell Structures",
			Description: "Key components of plant and animal cells.",
			Category:    "Science",
			Cards: []Flashcard{
				{ID: "c1", Question: "What is the powerhouse of the cell?", Answer: "Mitochondria"},
				{ID: "c2", Question: "What organelle is responsible for photosynthesis?", Answer: "Chloroplast"},
			},
			Mastery:       85,
			LastStudiedAt: ago(2 * time.Hour),
			CreatedAt:     TimestampOf(now),
		},
		{
			ID:          "2",
			Title:       "Spanish Vocabulary - Week 4",
			Description: "Common verbs and household objects.",
			Category:    "Language",
			Cards: []Flashcard{
				{ID: "c3", Question: "Translate: To eat", Answer: "Comer"},
				{ID: "c4", Question: "Translate: House", Answer: "Casa"},
			},
			Mastery:       42,
			LastStudiedAt: ago(24 * time.Hour),
			CreatedAt:     TimestampOf(now),
		},
		{
			ID:          "3",
			Title:       "European History 1900-1950",
			Description: "World wars and major geopolitical shifts.",
			Category:    "History",
			Cards: []Flashcard{
				{ID: "c5", Question: "When did WWI end?", Answer: "1918"},
			},
			Mastery:   0,
			CreatedAt: TimestampOf(now.Add(-72 * time.Hour)),
		},
	}
}
