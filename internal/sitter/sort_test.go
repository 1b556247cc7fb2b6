package sitter

import "testing"

func scoredFixture() []*ScoredSitter {
	return []*ScoredSitter{
		{Sitter: Sitter{ID: 1, Rate: 45, Rating: 4.9, RepeatClientCount: 30}, RankScore: 0.80},
		{Sitter: Sitter{ID: 2, Rate: 30, Rating: 4.2, RepeatClientCount: 5}, RankScore: 0.65},
		{Sitter: Sitter{ID: 3, Rate: 30, Rating: 4.9, RepeatClientCount: 10}, RankScore: 0.90},
		{Sitter: Sitter{ID: 4, Rate: 60, Rating: 5.0, RepeatClientCount: 2}, RankScore: 0.70},
	}
}

func scoredIDs(results []*ScoredSitter) []int64 {
	out := make([]int64, len(results))
	for i, r := range results {
		out[i] = r.ID
	}
	return out
}

func TestOrder(t *testing.T) {
	tests := []struct {
		name string
		mode SortMode
		want []int64
	}{
		// 30 (rank 0.90) before 30 (rank 0.65), then 45, then 60.
		{"price ascending with rank tie-break", SortPrice, []int64{3, 2, 1, 4}},
		// 5.0 first; 4.9 tie broken by repeat clients (30 > 10); 4.2 last.
		{"rating descending with repeat tie-break", SortRating, []int64{4, 1, 3, 2}},
		// Default mode orders by composite rank score.
		{"distance orders by rank score", SortDistance, []int64{3, 1, 4, 2}},
		{"unknown mode behaves like default", SortMode("bogus"), []int64{3, 1, 4, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := scoredFixture()
			Order(results, tt.mode)
			if got := scoredIDs(results); !equalIDs(got, tt.want) {
				t.Errorf("Order(%q) = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestOrderIsStable(t *testing.T) {
	// Exact duplicates across every key keep their input order.
	results := []*ScoredSitter{
		{Sitter: Sitter{ID: 1, Rate: 30, Rating: 4.5, RepeatClientCount: 5}, RankScore: 0.5},
		{Sitter: Sitter{ID: 2, Rate: 30, Rating: 4.5, RepeatClientCount: 5}, RankScore: 0.5},
		{Sitter: Sitter{ID: 3, Rate: 30, Rating: 4.5, RepeatClientCount: 5}, RankScore: 0.5},
	}
	for _, mode := range []SortMode{SortPrice, SortRating, SortDistance} {
		Order(results, mode)
		if got := scoredIDs(results); !equalIDs(got, []int64{1, 2, 3}) {
			t.Errorf("Order(%q) reordered equal records: %v", mode, got)
		}
	}
}

func TestParseSortMode(t *testing.T) {
	tests := []struct {
		raw  string
		want SortMode
	}{
		{"price", SortPrice},
		{"rating", SortRating},
		{"distance", SortDistance},
		{"", SortDistance},
		{"nonsense", SortDistance},
	}

	for _, tt := range tests {
		if got := ParseSortMode(tt.raw); got != tt.want {
			t.Errorf("ParseSortMode(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
