package sitter

import "sort"

// Order sorts scored results in place under the given sort mode. Every mode
// is a total order via an explicit tie-break chain, and the underlying sort
// is stable so exact duplicates keep their input order run-to-run.
//
//   - price:  ascending rate; ties by descending rank score.
//   - rating: descending rating; ties by descending repeat_client_count,
//     then descending rank score.
//   - distance (default): descending rank score. The mode keeps its
//     historical "distance" name but orders by the composite score, in
//     which proximity is the dominant weighted signal. See SortMode.
func Order(results []*ScoredSitter, mode SortMode) {
	switch mode {
	case SortPrice:
		sort.SliceStable(results, func(i, j int) bool {
			if results[i].Rate != results[j].Rate {
				return results[i].Rate < results[j].Rate
			}
			return results[i].RankScore > results[j].RankScore
		})
	case SortRating:
		sort.SliceStable(results, func(i, j int) bool {
			if results[i].Sitter.Rating != results[j].Sitter.Rating {
				return results[i].Sitter.Rating > results[j].Sitter.Rating
			}
			if results[i].RepeatClientCount != results[j].RepeatClientCount {
				return results[i].RepeatClientCount > results[j].RepeatClientCount
			}
			return results[i].RankScore > results[j].RankScore
		})
	default:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].RankScore > results[j].RankScore
		})
	}
}
