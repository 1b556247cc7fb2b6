package sitter

import "strings"

// Filter returns the subset of candidates matching every specified criterion
// in q. Facet categories combine conjunctively; within a set-valued category
// the requested values combine disjunctively. Distance-dependent filtering
// (MaxDistance) is not applied here: it runs after distances are computed,
// and only against records with resolved coordinates.
func Filter(candidates []*Sitter, q *SearchQuery) []*Sitter {
	matched := make([]*Sitter, 0, len(candidates))
	for _, s := range candidates {
		if matches(s, q) {
			matched = append(matched, s)
		}
	}
	return matched
}

func matches(s *Sitter, q *SearchQuery) bool {
	if q.MinPrice != nil && s.Rate < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && s.Rate > *q.MaxPrice {
		return false
	}
	if q.MinRating != nil && s.Rating < *q.MinRating {
		return false
	}
	if q.TopSittersOnly && !s.TopSitter {
		return false
	}
	if q.Service != "" && !containsTag(s.Services, q.Service) {
		return false
	}
	if q.PetType != "" && !containsTag(s.PetTypes, q.PetType) {
		return false
	}
	if !intersects(s.DogSizes, q.DogSizes) {
		return false
	}
	if !intersects(s.SpecialNeeds, q.SpecialNeeds) {
		return false
	}
	if !intersects(s.HomeFeatures, q.HomeFeatures) {
		return false
	}
	return true
}

// containsTag reports whether the tag set contains the value,
// case-insensitively.
func containsTag(set []string, tag string) bool {
	for _, t := range set {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// intersects reports whether the record's tag set and the requested set
// share at least one value. An empty requested set imposes no constraint.
func intersects(set, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, w := range wanted {
		if containsTag(set, w) {
			return true
		}
	}
	return false
}
