package sitter

// SortMode selects the ordering of search results.
type SortMode string

// Supported sort modes. SortDistance is the default and doubles as the
// "ranked" mode: once ranking metrics have been computed for a request,
// it orders by composite rank score rather than raw distance. That merged
// behavior is deliberate (proximity already dominates the composite via its
// weight) and is part of the public API contract.
const (
	SortDistance SortMode = "distance"
	SortPrice    SortMode = "price"
	SortRating   SortMode = "rating"
)

// ParseSortMode maps a raw sort parameter onto a SortMode. Unknown or empty
// values fall back to SortDistance.
func ParseSortMode(raw string) SortMode {
	switch SortMode(raw) {
	case SortPrice:
		return SortPrice
	case SortRating:
		return SortRating
	default:
		return SortDistance
	}
}

// SearchQuery is a parsed sitter search request. All filters are optional;
// a nil numeric filter imposes no constraint, an empty tag slice imposes no
// constraint. The origin is either explicit coordinates or a free-text
// location; the orchestrator resolves text to coordinates before filtering.
type SearchQuery struct {
	// Origin: explicit coordinates take precedence over the text location.
	Location  string
	Latitude  *float64
	Longitude *float64

	// Numeric range filters.
	MinPrice    *float64
	MaxPrice    *float64
	MinRating   *float64
	MaxDistance *float64 // miles; applied only to records with resolved coordinates

	// Singular facet filters: the record's tag set must contain the value.
	Service string
	PetType string

	// Set-valued facet filters: a record passes when its tag set intersects
	// the requested set (OR within a category, AND across categories).
	DogSizes     []string
	SpecialNeeds []string
	HomeFeatures []string

	TopSittersOnly bool

	// Date range is echoed back in the envelope; availability-calendar
	// matching is not part of this engine.
	StartDate string
	EndDate   string

	Sort SortMode
}
