package sortby

// Sort is the result ordering strategy.
type Sort string

// Sort strategy constants.
const (
	// Relevance orders by text-match score when a query is present,
	// by membership priority otherwise.
	Relevance  Sort = "relevance"
	Rating     Sort = "rating"
	Newest     Sort = "newest"
	Name       Sort = "name"
	Distance   Sort = "distance"
	Membership Sort = "membership"
)

// IsValid checks if the sort is one of the supported values.
func (s Sort) IsValid() bool {
	switch s {
	case Relevance, Rating, Newest, Name, Distance, Membership:
		return true
	}
	return false
}

// Default returns the effective sort when none is requested: relevance with
// a query, membership priority without one.
func Default(hasQuery bool) Sort {
	if hasQuery {
		return Relevance
	}
	return Membership
}
