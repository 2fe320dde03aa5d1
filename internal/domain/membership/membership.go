package membership

// Tier is the owner's affiliation tier.
type Tier string

// Affiliation tier constants.
const (
	Veteran   Tier = "veteran"
	Spouse    Tier = "spouse"
	Member    Tier = "member"
	Supporter Tier = "supporter"
)

// IsValid checks if the tier is one of the supported values.
func (t Tier) IsValid() bool {
	return t == Veteran || t == Spouse || t == Member || t == Supporter
}

// Priority returns the fixed ordering used to favor veteran-owned businesses:
// veteran=1, spouse=2, member=3, supporter=4. Unknown tiers sort last (5).
func (t Tier) Priority() int {
	switch t {
	case Veteran:
		return 1
	case Spouse:
		return 2
	case Member:
		return 3
	case Supporter:
		return 4
	default:
		return 5
	}
}
