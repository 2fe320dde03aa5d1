package search

import (
	"strings"

	"github.com/vetdirhq/vetdir/internal/domain"
	"github.com/vetdirhq/vetdir/internal/domain/geo"
	"github.com/vetdirhq/vetdir/internal/domain/search/request"
	"github.com/vetdirhq/vetdir/internal/domain/search/result"
)

// Pipeline stage names, recorded into search metadata in application order.
const (
	stageStatus   = "status"
	stageKeyword  = "keyword"
	stageCategory = "category"
	stageLocation = "location"
	stageFlags    = "flags"
	stageNumeric  = "numeric"
)

// candidate pairs a business with the per-search state ranking needs: its
// live rating summary, the distance from the resolved search point, and the
// text relevance score.
type candidate struct {
	biz     domain.Business
	summary domain.RatingSummary
	// distance is nil when the search has no resolved point or the business
	// has no coordinates. Never treated as zero.
	distance *float64
	score    float64
}

// locationScope is the resolved interpretation of the request's location input.
type locationScope struct {
	mode     result.LocationMode
	point    *geo.Point
	degraded bool
}

// stage is one independently skippable predicate of the filter pipeline.
type stage struct {
	name string
	keep func(c *candidate) bool
}

// buildPipeline assembles the ordered stage list for a request. Stages whose
// input is absent are omitted; the status gate is always present.
func buildPipeline(req *request.Request, scope locationScope) []stage {
	stages := []stage{{
		name: stageStatus,
		keep: func(c *candidate) bool { return c.biz.Searchable() },
	}}

	if q := req.Query(); q != "" {
		stages = append(stages, stage{
			name: stageKeyword,
			keep: func(c *candidate) bool { return matchesKeyword(&c.biz, q) },
		})
	}

	if ids := req.CategoryIDs(); len(ids) > 0 {
		stages = append(stages, stage{
			name: stageCategory,
			keep: func(c *candidate) bool {
				for _, id := range ids {
					if c.biz.InCategory(id) {
						return true
					}
				}
				return false
			},
		})
	}

	switch scope.mode {
	case result.LocationRadius:
		radius := float64(req.RadiusMiles())
		stages = append(stages, stage{
			name: stageLocation,
			keep: func(c *candidate) bool {
				// Unknown distance means unknown coordinates: excluded, not distance 0.
				return c.distance != nil && *c.distance <= radius
			},
		})
	case result.LocationText:
		loc := req.Location()
		stages = append(stages, stage{
			name: stageLocation,
			keep: func(c *candidate) bool { return matchesLocationText(&c.biz, loc) },
		})
	}

	f := req.Filters()
	if flagsApply(req) {
		stages = append(stages, stage{
			name: stageFlags,
			keep: func(c *candidate) bool { return matchesFlags(&c.biz, req) },
		})
	}

	if f.MinRating > 0 || f.EmployeeBand != "" || f.MinYears > 0 {
		stages = append(stages, stage{
			name: stageNumeric,
			keep: func(c *candidate) bool {
				if f.MinRating > 0 && c.summary.Average < f.MinRating {
					return false
				}
				if f.EmployeeBand != "" && !f.EmployeeBand.Matches(c.biz.EmployeeCount) {
					return false
				}
				if f.MinYears > 0 && c.biz.YearsInBusiness < f.MinYears {
					return false
				}
				return true
			},
		})
	}

	return stages
}

// runPipeline applies the stages in order and returns the surviving
// candidates plus the names of the stages that ran.
func runPipeline(cands []candidate, stages []stage) ([]candidate, []string) {
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = s.name
		kept := cands[:0]
		for j := range cands {
			if s.keep(&cands[j]) {
				kept = append(kept, cands[j])
			}
		}
		cands = kept
	}
	return cands, names
}

func matchesKeyword(b *domain.Business, query string) bool {
	return containsFold(b.Name, query) ||
		containsFold(b.Description, query) ||
		containsFold(b.AreasServed, query)
}

func matchesLocationText(b *domain.Business, loc string) bool {
	return containsFold(b.City, loc) ||
		containsFold(b.State, loc) ||
		containsFold(b.AreasServed, loc)
}

func flagsApply(req *request.Request) bool {
	f := req.Filters()
	return f.Verified || f.Featured || f.EmergencyService || f.Insured ||
		f.Bonded || f.Licensed || f.MilitaryOwned || f.State != "" || f.City != ""
}

func matchesFlags(b *domain.Business, req *request.Request) bool {
	f := req.Filters()
	if f.Verified && !b.Verified {
		return false
	}
	if f.Featured && !b.Featured {
		return false
	}
	if f.EmergencyService && !b.EmergencyService {
		return false
	}
	if f.Insured && !b.Insured {
		return false
	}
	if f.Bonded && !b.Bonded {
		return false
	}
	if f.Licensed && !b.Licensed {
		return false
	}
	if f.MilitaryOwned && !b.MilitaryOwned() {
		return false
	}
	if f.State != "" && !strings.EqualFold(b.State, f.State) {
		return false
	}
	if f.City != "" && !strings.EqualFold(b.City, f.City) {
		return false
	}
	return true
}

func containsFold(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
