package search

import (
	"sort"
	"strings"

	"github.com/vetdirhq/vetdir/internal/domain/search/sortby"
)

// rank imposes a strict total order on the candidates per the sort strategy.
// The sort is stable, so candidates equal on every key keep their snapshot
// order and identical queries paginate deterministically.
func rank(cands []candidate, by sortby.Sort, hasQuery bool) {
	less := comparatorFor(by, hasQuery)
	sort.SliceStable(cands, func(i, j int) bool {
		return less(&cands[i], &cands[j])
	})
}

type lessFunc func(a, b *candidate) bool

func comparatorFor(by sortby.Sort, hasQuery bool) lessFunc {
	switch by {
	case sortby.Relevance:
		if hasQuery {
			return byRelevance
		}
		return byMembership
	case sortby.Rating:
		return byRating
	case sortby.Newest:
		return byNewest
	case sortby.Name:
		return byName
	case sortby.Distance:
		return byDistance
	case sortby.Membership:
		return byMembership
	default:
		return byMembership
	}
}

// byRelevance: score desc, then membership priority asc, then rating desc.
func byRelevance(a, b *candidate) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	pa, pb := a.biz.OwnerTier.Priority(), b.biz.OwnerTier.Priority()
	if pa != pb {
		return pa < pb
	}
	return a.summary.Average > b.summary.Average
}

// byMembership: membership priority asc, then rating desc.
func byMembership(a, b *candidate) bool {
	pa, pb := a.biz.OwnerTier.Priority(), b.biz.OwnerTier.Priority()
	if pa != pb {
		return pa < pb
	}
	return a.summary.Average > b.summary.Average
}

// byRating: rating desc with zero-review businesses last, then priority asc.
func byRating(a, b *candidate) bool {
	aZero, bZero := a.summary.Count == 0, b.summary.Count == 0
	if aZero != bZero {
		return bZero
	}
	if a.summary.Average != b.summary.Average {
		return a.summary.Average > b.summary.Average
	}
	return a.biz.OwnerTier.Priority() < b.biz.OwnerTier.Priority()
}

// byNewest: creation timestamp desc, then id desc.
func byNewest(a, b *candidate) bool {
	if !a.biz.CreatedAt.Equal(b.biz.CreatedAt) {
		return a.biz.CreatedAt.After(b.biz.CreatedAt)
	}
	return a.biz.ID > b.biz.ID
}

// byName: case-insensitive name asc, then id asc.
func byName(a, b *candidate) bool {
	na, nb := strings.ToLower(a.biz.Name), strings.ToLower(b.biz.Name)
	if na != nb {
		return na < nb
	}
	return a.biz.ID < b.biz.ID
}

// byDistance: distance asc, then membership priority asc. Candidates with
// unknown distance sort last; the radius stage normally excludes them already.
func byDistance(a, b *candidate) bool {
	aKnown, bKnown := a.distance != nil, b.distance != nil
	if aKnown != bKnown {
		return aKnown
	}
	if aKnown && *a.distance != *b.distance {
		return *a.distance < *b.distance
	}
	return a.biz.OwnerTier.Priority() < b.biz.OwnerTier.Priority()
}
