package chi

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/vetdirhq/vetdir/internal/domain/search/request"
)

// filterParamPrefix marks flat faceted-filter query parameters, e.g.
// filter_verified=true or filter_min_rating=4.5.
const filterParamPrefix = "filter_"

// rawFromQuery maps URL query parameters onto a raw search request. Parsing
// here is permissive to match request normalization: malformed numbers become
// zero and are defaulted downstream, never rejected.
func rawFromQuery(q url.Values) request.Raw {
	return request.Raw{
		Query:       q.Get("query"),
		Location:    q.Get("location"),
		RadiusMiles: atoiLenient(q.Get("radius")),
		CategoryIDs: parseIDList(q.Get("category_ids")),
		Filters:     filterParams(q),
		SortBy:      q.Get("sort_by"),
		Page:        atoiLenient(q.Get("page")),
		PerPage:     atoiLenient(q.Get("per_page")),
	}
}

// filterParams collects filter_-prefixed parameters; unknown keys are
// ignored by the filter parser.
func filterParams(q url.Values) map[string]string {
	var out map[string]string
	for key, vals := range q {
		name, ok := strings.CutPrefix(key, filterParamPrefix)
		if !ok || name == "" || len(vals) == 0 {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[name] = vals[0]
	}
	return out
}

// parseIDList parses a comma separated id list, skipping malformed entries.
func parseIDList(s string) []int64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []int64
	for _, part := range strings.Split(s, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		out = append(out, id)
	}
	return out
}

func atoiLenient(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
