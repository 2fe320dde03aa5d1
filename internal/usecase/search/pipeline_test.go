package search

import (
	"testing"

	"github.com/vetdirhq/vetdir/internal/domain"
	"github.com/vetdirhq/vetdir/internal/domain/geo"
	"github.com/vetdirhq/vetdir/internal/domain/membership"
	"github.com/vetdirhq/vetdir/internal/domain/search/request"
	"github.com/vetdirhq/vetdir/internal/domain/search/result"
)

func candidates(bizzes ...domain.Business) []candidate {
	out := make([]candidate, len(bizzes))
	for i, b := range bizzes {
		out[i] = candidate{biz: b}
	}
	return out
}

func ids(cands []candidate) []int64 {
	out := make([]int64, len(cands))
	for i, c := range cands {
		out[i] = c.biz.ID
	}
	return out
}

func runStages(t *testing.T, raw request.Raw, scope locationScope, cands []candidate) ([]candidate, []string) {
	t.Helper()
	req := request.Normalize(raw)
	return runPipeline(cands, buildPipeline(&req, scope))
}

func TestPipeline_StatusGateAlwaysApplies(t *testing.T) {
	cands := candidates(
		biz(1, "Approved Co"),
		biz(2, "Pending Co", status(domain.StatusPending)),
		biz(3, "Suspended Co", status(domain.StatusSuspended)),
	)

	kept, stages := runStages(t, request.Raw{}, locationScope{mode: result.LocationNone}, cands)
	if len(kept) != 1 || kept[0].biz.ID != 1 {
		t.Errorf("kept = %v, want [1]", ids(kept))
	}
	if len(stages) != 1 || stages[0] != stageStatus {
		t.Errorf("stages = %v, want [status] only", stages)
	}
}

func TestPipeline_KeywordStage(t *testing.T) {
	cands := candidates(
		biz(1, "Smith Plumbing Services"),
		biz(2, "Davis Event Planning"),
	)

	kept, stages := runStages(t, request.Raw{Query: "plumbing"}, locationScope{mode: result.LocationNone}, cands)
	if len(kept) != 1 || kept[0].biz.ID != 1 {
		t.Errorf("kept = %v, want [1]", ids(kept))
	}
	if stages[len(stages)-1] != stageKeyword {
		t.Errorf("stages = %v", stages)
	}
}

func TestPipeline_KeywordMatchesDescriptionAndAreas(t *testing.T) {
	desc := biz(1, "Smith Services")
	desc.Description = "Residential PLUMBING repair"
	areas := biz(2, "Jones Co")
	areas.AreasServed = "plumbing for all of Dallas"
	miss := biz(3, "Roofing Experts")

	kept, _ := runStages(t, request.Raw{Query: "plumbing"}, locationScope{mode: result.LocationNone},
		candidates(desc, areas, miss))
	if len(kept) != 2 {
		t.Errorf("kept = %v, want [1 2]", ids(kept))
	}
}

func TestPipeline_CategoryStageORSemantics(t *testing.T) {
	cands := candidates(
		biz(1, "A", withCategories(3)),
		biz(2, "B", withCategories(7, 9)),
		biz(3, "C", withCategories(4)),
	)

	kept, _ := runStages(t, request.Raw{CategoryIDs: []int64{3, 9}}, locationScope{mode: result.LocationNone}, cands)
	if len(kept) != 2 || kept[0].biz.ID != 1 || kept[1].biz.ID != 2 {
		t.Errorf("kept = %v, want [1 2]", ids(kept))
	}
}

func TestPipeline_RadiusStageExcludesUnknownCoordinates(t *testing.T) {
	center := geo.Point{Lat: 32.7767, Lng: -96.7970}
	near := 0.0
	far := 50.0

	cands := []candidate{
		{biz: biz(1, "Near"), distance: &near},
		{biz: biz(2, "Far"), distance: &far},
		{biz: biz(3, "Unknown coords")}, // distance nil
	}

	kept, _ := runStages(t,
		request.Raw{Location: center.String(), RadiusMiles: 10},
		locationScope{mode: result.LocationRadius, point: &center}, cands)
	if len(kept) != 1 || kept[0].biz.ID != 1 {
		t.Errorf("kept = %v, want [1]", ids(kept))
	}
}

func TestPipeline_TextLocationFallback(t *testing.T) {
	cands := candidates(
		biz(1, "A", inCity("Dallas", "TX")),
		biz(2, "B", inCity("Austin", "TX")),
	)

	kept, _ := runStages(t, request.Raw{Location: "dallas"},
		locationScope{mode: result.LocationText}, cands)
	if len(kept) != 1 || kept[0].biz.ID != 1 {
		t.Errorf("kept = %v, want [1]", ids(kept))
	}
}

func TestPipeline_TextLocationMatchesAreasServed(t *testing.T) {
	b := biz(1, "A", inCity("Plano", "TX"))
	b.AreasServed = "Dallas, Fort Worth, Plano"

	kept, _ := runStages(t, request.Raw{Location: "Fort Worth"},
		locationScope{mode: result.LocationText}, candidates(b))
	if len(kept) != 1 {
		t.Error("areas served not matched")
	}
}

func TestPipeline_FlagStage(t *testing.T) {
	verified := biz(1, "A")
	verified.Verified = true
	plain := biz(2, "B")

	kept, _ := runStages(t, request.Raw{Filters: map[string]string{"verified": "true"}},
		locationScope{mode: result.LocationNone}, candidates(verified, plain))
	if len(kept) != 1 || kept[0].biz.ID != 1 {
		t.Errorf("kept = %v, want [1]", ids(kept))
	}
}

func TestPipeline_MilitaryOwnedFlag(t *testing.T) {
	vet := biz(1, "Vet Owned", tier(membership.Veteran))
	verified := biz(2, "Background Verified", tier(membership.Supporter))
	verified.MilitaryVerified = true
	neither := biz(3, "Civilian", tier(membership.Supporter))

	kept, _ := runStages(t, request.Raw{Filters: map[string]string{"military_owned": "1"}},
		locationScope{mode: result.LocationNone}, candidates(vet, verified, neither))
	if len(kept) != 2 {
		t.Fatalf("kept = %v, want [1 2]", ids(kept))
	}
}

func TestPipeline_StateCityFilterCaseInsensitive(t *testing.T) {
	cands := candidates(
		biz(1, "A", inCity("Dallas", "TX")),
		biz(2, "B", inCity("Tulsa", "OK")),
	)

	kept, _ := runStages(t, request.Raw{Filters: map[string]string{"state": "tx"}},
		locationScope{mode: result.LocationNone}, cands)
	if len(kept) != 1 || kept[0].biz.ID != 1 {
		t.Errorf("kept = %v, want [1]", ids(kept))
	}
}

func TestPipeline_MinRatingUsesLiveSummary(t *testing.T) {
	cands := []candidate{
		{biz: biz(1, "Low"), summary: domain.RatingSummary{Average: 3.5, Count: 2}},
		{biz: biz(2, "High"), summary: domain.RatingSummary{Average: 4.7, Count: 3}},
	}

	kept, _ := runStages(t, request.Raw{Filters: map[string]string{"min_rating": "4.5"}},
		locationScope{mode: result.LocationNone}, cands)
	if len(kept) != 1 || kept[0].biz.ID != 2 {
		t.Errorf("kept = %v, want [2]", ids(kept))
	}
}

func TestPipeline_EmployeeBandAndYears(t *testing.T) {
	small := biz(1, "Small Shop")
	small.EmployeeCount = 5
	small.YearsInBusiness = 3
	large := biz(2, "Large Co")
	large.EmployeeCount = 80
	large.YearsInBusiness = 20

	kept, _ := runStages(t, request.Raw{Filters: map[string]string{
		"employee_count":        "large",
		"min_years_in_business": "10",
	}}, locationScope{mode: result.LocationNone}, candidates(small, large))
	if len(kept) != 1 || kept[0].biz.ID != 2 {
		t.Errorf("kept = %v, want [2]", ids(kept))
	}
}

func TestPipeline_StagesRecordedInOrder(t *testing.T) {
	_, stages := runStages(t, request.Raw{
		Query:       "plumbing",
		CategoryIDs: []int64{1},
		Location:    "Dallas",
		Filters:     map[string]string{"verified": "true", "min_rating": "4"},
	}, locationScope{mode: result.LocationText}, nil)

	want := []string{stageStatus, stageKeyword, stageCategory, stageLocation, stageFlags, stageNumeric}
	if len(stages) != len(want) {
		t.Fatalf("stages = %v, want %v", stages, want)
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Errorf("stage[%d] = %s, want %s", i, stages[i], want[i])
		}
	}
}
