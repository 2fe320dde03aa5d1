package filters

import (
	"strconv"
	"strings"
)

// Band buckets businesses by employee headcount.
type Band string

// Employee count bands: small=1-10, medium=11-50, large=51+.
const (
	BandSmall  Band = "small"
	BandMedium Band = "medium"
	BandLarge  Band = "large"
)

// Matches reports whether an employee count falls in the band.
// A zero/unknown count matches no band.
func (b Band) Matches(count int) bool {
	switch b {
	case BandSmall:
		return count >= 1 && count <= 10
	case BandMedium:
		return count >= 11 && count <= 50
	case BandLarge:
		return count >= 51
	}
	return false
}

// Recognized filter keys.
const (
	KeyVerified         = "verified"
	KeyFeatured         = "featured"
	KeyEmergencyService = "emergency_service"
	KeyInsured          = "insured"
	KeyBonded           = "bonded"
	KeyLicensed         = "licensed"
	KeyMilitaryOwned    = "military_owned"
	KeyMinRating        = "min_rating"
	KeyState            = "state"
	KeyCity             = "city"
	KeyEmployeeCount    = "employee_count"
	KeyMinYears         = "min_years_in_business"
)

// Filters holds the faceted restrictions of a search. The zero value applies
// nothing. A false boolean flag means "not filtered", matching the permissive
// contract: absent or malformed values never fail a search.
type Filters struct {
	Verified         bool
	Featured         bool
	EmergencyService bool
	Insured          bool
	Bonded           bool
	Licensed         bool
	MilitaryOwned    bool

	// MinRating in (0, 5]; 0 means not filtered.
	MinRating float64
	State     string
	City      string
	// EmployeeBand empty means not filtered.
	EmployeeBand Band
	// MinYears 0 means not filtered.
	MinYears int
}

// Parse builds Filters from raw string values, leniently. Unrecognized keys
// and unparseable values are dropped, never rejected.
func Parse(values map[string]string) Filters {
	var f Filters
	for key, raw := range values {
		val := strings.TrimSpace(raw)
		if val == "" {
			continue
		}
		switch key {
		case KeyVerified:
			f.Verified = truthy(val)
		case KeyFeatured:
			f.Featured = truthy(val)
		case KeyEmergencyService:
			f.EmergencyService = truthy(val)
		case KeyInsured:
			f.Insured = truthy(val)
		case KeyBonded:
			f.Bonded = truthy(val)
		case KeyLicensed:
			f.Licensed = truthy(val)
		case KeyMilitaryOwned:
			f.MilitaryOwned = truthy(val)
		case KeyMinRating:
			if r, err := strconv.ParseFloat(val, 64); err == nil && r > 0 && r <= 5 {
				f.MinRating = r
			}
		case KeyState:
			f.State = val
		case KeyCity:
			f.City = val
		case KeyEmployeeCount:
			switch b := Band(strings.ToLower(val)); b {
			case BandSmall, BandMedium, BandLarge:
				f.EmployeeBand = b
			}
		case KeyMinYears:
			if y, err := strconv.Atoi(val); err == nil && y > 0 {
				f.MinYears = y
			}
		}
	}
	return f
}

// Applied lists the keys that will restrict results, for search metadata.
func (f Filters) Applied() []string {
	var keys []string
	add := func(on bool, key string) {
		if on {
			keys = append(keys, key)
		}
	}
	add(f.Verified, KeyVerified)
	add(f.Featured, KeyFeatured)
	add(f.EmergencyService, KeyEmergencyService)
	add(f.Insured, KeyInsured)
	add(f.Bonded, KeyBonded)
	add(f.Licensed, KeyLicensed)
	add(f.MilitaryOwned, KeyMilitaryOwned)
	add(f.MinRating > 0, KeyMinRating)
	add(f.State != "", KeyState)
	add(f.City != "", KeyCity)
	add(f.EmployeeBand != "", KeyEmployeeCount)
	add(f.MinYears > 0, KeyMinYears)
	return keys
}

// IsZero reports whether no filter is applied.
func (f Filters) IsZero() bool {
	return f == Filters{}
}

func truthy(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "t", "yes", "on":
		return true
	}
	return false
}
