package geo

import "math"

// Calculator computes the distance in miles between two points. Implementations
// must agree with the haversine baseline within rounding tolerance, so the
// radius predicate can be swapped without changing search behavior.
type Calculator interface {
	MilesBetween(a, b *Point) (float64, bool)
	Name() string
}

// Strategy names accepted in config.
const (
	StrategyHaversine = "haversine"
	StrategyCosines   = "cosines"
)

// NewCalculator selects a distance strategy by name. Unknown names fall back
// to the haversine baseline. Selection happens once at startup, not per call.
func NewCalculator(name string) Calculator {
	if name == StrategyCosines {
		return cosines{}
	}
	return Haversine{}
}

// Haversine is the mandatory baseline calculator.
type Haversine struct{}

// MilesBetween implements Calculator via the haversine formula.
func (Haversine) MilesBetween(a, b *Point) (float64, bool) { return MilesBetween(a, b) }

// Name implements Calculator.
func (Haversine) Name() string { return StrategyHaversine }

// cosines uses the spherical law of cosines. Cheaper per call, slightly less
// accurate for near-antipodal points; agrees with haversine within rounding
// tolerance at directory-search distances.
type cosines struct{}

func (cosines) Name() string { return StrategyCosines }

func (cosines) MilesBetween(a, b *Point) (float64, bool) {
	if a == nil || b == nil {
		return 0, false
	}
	if a.Lat == b.Lat && a.Lng == b.Lng {
		return 0, true
	}
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	cosAngle := math.Sin(lat1)*math.Sin(lat2) + math.Cos(lat1)*math.Cos(lat2)*math.Cos(dLng)
	// Numerical noise can push slightly outside [-1,1]
	if cosAngle > 1 {
		cosAngle = 1
	} else if cosAngle < -1 {
		cosAngle = -1
	}
	return round2(EarthRadiusKm * math.Acos(cosAngle) / KmPerMile), true
}
