package health

import "context"

// StorePinger checks entity store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// GeocodeChecker checks geocoding provider availability.
type GeocodeChecker interface {
	HealthCheck(ctx context.Context) error
}
