package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrBusinessNotFound signals a missing business record.
	ErrBusinessNotFound = errors.New("business not found")
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrGeocodeUnavailable signals that the geocoding provider failed or timed out.
	// The search pipeline degrades to text-based location matching on this error.
	ErrGeocodeUnavailable = errors.New("geocoding unavailable")
	// ErrNoGeocodeResults signals that the provider found no match for the input.
	ErrNoGeocodeResults = errors.New("no geocoding results")
	// ErrStoreUnavailable signals an entity store connectivity failure.
	ErrStoreUnavailable = errors.New("store unavailable")
)
