package gerr

import "errors"

var (
	// ErrNotFound is returned when a requested entity has no matching row.
	ErrNotFound = errors.New("not found")

	// ErrHasDependents is returned when a delete is rejected because
	// dependent records still reference the entity.
	ErrHasDependents = errors.New("entity has dependent records")

	// ErrOrderShipped is the precondition fault for deleting an order
	// that a shipment already references.
	ErrOrderShipped = errors.New("order has an associated shipment")

	// ErrUnauthenticated is returned on credential mismatch.
	ErrUnauthenticated = errors.New("not authenticated")
)
