package domain

import (
	"errors"
	"fmt"
)

// ErrDimensionMismatch is returned when an embedding's length does not match
// the dimensionality of the store it is inserted into. It is fatal to that
// insert, not to the store.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// ServiceError wraps a failure from an external service such as the
// embedding or completion API. It is recoverable: ingestion skips the
// offending item and answering returns an empty result.
type ServiceError struct {
	Service string
	Err     error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s service: %v", e.Service, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
