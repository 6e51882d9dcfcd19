package engine

import "errors"

var (
	// ErrInvalidRouteConfig is returned when a route's SLA stage
	// configuration cannot produce a valid deadline chain.
	ErrInvalidRouteConfig = errors.New("engine: invalid route configuration")
	// ErrInvalidCommitteeTypeConfig is returned when a committee type's
	// recurrence rule is malformed.
	ErrInvalidCommitteeTypeConfig = errors.New("engine: invalid committee type configuration")
	// ErrDateOrderingViolation is returned when a caller-supplied date
	// contradicts the computed deadline ordering.
	ErrDateOrderingViolation = errors.New("engine: date ordering violation")
)
