package rptcore

import "errors"

// Programmer-error sentinels: these must never occur from correct code
// driving the core (spec.md §7). They are not caught by the executor.
var (
	ErrEmptyEventsQueue = errors.New("rptcore: service events queue is empty")
	ErrBadWatchedToken  = errors.New("rptcore: timer already watched or not watched by this service")
)

// Protocol-error sentinels: raised while dispatching a service request,
// caught by the executor and translated into a disconnection.
var (
	ErrInvalidRequestFormat = errors.New("rptcore: invalid service request format")
	ErrServiceNotFound      = errors.New("rptcore: service not found")
)

// ErrNameAlreadyRegistered is returned by NewSERProtocol when two services
// share the same name.
var ErrNameAlreadyRegistered = errors.New("rptcore: service name already registered")
