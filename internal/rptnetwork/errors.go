package rptnetwork

import (
	"errors"
	"fmt"
)

// BadClientMessage is a client protocol error: the RPTL line received from
// a session didn't match any command legal in its current mode. Caught
// inside the backend; the offending session is killed with this as the
// disconnect reason, it never reaches the executor as an error.
type BadClientMessage struct {
	Token uint64
	Line  string
}

func (e *BadClientMessage) Error() string {
	return fmt.Sprintf("rptnetwork: bad client message from token %d: %s", e.Token, e.Line)
}

// ErrTokenInUse names the case of a transport reusing a token still
// tracked as alive — a transport bug, since tokens must be unique per
// connection. addClient does not return it: it logs the reuse and ignores
// the new connection.
var ErrTokenInUse = errors.New("rptnetwork: client token already in use")

// ErrUnknownToken names the case of the transport reporting activity for a
// token the backend never saw added. The Backend does not return it: such
// activity yields a None input event.
var ErrUnknownToken = errors.New("rptnetwork: unknown client token")
