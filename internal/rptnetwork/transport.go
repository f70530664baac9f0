package rptnetwork

import "github.com/sebas/rpt-server/internal/rptcore"

// Transport is what a concrete network backend (internal/rptnetwork/wsbackend)
// implements so the Backend here can flush outbound buffers without knowing
// about sockets, frames, or TLS.
type Transport interface {
	// Send writes one outbound buffer to the connection behind token.
	// Implementations may be called concurrently for different tokens but
	// never twice concurrently for the same token, since Synchronize
	// drains one session's queue at a time from the single executor
	// goroutine.
	Send(token uint64, data []byte) error

	// CloseClient tears down the connection behind token. Idempotent.
	CloseClient(token uint64)
}

// netEventKind tags the kind of notification a transport pushes onto the
// Backend's raw event channel.
type netEventKind int

const (
	netConnected netEventKind = iota
	netMessage
	netDisconnected
	netTimerFired
)

type netEvent struct {
	kind       netEventKind
	token      uint64
	remoteAddr string        // netConnected
	line       string        // netMessage
	err        error         // netDisconnected, may be nil for a clean close
	timer      *rptcore.Timer // netTimerFired
}
