package rptnetwork

// session is the transport-level connection state the backend owns. Only
// ever touched from the executor goroutine.
type session struct {
	token uint64
	alive bool

	hasActor bool
	actorUID uint64

	outbound [][]byte // FIFO of shared buffers; each slice may also be queued for other sessions

	remoteAddr string
}

func newSession(token uint64, remoteAddr string) *session {
	return &session{
		token:      token,
		alive:      true,
		remoteAddr: remoteAddr,
	}
}

func (s *session) enqueue(msg []byte) {
	s.outbound = append(s.outbound, msg)
}
