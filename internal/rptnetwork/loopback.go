package rptnetwork

import "sync"

// LoopbackTransport is an in-memory rptnetwork.Transport with no sockets
// at all: Connect/Inject feed input directly into a Backend, and Sent
// records every outbound buffer for inspection. Grounded on the
// net.Pipe-based loopback pair wsbackend's frame tests dial against,
// generalized here to stand in for an entire listener rather than one
// connection, for --testing's local smoke runs and integration tests.
type LoopbackTransport struct {
	mu   sync.Mutex
	sent map[uint64][][]byte
	live map[uint64]bool
}

// NewLoopbackTransport returns an empty transport ready to be installed on
// a Backend.
func NewLoopbackTransport() *LoopbackTransport {
	return &LoopbackTransport{
		sent: make(map[uint64][][]byte),
		live: make(map[uint64]bool),
	}
}

// Connect registers token as live and notifies backend of the connection,
// as if a socket had just been accepted.
func (l *LoopbackTransport) Connect(backend *Backend, token uint64, remoteAddr string) {
	l.mu.Lock()
	l.live[token] = true
	l.mu.Unlock()
	backend.NotifyConnected(token, remoteAddr)
}

// Inject feeds one raw line into backend as if token had sent it.
func (l *LoopbackTransport) Inject(backend *Backend, token uint64, line string) {
	backend.NotifyMessage(token, line)
}

// Send implements rptnetwork.Transport by recording the buffer instead of
// writing it to a socket.
func (l *LoopbackTransport) Send(token uint64, data []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	l.sent[token] = append(l.sent[token], buf)
	return nil
}

// CloseClient implements rptnetwork.Transport by marking token dead.
func (l *LoopbackTransport) CloseClient(token uint64) {
	l.mu.Lock()
	delete(l.live, token)
	l.mu.Unlock()
}

// Sent returns every buffer handed to Send for token, in order.
func (l *LoopbackTransport) Sent(token uint64) [][]byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([][]byte(nil), l.sent[token]...)
}
