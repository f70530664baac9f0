// Package wsbackend is the concrete WebSocket Network Backend: it accepts
// TCP connections, performs the WS handshake with github.com/gobwas/ws,
// and feeds raw RPTL lines into an *rptnetwork.Backend. See SPEC_FULL.md
// §4.8bis.
package wsbackend

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/sebas/rpt-server/internal/rptnetwork"
)

// maxConcurrentHandshakes bounds in-flight WS upgrades so a burst of
// connection attempts can't exhaust file descriptors before LOGIN's own
// actors-limit check ever runs.
const maxConcurrentHandshakes = 32

// Config controls which address family and security mode one listener
// uses.
type Config struct {
	Port      int
	IPv6      bool        // false = listen on v4, true = listen on v6
	TLSConfig *tls.Config // non-nil enables wss
}

// Listener owns the accept loops and the live connection table; it
// implements rptnetwork.Transport.
type Listener struct {
	backend *rptnetwork.Backend
	sem     *semaphore.Weighted

	nextToken atomic.Uint64

	mu    sync.RWMutex
	conns map[uint64]net.Conn
}

// Listen starts one accept loop per Config entry (typically one for v4,
// one for v6) under a single errgroup, and returns a Listener ready to be
// installed as the backend's Transport along with a stop function that
// closes every listener and waits for the accept loops to exit.
func Listen(backend *rptnetwork.Backend, configs ...Config) (*Listener, func() error, error) {
	l := &Listener{
		backend: backend,
		sem:     semaphore.NewWeighted(maxConcurrentHandshakes),
		conns:   make(map[uint64]net.Conn),
	}

	var listeners []net.Listener
	for _, cfg := range configs {
		network := "tcp4"
		if cfg.IPv6 {
			network = "tcp6"
		}
		addr := fmt.Sprintf(":%d", cfg.Port)

		var ln net.Listener
		var err error
		if cfg.TLSConfig != nil {
			ln, err = tls.Listen(network, addr, cfg.TLSConfig)
		} else {
			ln, err = net.Listen(network, addr)
		}
		if err != nil {
			for _, already := range listeners {
				_ = already.Close()
			}
			return nil, nil, fmt.Errorf("wsbackend: listen %s: %w", network, err)
		}
		listeners = append(listeners, ln)
	}

	g := new(errgroup.Group)
	for _, ln := range listeners {
		ln := ln
		g.Go(func() error { return l.acceptLoop(ln) })
	}

	stop := func() error {
		var firstErr error
		for _, ln := range listeners {
			if err := ln.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		if err := g.Wait(); err != nil && firstErr == nil {
			firstErr = err
		}
		return firstErr
	}

	return l, stop, nil
}

func (l *Listener) acceptLoop(ln net.Listener) error {
	slog.Info("[WSListener] accepting", "addr", ln.Addr().String())
	for {
		conn, err := ln.Accept()
		if err != nil {
			if isClosedErr(err) {
				return nil
			}
			slog.Warn("[WSListener] accept error", "error", err)
			continue
		}
		go l.handshake(conn)
	}
}

func (l *Listener) handshake(conn net.Conn) {
	if err := l.sem.Acquire(context.Background(), 1); err != nil {
		_ = conn.Close()
		return
	}
	defer l.sem.Release(1)

	if err := upgrade(conn); err != nil {
		slog.Debug("[WSListener] handshake failed", "remote", conn.RemoteAddr(), "error", err)
		_ = conn.Close()
		return
	}

	token := l.nextToken.Add(1)

	l.mu.Lock()
	l.conns[token] = conn
	l.mu.Unlock()

	l.backend.NotifyConnected(token, conn.RemoteAddr().String())

	go l.readLoop(token, conn)
}

func (l *Listener) readLoop(token uint64, conn net.Conn) {
	for {
		line, err := readTextFrame(conn)
		if err != nil {
			l.drop(token)
			l.backend.NotifyDisconnected(token, err)
			return
		}
		l.backend.NotifyMessage(token, line)
	}
}

// Send implements rptnetwork.Transport.
func (l *Listener) Send(token uint64, data []byte) error {
	l.mu.RLock()
	conn, ok := l.conns[token]
	l.mu.RUnlock()
	if !ok {
		return fmt.Errorf("wsbackend: send to unknown token %d", token)
	}
	return writeTextFrame(conn, data)
}

// CloseClient implements rptnetwork.Transport.
func (l *Listener) CloseClient(token uint64) {
	l.mu.RLock()
	conn, ok := l.conns[token]
	l.mu.RUnlock()
	if ok {
		_ = conn.Close()
	}
	l.drop(token)
}

func (l *Listener) drop(token uint64) {
	l.mu.Lock()
	delete(l.conns, token)
	l.mu.Unlock()
}

func isClosedErr(err error) bool {
	return errors.Is(err, net.ErrClosed)
}
