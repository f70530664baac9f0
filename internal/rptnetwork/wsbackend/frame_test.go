package wsbackend

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/gobwas/ws"
)

// loopbackPair returns a server-side (already-upgraded) and a client-side
// net.Conn connected over real TCP, letting these tests exercise the
// actual gobwas/ws wire framing instead of stubbing it out.
func loopbackPair(t *testing.T) (server, client net.Conn) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("net.Listen() error = %v", err)
	}
	defer ln.Close()

	serverCh := make(chan net.Conn, 1)
	errCh := make(chan error, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			errCh <- err
			return
		}
		if err := upgrade(conn); err != nil {
			errCh <- err
			return
		}
		serverCh <- conn
	}()

	clientConn, _, _, err := ws.Dial(context.Background(), "ws://"+ln.Addr().String()+"/")
	if err != nil {
		t.Fatalf("ws.Dial() error = %v", err)
	}

	select {
	case conn := <-serverCh:
		return conn, clientConn
	case err := <-errCh:
		t.Fatalf("server-side upgrade error = %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for server-side upgrade")
	}
	return nil, nil
}

func TestWriteTextFrameThenReadTextFrame(t *testing.T) {
	server, client := loopbackPair(t)
	defer server.Close()
	defer client.Close()

	if err := writeTextFrame(server, []byte("LOGGED_IN 42 Alice")); err != nil {
		t.Fatalf("writeTextFrame() error = %v", err)
	}

	data, op, err := readClientOrServerFrame(client)
	if err != nil {
		t.Fatalf("read error = %v", err)
	}
	if op != ws.OpText {
		t.Errorf("opcode = %v, want OpText", op)
	}
	if string(data) != "LOGGED_IN 42 Alice" {
		t.Errorf("payload = %q, want %q", string(data), "LOGGED_IN 42 Alice")
	}
}

func TestReadTextFrameFromClient(t *testing.T) {
	server, client := loopbackPair(t)
	defer server.Close()
	defer client.Close()

	go func() {
		_ = writeClientFrame(client, []byte("LOGIN 42 Alice"))
	}()

	line, err := readTextFrame(server)
	if err != nil {
		t.Fatalf("readTextFrame() error = %v", err)
	}
	if line != "LOGIN 42 Alice" {
		t.Errorf("line = %q, want %q", line, "LOGIN 42 Alice")
	}
}
