package wsbackend

import (
	"fmt"
	"net"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

// upgrade performs the server-side WS handshake on an already-accepted raw
// TCP (or TLS) connection. Unlike ws.UpgradeHTTP, this works against a bare
// net.Conn — the listener here is not an HTTP server, matching the RPTL
// transport's "text lines over a socket" model rather than a REST API.
func upgrade(conn net.Conn) error {
	_, err := ws.Upgrade(conn)
	return err
}

// readTextFrame blocks for the next complete WS text message and returns
// it as a string. Control frames (ping/pong/close) are handled internally
// by wsutil and never surface here.
func readTextFrame(conn net.Conn) (string, error) {
	data, opCode, err := wsutil.ReadClientData(conn)
	if err != nil {
		return "", err
	}
	if opCode == ws.OpClose {
		return "", fmt.Errorf("wsbackend: client sent close frame")
	}
	return string(data), nil
}

// writeTextFrame sends data as a single WS text frame.
func writeTextFrame(conn net.Conn, data []byte) error {
	return wsutil.WriteServerMessage(conn, ws.OpText, data)
}
