package wsbackend

import (
	"net"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

// readClientOrServerFrame and writeClientFrame exercise the client side of
// the WS framing so these tests drive both halves of the protocol that
// wsbackend.go only implements the server side of.

func readClientOrServerFrame(conn net.Conn) ([]byte, ws.OpCode, error) {
	return wsutil.ReadServerData(conn)
}

func writeClientFrame(conn net.Conn, data []byte) error {
	return wsutil.WriteClientMessage(conn, ws.OpText, data)
}
