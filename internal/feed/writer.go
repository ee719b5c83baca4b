package feed

import (
	"time"

	"github.com/gorilla/websocket"
)

const writeTimeout = 5 * time.Second

// clientWriter serializes writes to a single connection through a buffered
// channel so the hub never blocks on a slow socket.
type clientWriter struct {
	conn        *websocket.Conn
	sendChannel chan []byte
	done        chan struct{}
}

func newClientWriter(conn *websocket.Conn) *clientWriter {
	cw := &clientWriter{
		conn:        conn,
		sendChannel: make(chan []byte, 16),
		done:        make(chan struct{}),
	}
	go cw.run()
	return cw
}

func (cw *clientWriter) run() {
	for {
		select {
		case msg, ok := <-cw.sendChannel:
			if !ok {
				return
			}
			cw.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := cw.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-cw.done:
			return
		}
	}
}

func (cw *clientWriter) stop() {
	close(cw.done)
	cw.conn.Close()
}
