package realtime

import (
	"errors"
	"io"
	"time"

	"github.com/Pato1236897/Golf/logging"
	"golang.org/x/net/websocket"
)

// ServeConn registers a websocket connection and blocks until the client goes away.
// Inbound frames are read and discarded.
func (h *Hub) ServeConn(conn *websocket.Conn, matchID, userID string, writeTimeout time.Duration) {
	defer func() {
		_ = conn.Close()
	}()

	client, err := h.Register(matchID, userID, NewPeer(conn, writeTimeout))
	if err != nil {
		logging.Log.Warnf("HUB: refusing connection for match %s user %s: %v", matchID, userID, err)
		return
	}
	defer h.Unregister(client)

	for {
		var frame []byte
		if err := websocket.Message.Receive(conn, &frame); err != nil {
			if !errors.Is(err, io.EOF) {
				logging.Log.Debugf("HUB: read from connection %s ended: %v", client.ID, err)
			}
			return
		}
		logging.Log.Debugf("HUB: ignoring %d byte frame from connection %s", len(frame), client.ID)
	}
}
