package notify

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const ( // ping pong (2-way heartbeat) to keep connection alive
	WriteWait      = 10 * time.Second    // max time write a message to the peer
	PongWait       = 60 * time.Second    // max time to wait for pong from peer => no pong = no connection
	PingPeriod     = (PongWait * 9) / 10 // send ping before pong wait expires, 10% margin for jitter
	MaxMessageSize = 512                 // maximum message size allowed from peer
)

// Client is one connected PWA instance for a user. A user may hold several
// clients (phone + desktop); the hub fans fired notifications out to all.
type Client struct {
	ID          string
	UserID      string
	Conn        *websocket.Conn
	SendChannel chan []byte // outbound messages
	Hub         *Hub
}

func NewClient(id, userID string, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		ID:          id,
		UserID:      userID,
		Conn:        conn,
		SendChannel: make(chan []byte, 32),
		Hub:         hub,
	}
}

// clientReply is what the device sends back for permission and install
// prompt round-trips.
type clientReply struct {
	Kind      string `json:"kind"`
	RequestID string `json:"request_id"`
	Result    string `json:"result"`
}

// ReadPump consumes inbound messages (prompt replies, pongs) until the
// connection drops, then unregisters the client.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(PongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(PongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.Hub.log.Warn("websocket read failed", zap.Error(err), zap.String("client_id", c.ID))
			}
			return
		}

		var reply clientReply
		if err := json.Unmarshal(raw, &reply); err != nil {
			c.Hub.log.Warn("unreadable client message", zap.Error(err), zap.String("client_id", c.ID))
			continue
		}
		if reply.Kind == "response" && reply.RequestID != "" {
			c.Hub.resolve(reply.RequestID, reply.Result)
		}
	}
}

// WritePump flushes the send channel to the connection and keeps the
// heartbeat going.
func (c *Client) WritePump() {
	ticker := time.NewTicker(PingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.SendChannel:
			c.Conn.SetWriteDeadline(time.Now().Add(WriteWait))
			if !ok {
				// hub closed the channel
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(WriteWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
