package realtime

import (
	"encoding/json"
	"net/http"
	"time"

	"roomgrid/pkg/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 4096
)

// Client is one websocket connection registered with a Hub.
type Client struct {
	id   string
	hub  *Hub
	send chan []byte
}

func NewClient(hub *Hub) *Client {
	return &Client{
		id:   uuid.NewString(),
		hub:  hub,
		send: make(chan []byte, sendBuffer),
	}
}

func (c *Client) ID() string {
	return c.id
}

// Send returns the client's outbound channel. The hub closes it when the
// client is dropped.
func (c *Client) Send() <-chan []byte {
	return c.send
}

// Handler upgrades requests to websocket connections fed by hub. An empty
// allowedOrigins or one containing "*" accepts every origin.
func Handler(hub *Hub, allowedOrigins []string, log *logger.Logger) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn("Websocket upgrade failed", "error", err, "remote_addr", r.RemoteAddr)
			return
		}

		client := NewClient(hub)
		if !hub.Register(client) {
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
			conn.Close()
			return
		}

		if welcome, err := NewMessage(TypeWelcome, WelcomePayload{ClientID: client.id}).JSON(); err == nil {
			hub.SendTo(client, welcome)
		}

		go client.writePump(conn)
		go client.readPump(conn, log)
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = struct{}{}
	}
	if len(set) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

func (c *Client) writePump(conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) readPump(conn *websocket.Conn, log *logger.Logger) {
	defer func() {
		c.hub.Unregister(c)
		conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn("Websocket read error", "client_id", c.id, "error", err)
			}
			return
		}
		c.handle(data)
	}
}

// handle answers client pings. Anything else gets an error frame.
func (c *Client) handle(data []byte) {
	var in inbound
	reply := NewMessage(TypePong, nil)
	if err := json.Unmarshal(data, &in); err != nil || in.Type != TypePing {
		reply = NewMessage(TypeError, ErrorPayload{Message: "unsupported message"})
	}

	if out, err := reply.JSON(); err == nil {
		c.hub.SendTo(c, out)
	}
}
