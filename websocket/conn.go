package websocket

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/CuriouzK0d3r/cli-novel-writer-sub006/domain"
	"github.com/CuriouzK0d3r/cli-novel-writer-sub006/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// Conn adapts one gorilla connection to a domain.Session. The room and user
// pair starts unset and is written only by the router on a successful join.
type Conn struct {
	id      string
	ws      *websocket.Conn
	send    chan []byte
	handler domain.Handler

	mu     sync.Mutex
	room   string
	user   string
	closed bool
}

func NewConn(id string, ws *websocket.Conn, handler domain.Handler) *Conn {
	return &Conn{
		id:      id,
		ws:      ws,
		send:    make(chan []byte, 256),
		handler: handler,
	}
}

func (c *Conn) ID() string { return c.id }

func (c *Conn) Room() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.room
}

func (c *Conn) User() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

func (c *Conn) SetRoom(room, user string) {
	c.mu.Lock()
	c.room, c.user = room, user
	c.mu.Unlock()
}

func (c *Conn) ClearRoom() {
	c.mu.Lock()
	c.room, c.user = "", ""
	c.mu.Unlock()
}

// Send queues data without blocking. A closed session or a saturated send
// buffer fails the write, which the hub treats as a departure.
func (c *Conn) Send(data []byte) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return domain.ErrWriteFailed
	}

	select {
	case c.send <- data:
		return nil
	default:
		return domain.ErrWriteFailed
	}
}

func (c *Conn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()
	return c.ws.Close()
}

func (c *Conn) Start() {
	metrics.ActiveSessions.Inc()
	go c.writePump()
	go c.readPump()
}

func (c *Conn) readPump() {
	defer func() {
		c.handler.Disconnect(c)
		c.Close()
		metrics.ActiveSessions.Dec()
	}()

	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, frame, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("read error", "sessionId", c.id, "error", err)
			}
			return
		}

		c.handler.Handle(c, frame)
	}
}

func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
