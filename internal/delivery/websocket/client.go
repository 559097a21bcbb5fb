package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"storykeep/internal/search"
	"storykeep/internal/session"
)

// Client is one live search connection.
type Client struct {
	ID     uuid.UUID
	UserID int64

	sess      *session.Session
	conn      *websocket.Conn
	manager   *Manager
	debouncer *search.Debouncer

	mu     sync.Mutex
	send   chan []byte
	closed bool
	// generation counts received queries; results of older ones are dropped
	generation uint64
}

// nextGeneration records a new query and returns its generation.
func (c *Client) nextGeneration() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	return c.generation
}

// enqueue drops the message when the client is gone or too slow. Results of
// generation gen are dropped once a newer query has arrived.
func (c *Client) enqueue(gen uint64, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if gen != c.generation {
		c.manager.logger.Debug("Dropping stale search results", zap.String("clientID", c.ID.String()), zap.Uint64("generation", gen))
		return
	}
	select {
	case c.send <- data:
	default:
		c.manager.logger.Warn("Client send buffer full, dropping results", zap.String("clientID", c.ID.String()))
	}
}

func (c *Client) close() {
	c.debouncer.Stop()
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *Client) readPump() {
	defer func() {
		c.manager.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.manager.logger.Warn("Unexpected close", zap.String("clientID", c.ID.String()), zap.Error(err))
			}
			return
		}

		var q Query
		if err := json.Unmarshal(message, &q); err != nil {
			c.manager.logger.Debug("Ignoring malformed query", zap.String("clientID", c.ID.String()), zap.Error(err))
			continue
		}
		query := q.Query
		gen := c.nextGeneration()
		c.debouncer.Trigger(func() { c.manager.evaluate(c, gen, query) })
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
