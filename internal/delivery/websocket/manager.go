// Package websocket serves search-as-you-type over WebSocket connections.
package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"storykeep/internal/auth"
	"storykeep/internal/model"
	"storykeep/internal/search"
	"storykeep/internal/service"
	"storykeep/internal/session"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 1024
	sendBuffer     = 16
)

var searchEvaluationsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "storykeep_live_search_evaluations_total",
	Help: "Total number of debounced live search evaluations.",
})

// Searcher finds the session user's entries matching a query.
type Searcher interface {
	Search(ctx context.Context, sess *session.Session, query string) []model.Entry
}

// Authenticator turns an access token into a session.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*session.Session, *auth.Claims, error)
}

// Manager tracks live search clients.
type Manager struct {
	searcher Searcher
	authn    Authenticator
	delay    time.Duration
	upgrader websocket.Upgrader
	logger   *zap.Logger

	mu      sync.RWMutex
	clients map[uuid.UUID]*Client
}

func NewManager(searcher Searcher, authn Authenticator, delay time.Duration, allowedOrigins []string, logger *zap.Logger) *Manager {
	m := &Manager{
		searcher: searcher,
		authn:    authn,
		delay:    delay,
		logger:   logger.Named("LiveSearch"),
		clients:  make(map[uuid.UUID]*Client),
	}
	m.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return m
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
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

// Query is a keystroke message from the client.
type Query struct {
	Query string `json:"query"`
}

// Results is pushed after the debounce delay for the latest query.
type Results struct {
	Type     string            `json:"type"`
	Query    string            `json:"query"`
	Entries  []model.EntryView `json:"entries"`
	Messages []string          `json:"messages,omitempty"`
}

// ServeWS authenticates the token query parameter and upgrades the connection.
func (m *Manager) ServeWS(c *gin.Context) {
	sess, _, err := m.authn.Authenticate(c.Request.Context(), c.Query("token"))
	if err != nil {
		m.logger.Warn("Live search connection rejected", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{Code: model.ErrCodeTokenInvalid, Message: "Token is invalid, revoked or malformed"})
		return
	}
	userID, _ := sess.UserID()

	conn, err := m.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		m.logger.Error("WebSocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		ID:        uuid.New(),
		UserID:    userID,
		sess:      sess,
		conn:      conn,
		manager:   m,
		send:      make(chan []byte, sendBuffer),
		debouncer: search.NewDebouncer(m.delay),
	}
	m.register(client)

	go client.writePump()
	go client.readPump()
}

func (m *Manager) register(c *Client) {
	m.mu.Lock()
	m.clients[c.ID] = c
	m.mu.Unlock()
	m.logger.Info("Client connected", zap.String("clientID", c.ID.String()), zap.Int64("userID", c.UserID))
}

func (m *Manager) unregister(c *Client) {
	m.mu.Lock()
	_, ok := m.clients[c.ID]
	delete(m.clients, c.ID)
	m.mu.Unlock()
	if ok {
		c.close()
		m.logger.Info("Client disconnected", zap.String("clientID", c.ID.String()), zap.Int64("userID", c.UserID))
	}
}

// DisconnectUser closes every connection of userID and returns how many were closed.
func (m *Manager) DisconnectUser(userID int64) int {
	m.mu.RLock()
	var targets []*Client
	for _, c := range m.clients {
		if c.UserID == userID {
			targets = append(targets, c)
		}
	}
	m.mu.RUnlock()

	for _, c := range targets {
		m.unregister(c)
	}
	return len(targets)
}

// ClientCount returns the number of connected clients.
func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

// Shutdown disconnects every client.
func (m *Manager) Shutdown() {
	m.mu.RLock()
	all := make([]*Client, 0, len(m.clients))
	for _, c := range m.clients {
		all = append(all, c)
	}
	m.mu.RUnlock()
	for _, c := range all {
		m.unregister(c)
	}
}

// evaluate runs the search for q and queues the result for c unless a newer
// query arrived in the meantime.
func (m *Manager) evaluate(c *Client, gen uint64, q string) {
	searchEvaluationsTotal.Inc()

	col := &service.Collector{}
	ctx := service.WithNotifier(context.Background(), col)
	entries := m.searcher.Search(ctx, c.sess, q)

	views := make([]model.EntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, model.ViewOf(e))
	}
	data, err := json.Marshal(Results{Type: "results", Query: q, Entries: views, Messages: col.Messages()})
	if err != nil {
		m.logger.Error("Failed to marshal search results", zap.Error(err))
		return
	}
	c.enqueue(gen, data)
}
