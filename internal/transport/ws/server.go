package ws

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cwrk-planet/activities/internal/domain"
	"github.com/cwrk-planet/activities/pkg/httputil"
)

const (
	defaultPingEvery = 15 * time.Second
	writeWait        = 5 * time.Second
	maxReadBytes     = 1 << 10
)

type ActivityGetter interface {
	GetActivity(ctx context.Context, name string) (domain.Activity, error)
}

type Server struct {
	upgrader   websocket.Upgrader
	hub        *Hub
	activities ActivityGetter

	pingEvery time.Duration
}

// NewServer builds the roster feed. A zero pingEvery selects 15s.
func NewServer(hub *Hub, activities ActivityGetter, pingEvery time.Duration) *Server {
	if pingEvery <= 0 {
		pingEvery = defaultPingEvery
	}
	return &Server{
		hub:        hub,
		activities: activities,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// the landing page is served from the same origin; CORS covers the REST API
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		pingEvery: pingEvery,
	}
}

// GET /ws/activities/{name}
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	name := httputil.PathParam(r, "name")

	activity, err := s.activities.GetActivity(r.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrActivityNotFound) {
			httputil.Detail(w, http.StatusNotFound, "Activity not found")
			return
		}
		slog.Error("ws.HandleWS.GetActivity:", slog.Any("err", err))
		httputil.Detail(w, http.StatusInternalServerError, "internal error")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response
		slog.Warn("ws upgrade failed", "activity", name, "err", err)
		return
	}

	c := newWsConn(conn, activity.Name)
	s.hub.Add(c)
	defer func() {
		s.hub.Remove(c)
		if err := c.Close(); err != nil {
			slog.Debug("ws close failed", "activity", c.activity, "err", err)
		}
	}()

	if err := c.Send(Message{Type: TypeState, Payload: statePayload(activity)}); err != nil {
		slog.Warn("ws send initial state failed", "activity", c.activity, "err", err)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go s.writeLoop(ctx, c)
	s.readLoop(c)
}

// readLoop drains client frames so pong and close control frames are processed.
func (s *Server) readLoop(c *wsConn) {
	c.conn.SetReadLimit(maxReadBytes)
	_ = c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("ws read failed", "activity", c.activity, "err", err)
			}
			return
		}
	}
}

func (s *Server) writeLoop(ctx context.Context, c *wsConn) {
	ticker := time.NewTicker(s.pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := c.ping(); err != nil {
				_ = c.Close()
				return
			}
		case <-ctx.Done():
			return
		case <-c.closed:
			return
		}
	}
}

type wsConn struct {
	conn      *websocket.Conn
	activity  string
	sendMu    chan struct{}
	closed    chan struct{}
	closeOnce sync.Once
	closeErr  error
}

func newWsConn(c *websocket.Conn, activity string) *wsConn {
	return &wsConn{
		conn:     c,
		activity: activity,
		sendMu:   make(chan struct{}, 1),
		closed:   make(chan struct{}),
	}
}

func (c *wsConn) Send(msg Message) error {
	c.sendMu <- struct{}{}
	defer func() { <-c.sendMu }()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))

	return c.conn.WriteJSON(msg)
}

func (c *wsConn) ping() error {
	c.sendMu <- struct{}{}
	defer func() { <-c.sendMu }()

	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// Close does not wait for an in-flight write; closing the socket fails it.
func (c *wsConn) Close() error {
	c.closeOnce.Do(func() {
		close(c.closed)
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}

func (c *wsConn) Activity() string { return c.activity }
