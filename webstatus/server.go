// Package webstatus exposes a running search over HTTP: a JSON status
// endpoint and a websocket stream of snapshots, for headless search
// runs where a human wants to watch progress without a terminal
// attached. The server never calls into a search.Searcher directly —
// the goroutine driving Step publishes each update through Publish,
// and the HTTP handlers only ever read the most recently published
// value, since a Searcher is not safe for concurrent use.
package webstatus

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/telepair/lifesrc/engine/search"
)

// Update is one snapshot of search progress, handed to Publish by the
// goroutine that owns the Searcher.
type Update struct {
	Status     search.Status   `json:"status"`
	Stats      search.Stats    `json:"stats"`
	Population int             `json:"population"`
	Ceiling    int             `json:"ceiling"`
	Snapshot   search.Snapshot `json:"snapshot"`
}

const (
	writeWait      = 5 * time.Second
	pingPeriod     = 30 * time.Second
	broadcastDepth = 8
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server serves the current state of one search to any number of HTTP
// and websocket clients.
type Server struct {
	log *slog.Logger

	mu      sync.RWMutex
	latest  Update
	hasData bool

	clientsMu sync.Mutex
	clients   map[*client]struct{}

	router *mux.Router
}

type client struct {
	conn *websocket.Conn
	send chan Update
	done chan struct{}
}

// NewServer builds a Server with no data published yet. Call Publish
// as the search progresses, and ListenAndServe (or Handler, to mount
// it inside another router) to start serving.
func NewServer(log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		log:     log,
		clients: make(map[*client]struct{}),
	}
	r := mux.NewRouter()
	r.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.handleWebsocket).Methods(http.MethodGet)
	s.router = r
	return s
}

// Handler returns the server's http.Handler, for mounting under a
// caller-owned http.Server or test server.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe blocks serving on addr until ctx is canceled or an
// unrecoverable server error occurs.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{Addr: addr, Handler: s.router}

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeWait)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// Publish records u as the latest known state and fans it out to every
// connected websocket client. Must be called only from the goroutine
// driving the Searcher; Publish itself never touches the Searcher.
func (s *Server) Publish(u Update) {
	s.mu.Lock()
	s.latest = u
	s.hasData = true
	s.mu.Unlock()

	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for c := range s.clients {
		select {
		case c.send <- u:
		default:
			s.log.Warn("dropping update for slow websocket client")
		}
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	u, ok := s.latest, s.hasData
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err := json.NewEncoder(w).Encode(u); err != nil {
		s.log.Error("failed to encode status response", "error", err)
	}
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade failed", "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan Update, broadcastDepth), done: make(chan struct{})}
	s.addClient(c)
	defer s.removeClient(c)

	// The connection must be read from for control frames (close, pong)
	// to be processed; this client never sends data, so the content of
	// each message is discarded and only the error return matters.
	go func() {
		defer close(c.done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	s.mu.RLock()
	u, ok := s.latest, s.hasData
	s.mu.RUnlock()
	if ok {
		c.send <- u
	}

	s.writePump(c)
}

func (s *Server) addClient(c *client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[c] = struct{}{}
}

func (s *Server) removeClient(c *client) {
	s.clientsMu.Lock()
	delete(s.clients, c)
	s.clientsMu.Unlock()
	_ = c.conn.Close()
}

// writePump drains c.send to the websocket connection until the
// connection breaks, pinging periodically to detect dead peers.
func (s *Server) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case u, open := <-c.send:
			if !open {
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteJSON(u); err != nil {
				s.log.Debug("websocket write failed, closing", "error", err)
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
