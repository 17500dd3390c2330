package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

// decisionPayload is the per-turn trace streamed to observers and
// kept in the in-memory decision log.
type decisionPayload struct {
	Session       string         `json:"session"`
	Turn          int            `json:"turn"`
	Player        string         `json:"player"`
	Board         []string       `json:"board"`
	BoardHash     uint64         `json:"board_hash"`
	HasMove       bool           `json:"has_move"`
	Move          Point          `json:"move"`
	Breakdown     ScoreBreakdown `json:"breakdown"`
	Stats         ScoreStats     `json:"stats"`
	ElapsedMs     float64        `json:"elapsed_ms"`
	Cache         CacheStats     `json:"cache"`
	OwnCells      int            `json:"own_cells"`
	OpponentCells int            `json:"opponent_cells"`
}

type statusResponse struct {
	Session  string           `json:"session"`
	Strategy Strategy         `json:"strategy"`
	Config   Config           `json:"config"`
	Turns    int              `json:"turns"`
	Cache    CacheStats       `json:"cache"`
	Latest   *decisionPayload `json:"latest,omitempty"`
}

// decisionLog keeps the most recent traces for the HTTP endpoints.
type decisionLog struct {
	mu      sync.Mutex
	limit   int
	entries []decisionPayload
	total   int
}

func newDecisionLog(limit int) *decisionLog {
	if limit <= 0 {
		limit = 64
	}
	return &decisionLog{limit: limit}
}

func (d *decisionLog) Append(payload decisionPayload) {
	d.mu.Lock()
	d.entries = append(d.entries, payload)
	if len(d.entries) > d.limit {
		d.entries = d.entries[len(d.entries)-d.limit:]
	}
	d.total++
	d.mu.Unlock()
}

func (d *decisionLog) Snapshot() []decisionPayload {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]decisionPayload, len(d.entries))
	copy(out, d.entries)
	return out
}

func (d *decisionLog) Latest() (decisionPayload, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.entries) == 0 {
		return decisionPayload{}, false
	}
	return d.entries[len(d.entries)-1], true
}

func (d *decisionLog) Total() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.total
}

// decisionTracer feeds the debug surface. It only exists when a debug
// address is configured; a nil tracer makes every turn a no-op, so the
// referee-facing loop never serializes boards nobody will read.
type decisionTracer struct {
	session string
	logbook *decisionLog
	hub     *Hub
}

func (t *decisionTracer) Record(turn int, state GameState, decision Decision, cache CacheStats) {
	if t == nil {
		return
	}
	payload := buildDecisionPayload(t.session, turn, state, decision, cache)
	t.logbook.Append(payload)
	t.hub.Broadcast(payload)
}

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func (c *Client) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
		// Slow observer; drop rather than stall the hub.
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func serveDecisionWS(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[debug] websocket upgrade failed: %v", err)
		return
	}
	client := &Client{hub: hub, conn: conn, send: make(chan []byte, 64)}
	hub.Register(client)
	go client.writePump()
	go client.readPump()
}

func newDebugRouter(engine *Engine, hub *Hub, logbook *decisionLog, sessionID string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		status := statusResponse{
			Session:  sessionID,
			Strategy: engine.Strategy(),
			Config:   GetConfig(),
			Turns:    logbook.Total(),
			Cache:    engine.CacheStats(),
		}
		if latest, ok := logbook.Latest(); ok {
			status.Latest = &latest
		}
		writeJSON(w, http.StatusOK, status)
	})

	r.Get("/api/decisions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, logbook.Snapshot())
	})

	r.Get("/api/cache", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, engine.CacheStats())
	})

	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveDecisionWS(hub, w, r)
	})

	return r
}

func startDebugServer(ctx context.Context, addr string, handler http.Handler) {
	server := &http.Server{Addr: addr, Handler: handler}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
	go func() {
		log.Printf("[debug] serving on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[debug] server stopped: %v", err)
		}
	}()
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
