package spectate

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kamstrup/intmap"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/blockfall/engine"
)

const (
	sendBuffer   = 32
	writeTimeout = 5 * time.Second
)

// Message is one websocket frame. The greeting sent on connect carries only the snapshot.
type Message struct {
	Step     string          `json:"step,omitempty"`
	Cleared  []int           `json:"cleared,omitempty"`
	Snapshot engine.Snapshot `json:"snapshot"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans step messages out to connected spectators and keeps the latest snapshot
type Hub struct {
	mu      sync.Mutex
	clients *intmap.Map[uint64, *client]
	nextID  uint64
	latest  []byte
	closed  bool
	log     zerolog.Logger
}

// NewHub creates an empty hub
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: intmap.New[uint64, *client](16),
		log:     log,
	}
}

// Publish replaces the latest snapshot without notifying clients
func (h *Hub) Publish(snap engine.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		h.log.Error().Err(err).Msg("marshal snapshot")
		return
	}
	h.mu.Lock()
	h.latest = data
	h.mu.Unlock()
}

// Observe records the snapshot and broadcasts the step; clients with a full buffer are dropped
func (h *Hub) Observe(out engine.Outcome, snap engine.Snapshot) {
	msg, err := json.Marshal(Message{Step: out.Kind.String(), Cleared: out.Cleared, Snapshot: snap})
	if err != nil {
		h.log.Error().Err(err).Msg("marshal step")
		return
	}
	latest, err := json.Marshal(snap)
	if err != nil {
		h.log.Error().Err(err).Msg("marshal snapshot")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.latest = latest

	var slow []uint64
	h.clients.ForEach(func(id uint64, c *client) bool {
		select {
		case c.send <- msg:
		default:
			slow = append(slow, id)
		}
		return true
	})
	for _, id := range slow {
		h.log.Warn().Uint64("client", id).Msg("dropping slow spectator")
		h.removeLocked(id)
	}
}

// Latest returns the most recent snapshot JSON, nil before the first publish
func (h *Hub) Latest() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latest
}

// Len returns the number of connected spectators
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.clients.Len()
}

// Close disconnects every spectator and refuses new ones
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	var ids []uint64
	h.clients.ForEach(func(id uint64, _ *client) bool {
		ids = append(ids, id)
		return true
	})
	for _, id := range ids {
		h.removeLocked(id)
	}
	h.closed = true
}

// serve registers conn and pumps messages until the client goes away
func (h *Hub) serve(conn *websocket.Conn) {
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	h.nextID++
	id := h.nextID
	if h.latest != nil {
		greeting, err := json.Marshal(struct {
			Snapshot json.RawMessage `json:"snapshot"`
		}{h.latest})
		if err == nil {
			c.send <- greeting
		}
	}
	h.clients.Put(id, c)
	h.mu.Unlock()

	h.log.Info().Uint64("client", id).Str("remote", conn.RemoteAddr().String()).Msg("spectator connected")

	go h.readPump(id, c)
	h.writePump(id, c)
}

// writePump owns writes to the connection; it ends when send is closed or a write fails
func (h *Hub) writePump(id uint64, c *client) {
	defer c.conn.Close()

	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.log.Debug().Err(err).Uint64("client", id).Msg("spectator write failed")
			h.remove(id)
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeTimeout))
}

// readPump discards client frames and unregisters on disconnect
func (h *Hub) readPump(id uint64, c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.remove(id)
			return
		}
	}
}

func (h *Hub) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(id)
}

func (h *Hub) removeLocked(id uint64) {
	c, ok := h.clients.Get(id)
	if !ok {
		return
	}
	h.clients.Del(id)
	close(c.send)
	h.log.Info().Uint64("client", id).Msg("spectator disconnected")
}
