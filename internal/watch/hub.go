// Package watch streams the positions of a running match to websocket
// spectators.
package watch

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/AchilleMorenville/LINFO1361-Shobu/internal/shobu"
)

const wsIdlePingInterval = 30 * time.Second

type message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// SubBoard lists the cells held by each player on one sub-board.
type SubBoard struct {
	White []int `json:"white"`
	Black []int `json:"black"`
}

type StatePayload struct {
	Boards  [shobu.NumSubBoards]SubBoard `json:"boards"`
	Mover   string                       `json:"mover"`
	Ply     int                          `json:"ply"`
	Boring  int                          `json:"boring"`
	Utility int                          `json:"utility"`
	Action  string                       `json:"action,omitempty"`
	Display string                       `json:"display"`
}

func NewStatePayload(s *shobu.State, a *shobu.Action) StatePayload {
	b := s.Board()
	p := StatePayload{
		Mover:   s.Mover().String(),
		Ply:     s.Ply(),
		Boring:  s.BoringCount(),
		Utility: s.Utility(),
		Display: b.String(),
	}
	if a != nil {
		p.Action = a.String()
	}
	for sub := range p.Boards {
		p.Boards[sub].White = cellInts(b, sub, shobu.White)
		p.Boards[sub].Black = cellInts(b, sub, shobu.Black)
	}
	return p
}

func cellInts(b shobu.Board, sub int, p shobu.Player) []int {
	stones, err := b.Stones(sub, p)
	if err != nil {
		panic(err) // sub and p come from fixed ranges
	}
	cells := make([]int, len(stones))
	for i, c := range stones {
		cells[i] = int(c)
	}
	return cells
}

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub fans states out to every registered spectator. A spectator that
// cannot keep up misses messages instead of stalling the match.
type Hub struct {
	mu        sync.Mutex
	clients   map[*Client]struct{}
	broadcast chan StatePayload
	last      []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*Client]struct{}),
		broadcast: make(chan StatePayload, 32),
	}
}

func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case payload := <-h.broadcast:
			data, err := json.Marshal(message{Type: "state", Payload: mustMarshal(payload)})
			if err != nil {
				log.Printf("[watch] encode state: %v", err)
				continue
			}
			h.mu.Lock()
			h.last = data
			for client := range h.clients {
				client.trySend(data)
			}
			h.mu.Unlock()
		}
	}
}

// Register adds c and sends it the latest state, if any.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	if h.last != nil {
		c.trySend(h.last)
	}
	h.mu.Unlock()
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) NumClients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast queues s for every spectator. a is the action that led to s,
// nil for the initial state. It never blocks.
func (h *Hub) Broadcast(s *shobu.State, a *shobu.Action) {
	select {
	case h.broadcast <- NewStatePayload(s, a):
	default:
	}
}

func (c *Client) trySend(data []byte) {
	select {
	case c.send <- data:
	default:
	}
}

// ServeHTTP upgrades the request to a websocket and keeps it registered
// until the spectator disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[watch] upgrade: %v", err)
		return
	}
	client := &Client{hub: h, conn: conn, send: make(chan []byte, 16)}
	h.Register(client)

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send); err != nil {
			log.Printf("[watch] write: %v", err)
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.Unregister(client)
			return
		}
	}
}

func writeWSWithHeartbeat(conn *websocket.Conn, send <-chan []byte) error {
	ticker := time.NewTicker(wsIdlePingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()
	pingPayload := mustMarshal(message{Type: "ping"})

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				return conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < wsIdlePingInterval {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, pingPayload); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}

func mustMarshal(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
