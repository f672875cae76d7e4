// Package stream broadcasts yuletree frames to browser viewers over
// WebSockets.
//
// A [Hub] is a yuletree.Surface: attach it to a scene and every Nth frame is
// encoded once as JSON and pushed to all connected viewers. Viewers are
// read-only; anything they send is discarded. [Serve] runs a scene on a
// ticker and exposes the hub at /ws.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/phanxgames/yuletree"
)

const writeWait = 2 * time.Second

// OrnamentMessage is one ornament instance on the wire.
type OrnamentMessage struct {
	Position [3]float32 `json:"position"`
	Rotation [3]float32 `json:"rotation"`
	Scale    float32    `json:"scale"`
	Kind     string     `json:"kind"`
}

// StarMessage is the star instance on the wire.
type StarMessage struct {
	Position [3]float32 `json:"position"`
	Rotation [3]float32 `json:"rotation"`
	Scale    float32    `json:"scale"`
}

// FrameMessage is the JSON document sent to viewers. Positions are rounded
// to float32 to halve the payload.
type FrameMessage struct {
	Type       string            `json:"type"`
	Frame      int               `json:"frame"`
	Elapsed    float64           `json:"elapsed"`
	State      string            `json:"state"`
	FoliageMix float64           `json:"foliageMix"`
	Foliage    [][3]float32      `json:"foliage"`
	Seeds      []float32         `json:"seeds"`
	Ornaments  []OrnamentMessage `json:"ornaments"`
	Star       StarMessage       `json:"star"`
}

// HubConfig holds optional parameters for NewHub.
type HubConfig struct {
	// Every broadcasts one frame out of every N submitted. Defaults to 1.
	Every int
	// FoliageStride sends one foliage point out of every N. Defaults to 1.
	FoliageStride int
	// CheckOrigin overrides the upgrader's origin check. Nil allows all
	// origins.
	CheckOrigin func(r *http.Request) bool
}

// Hub fans frames out to WebSocket viewers.
type Hub struct {
	capacity yuletree.Capacity
	cfg      HubConfig
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*websocket.Conn]*sync.Mutex
	latest  *websocket.PreparedMessage

	submitted int
	msg       FrameMessage
}

// NewHub creates a hub sized for the given particle counts.
func NewHub(capacity yuletree.Capacity, cfg HubConfig) *Hub {
	if cfg.Every <= 0 {
		cfg.Every = 1
	}
	if cfg.FoliageStride <= 0 {
		cfg.FoliageStride = 1
	}
	checkOrigin := cfg.CheckOrigin
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}
	n := (capacity.Foliage + cfg.FoliageStride - 1) / cfg.FoliageStride
	return &Hub{
		capacity: capacity,
		cfg:      cfg,
		upgrader: websocket.Upgrader{CheckOrigin: checkOrigin},
		clients:  make(map[*websocket.Conn]*sync.Mutex),
		msg: FrameMessage{
			Type:      "frame",
			Foliage:   make([][3]float32, n),
			Seeds:     make([]float32, n),
			Ornaments: make([]OrnamentMessage, capacity.Ornaments),
		},
	}
}

// Capacity implements yuletree.Surface.
func (h *Hub) Capacity() yuletree.Capacity {
	return h.capacity
}

// Clients returns the number of connected viewers.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Submit implements yuletree.Surface. Selected frames are encoded once and
// written to every viewer; viewers whose write fails are dropped.
func (h *Hub) Submit(f *yuletree.Frame) {
	h.submitted++
	if h.submitted%h.cfg.Every != 0 {
		return
	}

	pm, err := h.encode(f)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[yuletree] stream: encode frame: %v\n", err)
		return
	}

	h.mu.Lock()
	h.latest = pm
	h.mu.Unlock()

	h.broadcast(pm)
}

func vec32(v yuletree.Vec3) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

func (h *Hub) encode(f *yuletree.Frame) (*websocket.PreparedMessage, error) {
	m := &h.msg
	m.Frame = h.submitted
	m.Elapsed = f.Elapsed
	m.State = f.State.String()
	m.FoliageMix = f.FoliageMix
	for i := range m.Foliage {
		j := i * h.cfg.FoliageStride
		m.Foliage[i] = vec32(f.Foliage[j])
		m.Seeds[i] = float32(f.Seeds[j])
	}
	for i, o := range f.Ornaments {
		m.Ornaments[i] = OrnamentMessage{
			Position: vec32(o.Position),
			Rotation: vec32(o.Rotation),
			Scale:    float32(o.Scale),
			Kind:     o.Kind.String(),
		}
	}
	m.Star = StarMessage{
		Position: vec32(f.Star.Position),
		Rotation: vec32(f.Star.Rotation),
		Scale:    float32(f.Star.Scale),
	}
	if !finite(m) {
		return nil, errors.New("non-finite value in frame")
	}

	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return websocket.NewPreparedMessage(websocket.TextMessage, data)
}

// finite guards against NaN/Inf, which encoding/json refuses.
func finite(m *FrameMessage) bool {
	ok := func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
	if !ok(m.Elapsed) || !ok(m.FoliageMix) {
		return false
	}
	for _, p := range m.Foliage {
		if !ok(float64(p[0])) || !ok(float64(p[1])) || !ok(float64(p[2])) {
			return false
		}
	}
	return true
}

func (h *Hub) broadcast(pm *websocket.PreparedMessage) {
	h.mu.RLock()
	var dead []*websocket.Conn
	for conn, mu := range h.clients {
		if err := write(conn, mu, pm); err != nil {
			dead = append(dead, conn)
		}
	}
	h.mu.RUnlock()

	for _, conn := range dead {
		h.remove(conn)
	}
}

func write(conn *websocket.Conn, mu *sync.Mutex, pm *websocket.PreparedMessage) error {
	mu.Lock()
	defer mu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WritePreparedMessage(pm)
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.clients[conn]
	delete(h.clients, conn)
	h.mu.Unlock()
	if ok {
		conn.Close()
	}
}

// ServeHTTP upgrades the request to a WebSocket viewer. The viewer gets the
// latest frame immediately, then every broadcast until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[yuletree] stream: upgrade: %v\n", err)
		return
	}

	mu := &sync.Mutex{}
	h.mu.Lock()
	h.clients[conn] = mu
	latest := h.latest
	h.mu.Unlock()
	defer h.remove(conn)

	if latest != nil {
		if err := write(conn, mu, latest); err != nil {
			return
		}
	}

	// Viewers are read-only; drain until the connection closes.
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	clear(h.clients)
	h.mu.Unlock()

	for _, conn := range conns {
		conn.Close()
	}
}

// ServeConfig holds optional parameters for Serve.
type ServeConfig struct {
	// Addr is the listen address. Defaults to ":8080".
	Addr string
	// FrameInterval is the scene tick period. Defaults to 1/30 s.
	FrameInterval time.Duration
	// Hub configures the broadcaster.
	Hub HubConfig
}

// Serve runs scene on a ticker, broadcasting through a Hub mounted at /ws,
// until ctx is cancelled. The scene is only touched from the ticker
// goroutine.
func Serve(ctx context.Context, scene *yuletree.Scene, cfg ServeConfig) error {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = time.Second / 30
	}

	hub := NewHub(scene.Capacity(), cfg.Hub)
	scene.Attach(hub)

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	errc := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	ticker := time.NewTicker(cfg.FrameInterval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			hub.Close()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("yuletree: shutdown: %w", err)
			}
			return nil
		case err, ok := <-errc:
			if ok {
				return fmt.Errorf("yuletree: serve %s: %w", cfg.Addr, err)
			}
			return nil
		case now := <-ticker.C:
			scene.Advance(now.Sub(last).Seconds())
			last = now
		}
	}
}
