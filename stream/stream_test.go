package stream

import (
	"context"
	"math/rand/v2"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/phanxgames/yuletree"
)

func newTestScene() *yuletree.Scene {
	return yuletree.NewScene(yuletree.Config{FoliageCount: 300, OrnamentCount: 40},
		rand.New(rand.NewPCG(5, 6)))
}

// startHub attaches a hub to scene and serves it from a test server.
func startHub(t *testing.T, scene *yuletree.Scene, cfg HubConfig) (*Hub, string) {
	t.Helper()
	hub := NewHub(scene.Capacity(), cfg)
	scene.Attach(hub)
	srv := httptest.NewServer(hub)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients() != want {
		if time.Now().After(deadline) {
			t.Fatalf("clients = %d, want %d", hub.Clients(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readFrame(t *testing.T, conn *websocket.Conn) FrameMessage {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg FrameMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	return msg
}

func TestHubBroadcastsFrames(t *testing.T) {
	scene := newTestScene()
	hub, url := startHub(t, scene, HubConfig{})
	conn := dial(t, url)
	waitClients(t, hub, 1)

	scene.Advance(1.0 / 60)
	msg := readFrame(t, conn)

	if msg.Type != "frame" || msg.Frame != 1 {
		t.Errorf("type %q frame %d, want frame 1", msg.Type, msg.Frame)
	}
	if msg.State != "TREE_SHAPE" {
		t.Errorf("state = %q", msg.State)
	}
	if len(msg.Foliage) != 300 || len(msg.Seeds) != 300 {
		t.Errorf("foliage %d seeds %d, want 300", len(msg.Foliage), len(msg.Seeds))
	}
	if len(msg.Ornaments) != 40 {
		t.Errorf("ornaments = %d, want 40", len(msg.Ornaments))
	}

	f := scene.Frame()
	if got, want := msg.Star.Position, vec32(f.Star.Position); got != want {
		t.Errorf("star position = %v, want %v", got, want)
	}
	if got, want := msg.Ornaments[0].Kind, f.Ornaments[0].Kind.String(); got != want {
		t.Errorf("ornament kind = %q, want %q", got, want)
	}
}

func TestHubEveryAndStride(t *testing.T) {
	scene := newTestScene()
	hub, url := startHub(t, scene, HubConfig{Every: 2, FoliageStride: 3})
	conn := dial(t, url)
	waitClients(t, hub, 1)

	for i := 0; i < 4; i++ {
		scene.Advance(1.0 / 60)
	}
	first, second := readFrame(t, conn), readFrame(t, conn)
	if first.Frame != 2 || second.Frame != 4 {
		t.Errorf("frames = %d, %d, want 2, 4", first.Frame, second.Frame)
	}
	if len(first.Foliage) != 100 {
		t.Errorf("strided foliage = %d, want 100", len(first.Foliage))
	}
}

func TestHubSendsLatestOnConnect(t *testing.T) {
	scene := newTestScene()
	hub, url := startHub(t, scene, HubConfig{})
	for i := 0; i < 3; i++ {
		scene.Advance(1.0 / 60)
	}

	conn := dial(t, url)
	waitClients(t, hub, 1)
	if msg := readFrame(t, conn); msg.Frame != 3 {
		t.Errorf("frame = %d, want 3", msg.Frame)
	}
}

func TestHubIgnoresViewerMessages(t *testing.T) {
	scene := newTestScene()
	hub, url := startHub(t, scene, HubConfig{})
	conn := dial(t, url)
	waitClients(t, hub, 1)

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"action":"toggle"}`)); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	scene.Advance(1.0 / 60)
	if msg := readFrame(t, conn); msg.State != "TREE_SHAPE" {
		t.Errorf("state = %q, viewer input should be ignored", msg.State)
	}
	if hub.Clients() != 1 {
		t.Errorf("clients = %d, want 1", hub.Clients())
	}
}

func TestHubDropsClosedViewers(t *testing.T) {
	scene := newTestScene()
	hub, url := startHub(t, scene, HubConfig{})
	conn := dial(t, url)
	waitClients(t, hub, 1)

	conn.Close()
	waitClients(t, hub, 0)
	scene.Advance(1.0 / 60)
}

func TestServeStopsOnContext(t *testing.T) {
	scene := newTestScene()
	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	err := Serve(ctx, scene, ServeConfig{Addr: "127.0.0.1:0", FrameInterval: 5 * time.Millisecond})
	if err != nil {
		t.Fatalf("Serve: %v", err)
	}
	if scene.Frames() == 0 {
		t.Error("scene never advanced")
	}
}
