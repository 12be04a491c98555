package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/reconcile/internal/config"
	"github.com/vango-dev/reconcile/pkg/protocol"
	"github.com/vango-dev/reconcile/pkg/scene"
)

func newTestServer(t *testing.T, cfg *config.Config) (*server, *httptest.Server) {
	t.Helper()
	s, err := scene.Load(filepath.Join("testdata", "demo.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	srv, err := newServer(s, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(srv.routes())
	t.Cleanup(ts.Close)
	return srv, ts
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(body)
}

func TestServerFrames(t *testing.T) {
	srv, ts := newTestServer(t, config.New())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if more, err := srv.step(ctx); err != nil || !more {
			t.Fatalf("step %d = %v, %v", i, more, err)
		}
	}

	if code, body := get(t, ts.URL+"/html"); code != http.StatusOK || body != `<p class="greeting">world</p>` {
		t.Errorf("/html = %d %q", code, body)
	}

	code, body := get(t, ts.URL+"/frames/1")
	if code != http.StatusOK {
		t.Fatalf("/frames/1 = %d", code)
	}
	f, err := protocol.DecodeFrame([]byte(body))
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if f.Seq != 2 || len(f.Mutations) != 1 || f.Mutations[0].Op != protocol.OpSetText {
		t.Errorf("frame 1 = %+v", f)
	}

	if code, _ := get(t, ts.URL+"/frames/2"); code != http.StatusNoContent {
		t.Errorf("/frames/2 (no changes) = %d, want 204", code)
	}
	if code, _ := get(t, ts.URL+"/frames/9"); code != http.StatusNotFound {
		t.Errorf("/frames/9 = %d, want 404", code)
	}
	if code, _ := get(t, ts.URL+"/frames/x"); code != http.StatusBadRequest {
		t.Errorf("/frames/x = %d, want 400", code)
	}
	if code, body := get(t, ts.URL+"/"); code != http.StatusOK || !strings.Contains(body, "vdomctl: demo") {
		t.Errorf("/ = %d", code)
	}
}

func TestServerLoopsAndStopsOnce(t *testing.T) {
	srv, _ := newTestServer(t, config.New())
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		if _, err := srv.step(ctx); err != nil {
			t.Fatal(err)
		}
	}
	// The fifth step rewinds, the sixth mounts the first frame again.
	for i := 0; i < 2; i++ {
		if more, err := srv.step(ctx); err != nil || !more {
			t.Fatalf("step = %v, %v", more, err)
		}
	}
	if len(srv.frames) != 1 {
		t.Errorf("frames after rewind = %d, want 1", len(srv.frames))
	}

	once, _ := newTestServer(t, config.New())
	once.once = true
	for i := 0; i < 4; i++ {
		if _, err := once.step(ctx); err != nil {
			t.Fatal(err)
		}
	}
	if more, err := once.step(ctx); err != nil || more {
		t.Errorf("step after the end = %v, %v; want false", more, err)
	}
}

func TestServerMetrics(t *testing.T) {
	srv, ts := newTestServer(t, config.New())
	if _, err := srv.step(context.Background()); err != nil {
		t.Fatal(err)
	}
	get(t, ts.URL+"/html")
	code, body := get(t, ts.URL+"/metrics")
	if code != http.StatusOK {
		t.Fatalf("/metrics = %d", code)
	}
	for _, want := range []string{
		`vdom_reconcile_renders_total{op="mount",scene="demo",status="ok"} 1`,
		`vdom_http_requests_total{method="GET",route="/html",status="200"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("/metrics missing %s", want)
		}
	}

	cfg := config.New()
	cfg.Metrics.Enabled = false
	_, plain := newTestServer(t, cfg)
	if code, _ := get(t, plain.URL+"/metrics"); code != http.StatusNotFound {
		t.Errorf("/metrics with metrics disabled = %d, want 404", code)
	}
}

func TestServerWebSocket(t *testing.T) {
	srv, ts := newTestServer(t, config.New())
	ctx := context.Background()
	if _, err := srv.step(ctx); err != nil {
		t.Fatal(err)
	}

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	readFrame := func() *protocol.Frame {
		t.Helper()
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("ReadMessage: %v", err)
		}
		f, err := protocol.DecodeFrame(data)
		if err != nil {
			t.Fatalf("DecodeFrame: %v", err)
		}
		return f
	}

	snap := readFrame()
	if snap.Type != protocol.FrameSnapshot || snap.Seq != 1 || snap.HTML != `<p class="greeting">hello</p>` {
		t.Errorf("snapshot = %+v", snap)
	}

	deadline := time.Now().Add(5 * time.Second)
	for srv.hub.ClientCount() != 1 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if _, err := srv.step(ctx); err != nil {
		t.Fatal(err)
	}
	f := readFrame()
	if f.Type != protocol.FrameMutations || f.Seq != 2 {
		t.Errorf("frame = %+v", f)
	}
}
