package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/vango-dev/reconcile/internal/config"
	"github.com/vango-dev/reconcile/internal/stream"
	"github.com/vango-dev/reconcile/pkg/host"
	"github.com/vango-dev/reconcile/pkg/middleware"
	"github.com/vango-dev/reconcile/pkg/reconcile"
	"github.com/vango-dev/reconcile/pkg/scene"
)

func serveCmd(g *globals) *cobra.Command {
	var (
		addr     string
		interval time.Duration
		once     bool
	)

	cmd := &cobra.Command{
		Use:   "serve <scene.yaml>",
		Short: "Stream a scene to browsers",
		Long: `Play a scene in a loop and stream every frame's mutations to
connected browsers over a WebSocket.

Endpoints:
  /            live preview page
  /ws          binary frame stream (snapshot first, then mutations)
  /html        current container HTML
  /frames/{n}  encoded mutation frame n of the current pass
  /metrics     Prometheus metrics (when metrics.enabled)

Examples:
  vdomctl serve list.yaml
  vdomctl serve list.yaml --addr=:8080 --interval=250ms`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := g.setup(cmd)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Serve.Addr = addr
			}
			if interval > 0 {
				cfg.Serve.Interval = interval.String()
			}

			s, err := scene.Load(args[0])
			if err != nil {
				return err
			}
			srv, err := newServer(s, cfg, logger)
			if err != nil {
				return err
			}
			srv.once = once
			return srv.ListenAndServe(cmd.Context(), cfg.Serve.Addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from "+config.ConfigFileName+")")
	cmd.Flags().DurationVarP(&interval, "interval", "i", 0, "Delay between frames (default from "+config.ConfigFileName+")")
	cmd.Flags().BoolVar(&once, "once", false, "Stop after the last frame instead of looping")

	return cmd
}

// server plays a scene and streams its frames.
type server struct {
	player   *scene.Player
	hub      *stream.Hub
	registry *prometheus.Registry
	metricNS string
	logger   *slog.Logger
	htmlCfg  host.HTMLConfig
	interval time.Duration
	once     bool

	// frames holds the encoded mutation frames of the current pass.
	// Guarded by the hub.
	frames [][]byte
	wg     sync.WaitGroup
}

func newServer(s *scene.Scene, cfg *config.Config, logger *slog.Logger) (*server, error) {
	opts := []reconcile.Option{
		reconcile.WithTracer(otel.Tracer("github.com/vango-dev/reconcile/cmd/vdomctl")),
	}

	var registry *prometheus.Registry
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		opts = append(opts, reconcile.WithMetrics(reconcile.NewMetrics(
			reconcile.WithNamespace(cfg.Metrics.Namespace),
			reconcile.WithConstLabels(prometheus.Labels{"scene": s.Name}),
			reconcile.WithRegistry(registry),
		)))
	}

	p, err := scene.NewPlayer(s, logger, opts...)
	if err != nil {
		return nil, err
	}

	srv := &server{
		player:   p,
		registry: registry,
		metricNS: cfg.Metrics.Namespace,
		logger:   logger.With("scene", s.Name),
		htmlCfg:  host.HTMLConfig{Pretty: cfg.Render.Pretty, Indent: cfg.Render.Indent},
		interval: cfg.Interval(),
	}
	srv.hub = stream.NewHub(func() ([]byte, error) {
		return p.Snapshot().Encode(), nil
	}, logger)
	return srv, nil
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(middleware.OpenTelemetry())
	if s.registry != nil {
		r.Use(middleware.Prometheus(
			middleware.WithNamespace(s.metricNS),
			middleware.WithRegistry(s.registry),
		))
	}
	r.Use(chimw.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/ws", s.hub.ServeHTTP)
	r.Get("/html", s.handleHTML)
	r.Get("/frames/{n}", s.handleFrame)
	if s.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return r
}

// step renders the next frame and broadcasts it. After the last frame the
// scene is rewound, unless the server plays it once. It reports whether
// there are more frames to play.
func (s *server) step(ctx context.Context) (bool, error) {
	more := true
	err := s.hub.Publish(func() ([]byte, error) {
		if s.player.Done() {
			if s.once {
				more = false
				return nil, nil
			}
			f, err := s.player.Rewind(ctx)
			if err != nil {
				return nil, err
			}
			s.frames = s.frames[:0]
			s.logger.Info("scene rewound")
			if f == nil {
				return nil, nil
			}
			return f.Encode(), nil
		}

		f, err := s.player.Step(ctx)
		if err != nil {
			return nil, err
		}
		if f == nil {
			s.frames = append(s.frames, nil)
			return nil, nil
		}
		data := f.Encode()
		s.frames = append(s.frames, data)
		return data, nil
	})
	return more, err
}

func (s *server) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		more, err := s.step(ctx)
		if err != nil {
			s.logger.Error("render failed", "error", err)
			return
		}
		if !more {
			s.logger.Info("scene finished")
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// ListenAndServe serves until ctx is canceled.
func (s *server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.wg.Add(1)
	go s.run(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving", "addr", addr, "interval", s.interval)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		cancel()
		s.wg.Wait()
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	s.hub.Close()
	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	err := httpServer.Shutdown(shutdownCtx)
	s.wg.Wait()
	return err
}

func (s *server) handleHTML(w http.ResponseWriter, r *http.Request) {
	var (
		html string
		err  error
	)
	s.hub.Do(func() {
		html, err = s.player.HTML(s.htmlCfg)
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, html)
}

func (s *server) handleFrame(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil || n < 0 {
		http.Error(w, "invalid frame number", http.StatusBadRequest)
		return
	}

	var (
		data  []byte
		found bool
	)
	s.hub.Do(func() {
		if n < len(s.frames) {
			data, found = s.frames[n], true
		}
	})
	switch {
	case !found:
		http.NotFound(w, r)
	case data == nil:
		w.WriteHeader(http.StatusNoContent)
	default:
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write(data)
	}
}

func (s *server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, pageTemplate, s.player.Scene().Name)
}

// pageTemplate shows the container HTML and refreshes it on every frame.
// Frames start with a type byte and a uvarint sequence number.
const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>vdomctl: %s</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem; }
#status { color: #666; font-size: 0.9rem; }
#preview { border: 1px solid #ddd; padding: 1rem; margin-top: 1rem; }
</style>
</head>
<body>
<div id="status">connecting...</div>
<div id="preview"></div>
<script>
(function() {
    'use strict';

    var status = document.getElementById('status');
    var preview = document.getElementById('preview');

    function uvarint(bytes, pos) {
        var value = 0, shift = 0;
        while (pos < bytes.length) {
            var b = bytes[pos++];
            value += (b & 0x7f) * Math.pow(2, shift);
            if (b < 0x80) break;
            shift += 7;
        }
        return value;
    }

    function refresh() {
        fetch('/html').then(function(r) { return r.text(); }).then(function(html) {
            preview.innerHTML = html;
        });
    }

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        var ws = new WebSocket(protocol + '//' + location.host + '/ws');
        ws.binaryType = 'arraybuffer';

        ws.onmessage = function(e) {
            var bytes = new Uint8Array(e.data);
            var kind = bytes[0] === 2 ? 'snapshot' : 'mutations';
            status.textContent = kind + ' #' + uvarint(bytes, 1) + ' (' + bytes.length + ' bytes)';
            refresh();
        };

        ws.onclose = function() {
            status.textContent = 'disconnected, retrying...';
            setTimeout(connect, 1000);
        };
    }

    connect();
})();
</script>
</body>
</html>
`
