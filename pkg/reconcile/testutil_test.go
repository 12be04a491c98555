package reconcile

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/vango-dev/reconcile/pkg/host"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// spyHost records the mutating calls made on an embedded Document.
type spyHost struct {
	*host.Document
	calls []string
}

func (s *spyHost) record(format string, args ...any) {
	s.calls = append(s.calls, fmt.Sprintf(format, args...))
}

func (s *spyHost) reset() { s.calls = nil }

func (s *spyHost) SetText(h host.Handle, content string) {
	s.record("SetText %d %q", h, content)
	s.Document.SetText(h, content)
}

func (s *spyHost) SetStyle(h host.Handle, name, value string) {
	s.record("SetStyle %d %s=%q", h, name, value)
	s.Document.SetStyle(h, name, value)
}

func (s *spyHost) SetAttribute(h host.Handle, name, value string) {
	s.record("SetAttribute %d %s=%q", h, name, value)
	s.Document.SetAttribute(h, name, value)
}

func (s *spyHost) RemoveAttribute(h host.Handle, name string) {
	s.record("RemoveAttribute %d %s", h, name)
	s.Document.RemoveAttribute(h, name)
}

func (s *spyHost) CreateElement(tag, ns string) host.Handle {
	h := s.Document.CreateElement(tag, ns)
	s.record("CreateElement %d %s", h, tag)
	return h
}

func (s *spyHost) CreateText(content string) host.Handle {
	h := s.Document.CreateText(content)
	s.record("CreateText %d %q", h, content)
	return h
}

func (s *spyHost) RemoveChild(parent, child host.Handle) error {
	s.record("RemoveChild %d %d", parent, child)
	return s.Document.RemoveChild(parent, child)
}

type fixture struct {
	doc    *host.Document
	spy    *spyHost
	engine *Engine
	app    host.Handle
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newFixture returns an engine rendering into <div id="app"> under the
// document root.
func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	doc := host.NewDocument()
	app := doc.CreateElement("div", "")
	doc.SetAttribute(app, "id", "app")
	if err := doc.AppendChild(doc.Root(), app); err != nil {
		t.Fatal(err)
	}
	spy := &spyHost{Document: doc}
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	return &fixture{doc: doc, spy: spy, engine: New(spy, opts...), app: app}
}

func (f *fixture) render(t *testing.T, v *vdom.VNode) {
	t.Helper()
	if err := f.engine.Render(context.Background(), v, f.app); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
}

// addTarget appends an element with the given id under the document root.
func (f *fixture) addTarget(t *testing.T, id string) host.Handle {
	t.Helper()
	h := f.doc.CreateElement("div", "")
	f.doc.SetAttribute(h, "id", id)
	if err := f.doc.AppendChild(f.doc.Root(), h); err != nil {
		t.Fatal(err)
	}
	return h
}

func containsHandle(hs []host.Handle, h host.Handle) bool {
	for _, x := range hs {
		if x == h {
			return true
		}
	}
	return false
}
