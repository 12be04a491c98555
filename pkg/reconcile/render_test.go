package reconcile

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/host"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

func TestRenderLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.engine.Render(ctx, nil, f.app); err != nil {
		t.Fatalf("noop Render() error = %v", err)
	}
	if f.engine.Containers() != 0 {
		t.Error("noop render should not record a tree")
	}

	first := vdom.Element("p", nil, "one")
	f.render(t, first)
	if f.engine.Current(f.app) != first {
		t.Error("Current should return the mounted tree")
	}

	second := vdom.Element("p", nil, "two")
	f.render(t, second)
	if f.engine.Current(f.app) != second {
		t.Error("Current should return the patched tree")
	}

	if err := f.engine.Render(ctx, nil, f.app); err != nil {
		t.Fatalf("unmount Render() error = %v", err)
	}
	if f.engine.Current(f.app) != nil || f.engine.Containers() != 0 {
		t.Error("unmount should forget the container")
	}
	if n := len(f.doc.Children(f.app)); n != 0 {
		t.Errorf("container has %d children after unmount", n)
	}
}

func TestRenderMultipleContainers(t *testing.T) {
	f := newFixture(t)
	other := f.addTarget(t, "other")

	f.render(t, vdom.Text("a"))
	if err := f.engine.Render(context.Background(), vdom.Text("b"), other); err != nil {
		t.Fatal(err)
	}
	if f.engine.Containers() != 2 {
		t.Errorf("Containers() = %d, want 2", f.engine.Containers())
	}
	if f.doc.Text(f.app) != "a" || f.doc.Text(other) != "b" {
		t.Error("containers should be rendered independently")
	}
}

func TestRenderInvalidContainer(t *testing.T) {
	f := newFixture(t)
	err := f.engine.Render(context.Background(), vdom.Text("x"), host.None)
	if !errors.HasCode(err, "E009") {
		t.Errorf("error = %v, want E009", err)
	}
}

func TestRenderFailureKeepsRecord(t *testing.T) {
	f := newFixture(t)
	good := vdom.Element("p", nil)
	f.render(t, good)

	bad := &vdom.VNode{Kind: vdom.KindHTMLElement, Tag: "p", Shape: vdom.ShapeSingle}
	if err := f.engine.Render(context.Background(), bad, f.app); err == nil {
		t.Fatal("expected an error")
	}
	if f.engine.Current(f.app) != good {
		t.Error("failed render should keep the previous record")
	}
}

func TestRenderFromListener(t *testing.T) {
	f := newFixture(t)
	var renderErr error
	count := 0
	var view func() *vdom.VNode
	view = func() *vdom.VNode {
		return vdom.Element("button", vdom.Data{"onClick": func() {
			count++
			renderErr = f.engine.Render(context.Background(), view(), f.app)
		}}, vdom.Textf("%d", count))
	}
	v := view()
	f.render(t, v)

	f.doc.Dispatch(v.Live, host.Event{Type: "click"})
	if renderErr != nil {
		t.Fatalf("Render() from listener error = %v", renderErr)
	}
	if got := f.doc.Text(f.app); got != "1" {
		t.Errorf("text = %q, want 1", got)
	}
}

func TestRenderWithTracer(t *testing.T) {
	f := newFixture(t, WithTracer(noop.NewTracerProvider().Tracer("test")))
	f.render(t, vdom.Text("traced"))
	if got := f.doc.Text(f.app); got != "traced" {
		t.Errorf("text = %q", got)
	}
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	total := 0.0
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					continue metrics
				}
			}
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestRenderMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("test"))
	f := newFixture(t, WithMetrics(m))

	f.render(t, vdom.Element("ul", nil, "a", "b"))
	f.render(t, vdom.Element("ul", nil, "a", "b", "c"))
	f.render(t, vdom.Text("x"))
	_ = f.engine.Render(context.Background(), vdom.Portal(vdom.Selector("#none")), f.app)

	tests := []struct {
		name   string
		labels map[string]string
		want   float64
	}{
		{"test_reconcile_renders_total", map[string]string{"op": "mount", "status": "ok"}, 1},
		{"test_reconcile_renders_total", map[string]string{"op": "patch", "status": "ok"}, 2},
		{"test_reconcile_renders_total", map[string]string{"status": "error"}, 1},
		{"test_reconcile_replaces_total", nil, 2},
		{"test_reconcile_children_removed_total", nil, 2},
		{"test_reconcile_children_remounted_total", nil, 3},
		{"test_reconcile_mounts_total", map[string]string{"kind": "Text"}, 6},
		{"test_reconcile_patches_total", map[string]string{"kind": "HTMLElement"}, 1},
	}
	for _, tt := range tests {
		if got := counterValue(t, reg, tt.name, tt.labels); got != tt.want {
			t.Errorf("%s%v = %v, want %v", tt.name, tt.labels, got, tt.want)
		}
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.observeRender(OpMount, 0, nil)
	m.mounted(vdom.KindText)
	m.patched(vdom.KindText)
	m.replaced()
	m.childrenRemounted(1, 1)
	m.selfUpdated()
}

func TestLiveNodes(t *testing.T) {
	f := newFixture(t)
	v := vdom.Fragment(vdom.Text("a"), vdom.Fragment(vdom.Text("b"), vdom.Text("c")))
	f.render(t, v)

	got := LiveNodes(v)
	want := f.doc.Children(f.app)
	if len(got) != 3 || len(want) != 3 {
		t.Fatalf("LiveNodes = %v, children = %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("LiveNodes[%d] = %d, want %d", i, got[i], want[i])
		}
	}
	if LiveNodes(nil) != nil {
		t.Error("LiveNodes(nil) should be nil")
	}
}

func TestUnmountNestedPortals(t *testing.T) {
	f := newFixture(t)
	modal := f.addTarget(t, "modal")

	list := func(a, b string) *vdom.VNode {
		return vdom.Element("ul", nil,
			vdom.Element("li", nil, vdom.Portal(vdom.Selector("#modal"), a)),
			vdom.Element("li", nil, vdom.Portal(vdom.Selector("#modal"), b)),
		)
	}

	f.render(t, list("a", "b"))
	if got := f.doc.InnerHTML(modal); got != "ab" {
		t.Fatalf("target html after mount = %q, want %q", got, "ab")
	}

	f.render(t, list("c", "d"))
	if got := f.doc.InnerHTML(modal); got != "cd" {
		t.Errorf("target html after patch = %q, want %q", got, "cd")
	}

	f.render(t, nil)
	if n := len(f.doc.Children(modal)); n != 0 {
		t.Errorf("target keeps %d nodes after unmount, want 0", n)
	}
}

func TestReplaceReleasesNestedPortal(t *testing.T) {
	f := newFixture(t)
	modal := f.addTarget(t, "modal")

	f.render(t, vdom.Element("div", nil, vdom.Portal(vdom.Selector("#modal"), "x")))
	f.render(t, vdom.Element("section", nil, "y"))

	if n := len(f.doc.Children(modal)); n != 0 {
		t.Errorf("target keeps %d nodes after replace, want 0", n)
	}
	if got := f.doc.InnerHTML(f.app); got != "<section>y</section>" {
		t.Errorf("html = %s", got)
	}
}
