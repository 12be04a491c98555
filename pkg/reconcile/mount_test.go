package reconcile

import (
	"context"
	"testing"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/host"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

func TestMountText(t *testing.T) {
	f := newFixture(t)
	v := vdom.Text("hello")
	f.render(t, v)

	children := f.doc.Children(f.app)
	if len(children) != 1 {
		t.Fatalf("container has %d children, want 1", len(children))
	}
	if f.doc.Type(children[0]) != host.TextNode {
		t.Errorf("child type = %v, want Text", f.doc.Type(children[0]))
	}
	if got := f.doc.Text(children[0]); got != "hello" {
		t.Errorf("text = %q, want %q", got, "hello")
	}
	if v.Live != children[0] {
		t.Errorf("Live = %d, want %d", v.Live, children[0])
	}
}

func TestMountElementClass(t *testing.T) {
	f := newFixture(t)
	v := vdom.Element("div", vdom.Data{"class": []string{"a", "b"}})
	f.render(t, v)

	if got := f.doc.Class(v.Live); got != "a b" {
		t.Errorf("Class = %q, want %q", got, "a b")
	}
	if n := len(f.doc.Children(v.Live)); n != 0 {
		t.Errorf("element has %d children, want 0", n)
	}
}

func TestMountElementData(t *testing.T) {
	f := newFixture(t)
	clicks := 0
	v := vdom.Element("input", vdom.Data{
		"style":    vdom.Style{"height": "50px", "background": "green"},
		"type":     "checkbox",
		"checked":  true,
		"value":    "on",
		"tabindex": 3,
		"onClick":  func() { clicks++ },
	})
	f.render(t, v)
	el := v.Live

	if got := f.doc.Style(el, "height"); got != "50px" {
		t.Errorf("style height = %q, want 50px", got)
	}
	if got := f.doc.Style(el, "background"); got != "green" {
		t.Errorf("style background = %q, want green", got)
	}
	if got, _ := f.doc.Attribute(el, "type"); got != "checkbox" {
		t.Errorf("attr type = %q, want checkbox", got)
	}
	if got, _ := f.doc.Attribute(el, "tabindex"); got != "3" {
		t.Errorf("attr tabindex = %q, want 3", got)
	}
	if _, ok := f.doc.Attribute(el, "checked"); ok {
		t.Error("checked should be a property, not an attribute")
	}
	if got, ok := f.doc.Property(el, "checked"); !ok || got != true {
		t.Errorf("property checked = %v, %v; want true", got, ok)
	}
	if got, _ := f.doc.Property(el, "value"); got != "on" {
		t.Errorf("property value = %v, want on", got)
	}
	if _, ok := f.doc.Attribute(el, "onClick"); ok {
		t.Error("event key should not become an attribute")
	}
	if !f.doc.Dispatch(el, host.Event{Type: "click"}) {
		t.Fatal("no click listener registered")
	}
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestMountNestedChildren(t *testing.T) {
	f := newFixture(t)
	v := vdom.Element("ul", nil,
		vdom.Element("li", nil, "one"),
		vdom.Element("li", nil, "two"),
		vdom.Element("li", nil, vdom.Element("b", nil, "three")),
	)
	f.render(t, v)

	want := "<ul><li>one</li><li>two</li><li><b>three</b></li></ul>"
	if got := f.doc.InnerHTML(f.app); got != want {
		t.Errorf("html = %s, want %s", got, want)
	}
	for i, c := range v.Children {
		if f.doc.Parent(c.Live) != v.Live {
			t.Errorf("child %d not attached to the <ul>", i)
		}
	}
}

func TestMountSVGNamespace(t *testing.T) {
	f := newFixture(t)
	v := vdom.Element("svg", nil, vdom.Element("circle", vdom.Data{"r": 4}))
	f.render(t, v)

	if v.Kind != vdom.KindSVGElement {
		t.Fatalf("Kind = %v, want SVGElement", v.Kind)
	}
	if ns := f.doc.Namespace(v.Live); ns != host.NamespaceSVG {
		t.Errorf("svg namespace = %q", ns)
	}
	if ns := f.doc.Namespace(v.Children[0].Live); ns != host.NamespaceSVG {
		t.Errorf("circle namespace = %q, want inherited SVG namespace", ns)
	}
}

func TestMountFragmentEmpty(t *testing.T) {
	f := newFixture(t)
	v := vdom.Fragment()
	f.render(t, v)

	children := f.doc.Children(f.app)
	if len(children) != 1 {
		t.Fatalf("container has %d children, want 1 placeholder", len(children))
	}
	if f.doc.Type(children[0]) != host.TextNode || f.doc.Text(children[0]) != "" {
		t.Error("placeholder should be an empty text node")
	}
	if v.Live != children[0] {
		t.Error("fragment Live should be the placeholder")
	}
}

func TestMountFragmentAnchor(t *testing.T) {
	f := newFixture(t)
	v := vdom.Fragment(
		vdom.Element("p", nil, "a"),
		vdom.Element("p", nil, "b"),
		vdom.Element("p", nil, "c"),
	)
	f.render(t, v)

	children := f.doc.Children(f.app)
	if len(children) != 3 {
		t.Fatalf("container has %d children, want 3", len(children))
	}
	if v.Live != v.Children[0].Live {
		t.Errorf("fragment Live = %d, want first child %d", v.Live, v.Children[0].Live)
	}
	if v.Live != children[0] {
		t.Error("fragment Live should be the first rendered node")
	}
}

func TestMountPortal(t *testing.T) {
	f := newFixture(t)
	modal := f.addTarget(t, "modal")

	v := vdom.Portal(vdom.Selector("#modal"), vdom.Element("dialog", nil, "hi"))
	f.render(t, v)

	appChildren := f.doc.Children(f.app)
	if len(appChildren) != 1 || f.doc.Type(appChildren[0]) != host.TextNode {
		t.Fatalf("container should only hold the anchor, got %v", appChildren)
	}
	if v.Live != appChildren[0] {
		t.Error("portal Live should be the anchor placeholder")
	}
	if v.TargetLive != modal {
		t.Errorf("TargetLive = %d, want %d", v.TargetLive, modal)
	}
	if got := f.doc.InnerHTML(modal); got != "<dialog>hi</dialog>" {
		t.Errorf("target html = %s", got)
	}
}

func TestMountPortalNodeTarget(t *testing.T) {
	f := newFixture(t)
	side := f.addTarget(t, "side")

	v := vdom.Portal(vdom.NodeTarget(side), "a", "b")
	f.render(t, v)

	if n := len(f.doc.Children(side)); n != 2 {
		t.Errorf("target has %d children, want 2", n)
	}
}

func TestMountPortalMissingTarget(t *testing.T) {
	f := newFixture(t)
	v := vdom.Portal(vdom.Selector("#nowhere"), vdom.Text("x"))

	err := f.engine.Render(context.Background(), v, f.app)
	if !errors.HasCode(err, "E003") {
		t.Fatalf("error = %v, want E003", err)
	}
	if f.engine.Current(f.app) != nil {
		t.Error("failed mount should not be recorded")
	}
}

func TestMountShapeViolation(t *testing.T) {
	tests := []struct {
		name string
		node *vdom.VNode
		code string
	}{
		{
			name: "single without child",
			node: &vdom.VNode{Kind: vdom.KindHTMLElement, Tag: "div", Shape: vdom.ShapeSingle},
			code: "E002",
		},
		{
			name: "none with children",
			node: &vdom.VNode{Kind: vdom.KindFragment, Shape: vdom.ShapeNone, Children: []*vdom.VNode{vdom.Text("x")}},
			code: "E002",
		},
		{
			name: "unknown shape",
			node: &vdom.VNode{Kind: vdom.KindText},
			code: "E002",
		},
		{
			name: "combined kinds",
			node: &vdom.VNode{Kind: vdom.KindText | vdom.KindFragment, Shape: vdom.ShapeNone},
			code: "E001",
		},
		{
			name: "unsupported tag",
			node: vdom.H(42, nil),
			code: "E001",
		},
		{
			name: "nested violation",
			node: vdom.Element("div", nil, &vdom.VNode{Kind: vdom.KindHTMLElement, Shape: vdom.ShapeNone}),
			code: "E001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			err := f.engine.Render(context.Background(), tt.node, f.app)
			if !errors.HasCode(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestMountIntoTextNodeFails(t *testing.T) {
	f := newFixture(t)
	text := f.doc.CreateText("leaf")

	err := f.engine.Mount(vdom.Element("p", nil), text, false)
	if !errors.HasCode(err, "E007") {
		t.Errorf("error = %v, want E007", err)
	}
}

func TestMountUnsupportedData(t *testing.T) {
	tests := []struct {
		name string
		data vdom.Data
	}{
		{"string style", vdom.Data{"style": "color:red"}},
		{"listener with error", vdom.Data{"onClick": func(host.Event) error { return nil }}},
		{"listener string", vdom.Data{"onClick": "alert(1)"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			err := f.engine.Render(context.Background(), vdom.Element("div", tt.data), f.app)
			if !errors.HasCode(err, "E010") {
				t.Fatalf("error = %v, want E010", err)
			}
		})
	}
}

func TestPatchUnsupportedStyle(t *testing.T) {
	f := newFixture(t)
	prev := vdom.Element("div", vdom.Data{"style": vdom.Style{"color": "red"}})
	f.render(t, prev)

	err := f.engine.Render(context.Background(), vdom.Element("div", vdom.Data{"style": 42}), f.app)
	if !errors.HasCode(err, "E010") {
		t.Fatalf("error = %v, want E010", err)
	}
	if got := f.doc.InnerHTML(f.app); got != `<div style="color: red"></div>` {
		t.Errorf("html = %s", got)
	}
}
