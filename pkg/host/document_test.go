package host

import (
	"testing"

	"github.com/vango-dev/reconcile/internal/errors"
)

func TestDocumentTree(t *testing.T) {
	d := NewDocument()
	if d.Tag(d.Root()) != "body" {
		t.Fatalf("root tag = %q", d.Tag(d.Root()))
	}

	ul := d.CreateElement("ul", "")
	a := d.CreateText("a")
	b := d.CreateText("b")
	for _, c := range []Handle{a, b} {
		if err := d.AppendChild(ul, c); err != nil {
			t.Fatal(err)
		}
	}
	if err := d.AppendChild(d.Root(), ul); err != nil {
		t.Fatal(err)
	}

	if got := d.Children(ul); len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("Children = %v", got)
	}
	if d.Parent(a) != ul {
		t.Errorf("Parent(a) = %d, want %d", d.Parent(a), ul)
	}
	if got := d.Text(ul); got != "ab" {
		t.Errorf("Text = %q", got)
	}

	if err := d.RemoveChild(ul, a); err != nil {
		t.Fatal(err)
	}
	if d.Parent(a) != None || len(d.Children(ul)) != 1 {
		t.Error("RemoveChild should detach the node")
	}
	if d.Type(a) != TextNode || d.Text(a) != "a" {
		t.Error("detached handles stay valid")
	}
	if d.Len() != 4 {
		t.Errorf("Len() = %d, want 4", d.Len())
	}
}

func TestDocumentAppendMoves(t *testing.T) {
	d := NewDocument()
	x := d.CreateElement("div", "")
	y := d.CreateElement("div", "")
	c := d.CreateText("c")
	_ = d.AppendChild(x, c)
	if err := d.AppendChild(y, c); err != nil {
		t.Fatal(err)
	}
	if len(d.Children(x)) != 0 || d.Parent(c) != y {
		t.Error("AppendChild should move an attached node")
	}

	// Re-appending to the same parent moves the node to the end.
	c2 := d.CreateText("c2")
	_ = d.AppendChild(y, c2)
	_ = d.AppendChild(y, c)
	if got := d.Children(y); got[0] != c2 || got[1] != c {
		t.Errorf("Children = %v", got)
	}
}

func TestDocumentErrors(t *testing.T) {
	d := NewDocument()
	div := d.CreateElement("div", "")
	inner := d.CreateElement("span", "")
	text := d.CreateText("t")
	_ = d.AppendChild(div, inner)

	tests := []struct {
		name string
		err  error
	}{
		{"unknown child", d.AppendChild(div, 99)},
		{"unknown parent", d.AppendChild(None, div)},
		{"text parent", d.AppendChild(text, div)},
		{"cycle", d.AppendChild(inner, div)},
		{"self", d.AppendChild(div, div)},
		{"not a child", d.RemoveChild(div, text)},
		{"remove unknown", d.RemoveChild(div, 99)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.HasCode(tt.err, "E007") {
				t.Errorf("error = %v, want E007", tt.err)
			}
		})
	}
}

func TestDocumentData(t *testing.T) {
	d := NewDocument()
	el := d.CreateElement("input", "")

	d.SetClass(el, "a b")
	d.SetAttribute(el, "type", "text")
	d.SetProperty(el, "value", "x")
	d.SetStyle(el, "color", "red")
	d.SetStyle(el, "width", "1px")
	d.SetStyle(el, "width", "")

	if d.Class(el) != "a b" {
		t.Errorf("Class = %q", d.Class(el))
	}
	if v, ok := d.Attribute(el, "type"); !ok || v != "text" {
		t.Errorf("Attribute = %q, %v", v, ok)
	}
	if v, ok := d.Property(el, "value"); !ok || v != "x" {
		t.Errorf("Property = %v, %v", v, ok)
	}
	if d.Style(el, "color") != "red" || d.StyleLen(el) != 1 {
		t.Error("empty style value should clear the property")
	}

	d.RemoveAttribute(el, "type")
	d.DeleteProperty(el, "value")
	if _, ok := d.Attribute(el, "type"); ok {
		t.Error("attribute not removed")
	}
	if _, ok := d.Property(el, "value"); ok {
		t.Error("property not deleted")
	}

	// Element setters ignore text nodes.
	text := d.CreateText("t")
	d.SetAttribute(text, "id", "x")
	if _, ok := d.Attribute(text, "id"); ok {
		t.Error("text nodes have no attributes")
	}
}

func TestDocumentListeners(t *testing.T) {
	d := NewDocument()
	el := d.CreateElement("button", "")

	var got []Event
	d.AddListener(el, "click", func(ev Event) { got = append(got, ev) })
	if !d.HasListener(el, "click") {
		t.Fatal("listener not registered")
	}
	if !d.Dispatch(el, Event{Type: "click", Value: 1}) {
		t.Fatal("Dispatch() = false")
	}
	if len(got) != 1 || got[0].Target != el || got[0].Value != 1 {
		t.Errorf("events = %+v", got)
	}
	if d.Dispatch(el, Event{Type: "input"}) {
		t.Error("Dispatch() without listener = true")
	}

	d.RemoveListener(el, "click")
	if d.Dispatch(el, Event{Type: "click"}) {
		t.Error("removed listener still runs")
	}
}

func TestDocumentQuery(t *testing.T) {
	d := NewDocument()
	div := d.CreateElement("DIV", "")
	d.SetAttribute(div, "id", "main")
	d.SetClass(div, "box wide")
	span := d.CreateElement("span", "")
	_ = d.AppendChild(div, span)
	_ = d.AppendChild(d.Root(), div)
	detached := d.CreateElement("aside", "")
	d.SetAttribute(detached, "id", "loose")

	tests := []struct {
		selector string
		want     Handle
		ok       bool
	}{
		{"#main", div, true},
		{".wide", div, true},
		{"div", div, true},
		{"span", span, true},
		{" #main ", div, true},
		{"#loose", None, false},
		{".box.wide", None, false},
		{"", None, false},
	}

	for _, tt := range tests {
		got, ok := d.Query(tt.selector)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Query(%q) = %d, %v; want %d, %v", tt.selector, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNodeTypeString(t *testing.T) {
	if ElementNode.String() != "Element" || TextNode.String() != "Text" || NodeType(0).String() != "Unknown" {
		t.Error("unexpected NodeType strings")
	}
}
