package host

import (
	"strings"
	"testing"
)

func build(d *Document) Handle {
	ul := d.CreateElement("ul", "")
	d.SetClass(ul, "list")
	d.SetAttribute(ul, "title", `say "hi"`)
	d.SetAttribute(ul, "data-n", "1")
	d.SetStyle(ul, "margin", "0")
	d.SetStyle(ul, "color", "red")
	for _, s := range []string{"a", "<b>"} {
		li := d.CreateElement("li", "")
		_ = d.AppendChild(li, d.CreateText(s))
		_ = d.AppendChild(ul, li)
	}
	return ul
}

func TestHTML(t *testing.T) {
	d := NewDocument()
	ul := build(d)

	want := `<ul class="list" data-n="1" title="say &quot;hi&quot;" style="color: red; margin: 0">` +
		`<li>a</li><li>&lt;b&gt;</li></ul>`
	if got := d.HTML(ul); got != want {
		t.Errorf("HTML() =\n%s\nwant\n%s", got, want)
	}
}

func TestHTMLVoidAndSVG(t *testing.T) {
	d := NewDocument()
	_ = d.AppendChild(d.Root(), d.CreateElement("br", ""))
	svg := d.CreateElement("svg", NamespaceSVG)
	_ = d.AppendChild(svg, d.CreateElement("circle", NamespaceSVG))
	_ = d.AppendChild(d.Root(), svg)

	want := `<br><svg xmlns="http://www.w3.org/2000/svg"><circle></circle></svg>`
	if got := d.InnerHTML(d.Root()); got != want {
		t.Errorf("InnerHTML() = %s, want %s", got, want)
	}
}

func TestWriteHTMLPretty(t *testing.T) {
	d := NewDocument()
	ul := build(d)
	d.AddListener(ul, "click", func(Event) {})

	var b strings.Builder
	if err := d.WriteHTML(&b, ul, HTMLConfig{Pretty: true, Listeners: true}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), b.String())
	}
	if !strings.Contains(lines[0], `data-on-click="true"`) {
		t.Errorf("listener marker missing: %s", lines[0])
	}
	if lines[1] != "  <li>a</li>" || lines[3] != "</ul>" {
		t.Errorf("unexpected layout:\n%s", b.String())
	}
}

func TestWriteHTMLUnknownHandle(t *testing.T) {
	d := NewDocument()
	var b strings.Builder
	if err := d.WriteHTML(&b, 42, HTMLConfig{}); err == nil {
		t.Error("expected error for unknown handle")
	}
}

func TestEscape(t *testing.T) {
	if got := escapeHTML(`<a href='x'>&"`); got != "&lt;a href=&#39;x&#39;&gt;&amp;&quot;" {
		t.Errorf("escapeHTML() = %s", got)
	}
	if got := escapeAttr("a\"b\n<c>"); got != "a&quot;b&#10;&lt;c>" {
		t.Errorf("escapeAttr() = %s", got)
	}
}
