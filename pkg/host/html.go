package host

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
)

// HTMLConfig configures HTML serialization of a Document.
type HTMLConfig struct {
	// Pretty enables indented output.
	Pretty bool

	// Indent is the string used per indentation level in pretty mode.
	// Defaults to two spaces.
	Indent string

	// Listeners adds a data-on-<event> marker for every registered listener.
	Listeners bool
}

// voidElements cannot have children and have no closing tag.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// HTML serializes the subtree rooted at h using the default configuration.
func (d *Document) HTML(h Handle) string {
	var buf bytes.Buffer
	_ = d.WriteHTML(&buf, h, HTMLConfig{})
	return buf.String()
}

// InnerHTML serializes the children of h.
func (d *Document) InnerHTML(h Handle) string {
	var buf bytes.Buffer
	for _, c := range d.Children(h) {
		_ = d.WriteHTML(&buf, c, HTMLConfig{})
	}
	return buf.String()
}

// WriteHTML streams the subtree rooted at h to w.
func (d *Document) WriteHTML(w io.Writer, h Handle, cfg HTMLConfig) error {
	if cfg.Indent == "" {
		cfg.Indent = "  "
	}
	if d.get(h) == nil {
		return fmt.Errorf("host: unknown handle %d", h)
	}
	return d.writeNode(w, h, cfg, 0)
}

func (d *Document) writeNode(w io.Writer, h Handle, cfg HTMLConfig, depth int) error {
	n := d.nodes[h]
	if n.typ == TextNode {
		_, err := io.WriteString(w, escapeHTML(n.text))
		return err
	}

	if cfg.Pretty && depth > 0 {
		writeIndent(w, cfg.Indent, depth)
	}
	if _, err := fmt.Fprintf(w, "<%s", n.tag); err != nil {
		return err
	}
	if err := d.writeAttributes(w, n, cfg); err != nil {
		return err
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}
	if voidElements[n.tag] && len(n.children) == 0 {
		if cfg.Pretty {
			io.WriteString(w, "\n")
		}
		return nil
	}

	block := cfg.Pretty && d.hasElementChildren(n)
	if block {
		io.WriteString(w, "\n")
	}
	for _, c := range n.children {
		if err := d.writeNode(w, c, cfg, depth+1); err != nil {
			return err
		}
	}
	if block {
		writeIndent(w, cfg.Indent, depth)
	}
	if _, err := fmt.Fprintf(w, "</%s>", n.tag); err != nil {
		return err
	}
	if cfg.Pretty {
		io.WriteString(w, "\n")
	}
	return nil
}

func (d *Document) hasElementChildren(n *node) bool {
	for _, c := range n.children {
		if d.nodes[c].typ == ElementNode {
			return true
		}
	}
	return false
}

func (d *Document) writeAttributes(w io.Writer, n *node, cfg HTMLConfig) error {
	if n.ns != "" && n.tag == "svg" {
		if _, err := fmt.Fprintf(w, ` xmlns="%s"`, escapeAttr(n.ns)); err != nil {
			return err
		}
	}
	if n.class != "" {
		if _, err := fmt.Fprintf(w, ` class="%s"`, escapeAttr(n.class)); err != nil {
			return err
		}
	}

	for _, key := range sortedKeys(n.attrs) {
		if _, err := fmt.Fprintf(w, ` %s="%s"`, key, escapeAttr(n.attrs[key])); err != nil {
			return err
		}
	}

	if len(n.style) > 0 {
		parts := make([]string, 0, len(n.style))
		for _, key := range sortedKeys(n.style) {
			parts = append(parts, key+": "+n.style[key])
		}
		if _, err := fmt.Fprintf(w, ` style="%s"`, escapeAttr(strings.Join(parts, "; "))); err != nil {
			return err
		}
	}

	if cfg.Listeners {
		events := make([]string, 0, len(n.listeners))
		for ev := range n.listeners {
			events = append(events, ev)
		}
		sort.Strings(events)
		for _, ev := range events {
			if _, err := fmt.Fprintf(w, ` data-on-%s="true"`, ev); err != nil {
				return err
			}
		}
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func writeIndent(w io.Writer, indent string, depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(w, indent)
	}
}
