package vdom

// Attr is a single data entry passed to an element helper.
type Attr struct {
	Key   string
	Value any
}

// EventHandler binds a listener to an "on<event>" data key.
type EventHandler struct {
	Event   string
	Handler any
}

// createElement splits args into data entries and children and builds an
// element. Arguments can be: nil, Attr, []Attr, EventHandler, Data, Style,
// or anything Element accepts as a child.
func createElement(tag string, args []any) *VNode {
	var data Data
	set := func(k string, v any) {
		if data == nil {
			data = make(Data)
		}
		data[k] = v
	}

	children := make([]any, 0, len(args))
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes)
		case Attr:
			if v.Key != "" {
				set(v.Key, v.Value)
			}
		case []Attr:
			for _, a := range v {
				if a.Key != "" {
					set(a.Key, a.Value)
				}
			}
		case EventHandler:
			set(v.Event, v.Handler)
		case Data:
			for k, val := range v {
				set(k, val)
			}
		case Style:
			set("style", v)
		default:
			children = append(children, v)
		}
	}
	return Element(tag, data, children...)
}

// Sectioning and text

func Div(args ...any) *VNode     { return createElement("div", args) }
func P(args ...any) *VNode       { return createElement("p", args) }
func Span(args ...any) *VNode    { return createElement("span", args) }
func Section(args ...any) *VNode { return createElement("section", args) }
func Header(args ...any) *VNode  { return createElement("header", args) }
func Footer(args ...any) *VNode  { return createElement("footer", args) }
func Main(args ...any) *VNode    { return createElement("main", args) }
func Nav(args ...any) *VNode     { return createElement("nav", args) }
func H1(args ...any) *VNode      { return createElement("h1", args) }
func H2(args ...any) *VNode      { return createElement("h2", args) }
func H3(args ...any) *VNode      { return createElement("h3", args) }
func Ul(args ...any) *VNode      { return createElement("ul", args) }
func Ol(args ...any) *VNode      { return createElement("ol", args) }
func Li(args ...any) *VNode      { return createElement("li", args) }
func Hr(args ...any) *VNode      { return createElement("hr", args) }
func A(args ...any) *VNode       { return createElement("a", args) }
func B(args ...any) *VNode       { return createElement("b", args) }
func Strong(args ...any) *VNode  { return createElement("strong", args) }
func Em(args ...any) *VNode      { return createElement("em", args) }
func Code(args ...any) *VNode    { return createElement("code", args) }

// Forms

func Form(args ...any) *VNode     { return createElement("form", args) }
func Button(args ...any) *VNode   { return createElement("button", args) }
func Input(args ...any) *VNode    { return createElement("input", args) }
func Label(args ...any) *VNode    { return createElement("label", args) }
func Select(args ...any) *VNode   { return createElement("select", args) }
func Option(args ...any) *VNode   { return createElement("option", args) }
func Textarea(args ...any) *VNode { return createElement("textarea", args) }

// Dialogs

func Dialog(args ...any) *VNode { return createElement("dialog", args) }

// SVG. Descendants of Svg are created in the SVG namespace.

func Svg(args ...any) *VNode    { return createElement("svg", args) }
func G(args ...any) *VNode      { return createElement("g", args) }
func Circle(args ...any) *VNode { return createElement("circle", args) }
func Rect(args ...any) *VNode   { return createElement("rect", args) }
func Path(args ...any) *VNode   { return createElement("path", args) }
