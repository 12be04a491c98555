// Package vdom defines the virtual node model consumed by the reconciler.
//
// A VNode describes one UI node: an HTML or SVG element, a text node, a
// stateful or functional component, a fragment (siblings without a wrapper)
// or a portal (children that live under a different container). Every node
// carries exactly one primitive Kind and a children Shape that classifies
// its Children as none, single or multiple.
//
// # Construction
//
// Nodes are built with the constructors in this package:
//
//	Element("ul", Data{"class": []string{"list", "dense"}},
//	    Element("li", nil, "one"),
//	    Element("li", nil, "two"),
//	)
//
// or with H, which infers the kind once from its tag argument:
//
//	H("div", Data{"style": Style{"color": "red"}}, "hello")
//	H(FragmentTag, nil, a, b)
//	H(PortalTag, Data{"target": "#modal"}, dialog)
//
// The element helpers take data entries and children in one list:
//
//	Ul(Class("list"), Li(Key("a"), "one"), Li(Key("b"), "two"))
//	Button(OnClick(func() { n++ }), "add")
//
// A node is immutable once built, except for the bookkeeping fields the
// reconciler fills in (Live, TargetLive and Instance).
package vdom
