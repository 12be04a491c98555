// Package reconcile mounts virtual trees into a host document and patches
// the live tree when a new virtual tree is rendered.
//
// # Render
//
// Engine.Render is the entry point. Per container it mounts the first
// tree, patches every following tree against the previous one, and
// unmounts when rendered with nil:
//
//	doc := host.NewDocument()
//	app, _ := doc.Query("body")
//	e := reconcile.New(doc)
//
//	e.Render(ctx, vdom.Element("p", nil, "hello"), app)
//	e.Render(ctx, vdom.Element("p", nil, "world"), app) // one SetText
//	e.Render(ctx, nil, app)                             // removes <p>
//
// # Patching
//
// Nodes of different kind, elements with different tags and components
// with different definitions are replaced wholesale. Otherwise the live
// node is carried forward: element data is diffed key by key, text content
// is assigned in place, component instances re-render and reconcile their
// own output, and portals move their live children when the target changes.
//
// Children are reconciled by shape. A single child is patched recursively;
// every other transition removes the previous children and mounts the next
// ones. Sibling lists are never reordered or reused.
//
// # Concurrency
//
// An Engine is single-threaded. Render and component updates run to
// completion synchronously; calling Render from inside a render (for
// example from a listener fired by a host mutation) fails with E006.
package reconcile
