// Package scene loads YAML scene files and plays them through the
// reconciler.
//
// A scene names the container to render into, optional extra elements that
// portals can target, and an ordered list of frames. Each frame holds the
// tree to render, or null to unmount the container:
//
//	name: counter
//	container: "#app"
//	targets: [modal]
//	frames:
//	  - tree:
//	      tag: ul
//	      data: {class: [list, dense]}
//	      children:
//	        - {tag: li, text: one}
//	        - {tag: li, text: two}
//	  - tree:
//	      portal: "#modal"
//	      children:
//	        - {text: hello}
//	  - tree: null
//
// A node sets exactly one of tag, text, fragment or portal. For tag nodes,
// text is shorthand for a single text child.
package scene
