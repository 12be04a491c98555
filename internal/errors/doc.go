// Package errors provides structured, coded errors for the reconciler and
// its tooling.
//
// Every error carries a code (e.g. "E003") that maps to a registered
// category, a short message and a longer explanation. Callers add context
// with the With* builders and wrap underlying causes with Wrap.
//
// # Error Categories
//
//   - shape: malformed virtual trees (unknown kind, children/shape mismatch)
//   - portal: portal targets that cannot be resolved
//   - component: component lifecycle violations
//   - render: misuse of the render entry point
//   - host: host document mutations that failed
//   - config, scene, snapshot, protocol: tooling around the core
//
// # Usage
//
//	err := errors.New("E003").
//	    WithDetail(`selector "#modal" matched no node`).
//	    WithSuggestion("Create the target before rendering the portal")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E003: Portal target not found
//	//
//	//   selector "#modal" matched no node
//	//
//	//   Hint: Create the target before rendering the portal
package errors
