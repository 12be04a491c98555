package reconcile

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/host"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// domProps are assigned as live properties rather than attributes.
var domProps = map[string]bool{
	"value":    true,
	"checked":  true,
	"selected": true,
	"muted":    true,
}

// patchData applies one data entry to el. prev is nil on mount; next is nil
// when the key was removed. A style or listener value of an unsupported type
// fails with E010 before el is touched.
func (e *Engine) patchData(el host.Handle, key string, prev, next any) error {
	switch {
	case key == "style":
		style, ok := toStyle(next)
		if !ok {
			return unsupportedValue(key, next)
		}
		old, _ := toStyle(prev)
		e.patchStyle(el, old, style)

	case key == "class":
		class := vdom.NormalizeClass(next)
		if prev == nil || vdom.NormalizeClass(prev) != class {
			e.host.SetClass(el, class)
		}

	case isEventKey(key):
		l, ok := toListener(next)
		if !ok {
			return unsupportedValue(key, next)
		}
		event := strings.ToLower(key[2:])
		if prev != nil {
			e.host.RemoveListener(el, event)
		}
		if l != nil {
			e.host.AddListener(el, event, l)
		}

	case domProps[key]:
		switch {
		case next == nil:
			if prev != nil {
				e.host.DeleteProperty(el, key)
			}
		case prev == nil || !valuesEqual(prev, next):
			e.host.SetProperty(el, key, next)
		}

	default:
		switch {
		case next == nil:
			if prev != nil {
				e.host.RemoveAttribute(el, key)
			}
		case prev == nil || !valuesEqual(prev, next):
			e.host.SetAttribute(el, key, attrString(next))
		}
	}
	return nil
}

func unsupportedValue(key string, v any) error {
	return errors.New("E010").WithDetail(fmt.Sprintf("%s: %T", key, v))
}

// patchStyle sets changed style properties and clears removed ones.
func (e *Engine) patchStyle(el host.Handle, prev, next vdom.Style) {
	for _, name := range sortedStyleKeys(next) {
		if v, ok := prev[name]; !ok || v != next[name] {
			e.host.SetStyle(el, name, next[name])
		}
	}
	for _, name := range sortedStyleKeys(prev) {
		if _, ok := next[name]; !ok {
			e.host.SetStyle(el, name, "")
		}
	}
}

func isEventKey(key string) bool {
	return len(key) > 2 && key[0] == 'o' && key[1] == 'n'
}

// toStyle converts a style value. A nil value is an empty style.
func toStyle(v any) (vdom.Style, bool) {
	switch s := v.(type) {
	case nil:
		return nil, true
	case vdom.Style:
		return s, true
	case map[string]string:
		return s, true
	case map[string]any:
		out := make(vdom.Style, len(s))
		for k, val := range s {
			out[k] = attrString(val)
		}
		return out, true
	}
	return nil, false
}

// toListener converts a listener value. A nil value means no listener.
func toListener(v any) (host.Listener, bool) {
	switch fn := v.(type) {
	case nil:
		return nil, true
	case host.Listener:
		return fn, fn != nil
	case func(host.Event):
		return fn, fn != nil
	case func():
		if fn == nil {
			return nil, false
		}
		return func(host.Event) { fn() }, true
	}
	return nil, false
}

// valuesEqual compares two data values.
func valuesEqual(a, b any) bool {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	}
	return reflect.DeepEqual(a, b)
}

// attrString converts a data value to an attribute string.
func attrString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func sortedStyleKeys(s vdom.Style) []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
