package vdom

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Attribute sets an arbitrary data entry.
func Attribute(key string, value any) Attr { return attr(key, value) }

// Key sets the reconciliation key.
func Key(key string) Attr { return attr("key", key) }

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class list. Values are normalized like the "class" entry
// of Data.
func Class(classes ...any) Attr { return attr("class", NormalizeClass(classes)) }

// Styles sets the inline style.
func Styles(s Style) Attr { return attr("style", s) }

// Title sets the title attribute.
func Title(title string) Attr { return attr("title", title) }

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attr { return attr("placeholder", text) }

// Live properties

// Value sets the value property.
func Value(v any) Attr { return attr("value", v) }

// Checked sets the checked property.
func Checked(checked bool) Attr { return attr("checked", checked) }

// Selected sets the selected property.
func Selected(selected bool) Attr { return attr("selected", selected) }

// Disabled sets the disabled attribute.
func Disabled(disabled bool) Attr { return attr("disabled", disabled) }
