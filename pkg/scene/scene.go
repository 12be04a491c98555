package scene

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// DefaultContainer is used when a scene names no container.
const DefaultContainer = "#app"

// Scene is a parsed scene file.
type Scene struct {
	Name      string   `yaml:"name"`
	Container string   `yaml:"container"`
	Targets   []string `yaml:"targets"`
	Frames    []Frame  `yaml:"frames"`

	// File is the path the scene was loaded from, if any.
	File string `yaml:"-"`
}

// Frame is one step of a scene. A nil Tree unmounts the container.
type Frame struct {
	Name string `yaml:"name"`
	Tree *Node  `yaml:"tree"`
}

// Node describes one virtual node.
type Node struct {
	Tag      string         `yaml:"tag"`
	Text     *string        `yaml:"text"`
	Fragment bool           `yaml:"fragment"`
	Portal   string         `yaml:"portal"`
	Key      string         `yaml:"key"`
	Data     map[string]any `yaml:"data"`
	Children []*Node        `yaml:"children"`

	// Position of the node in the scene file.
	Line   int `yaml:"-"`
	Column int `yaml:"-"`
}

// UnmarshalYAML records the node's position.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	type plain Node
	if err := value.Decode((*plain)(n)); err != nil {
		return err
	}
	n.Line, n.Column = value.Line, value.Column
	return nil
}

// Load reads and parses a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E030").Wrap(err).
			WithDetail(path)
	}
	return Parse(data, path)
}

// Parse parses scene YAML. file is used in error locations and may be empty.
func Parse(data []byte, file string) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		e := errors.New("E030").Wrap(err)
		if file != "" {
			e.WithDetail(file)
		}
		return nil, e
	}
	s.File = file
	if s.Container == "" {
		s.Container = DefaultContainer
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the container selector, the targets and every node.
func (s *Scene) Validate() error {
	if !strings.HasPrefix(s.Container, "#") || len(s.Container) < 2 {
		return errors.New("E030").
			WithDetail(fmt.Sprintf("container %q is not an #id selector", s.Container))
	}
	seen := map[string]bool{s.Container[1:]: true}
	for _, id := range s.Targets {
		if id == "" || strings.ContainsAny(id, "#. ") {
			return errors.New("E030").WithDetail(fmt.Sprintf("target %q is not a plain id", id))
		}
		if seen[id] {
			return errors.New("E030").WithDetail(fmt.Sprintf("duplicate element id %q", id))
		}
		seen[id] = true
	}
	if len(s.Frames) == 0 {
		return errors.New("E030").WithDetail("scene has no frames")
	}
	for _, f := range s.Frames {
		if f.Tree == nil {
			continue
		}
		if err := s.validateNode(f.Tree); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scene) validateNode(n *Node) error {
	set := 0
	for _, ok := range []bool{n.Tag != "", n.Text != nil && n.Tag == "", n.Fragment, n.Portal != ""} {
		if ok {
			set++
		}
	}
	switch {
	case set != 1:
		return s.nodeError(n, "a node must set exactly one of tag, text, fragment or portal")
	case n.Tag == "" && n.Text != nil && len(n.Children) > 0:
		return s.nodeError(n, "a text node cannot have children")
	case n.Tag != "" && n.Text != nil && len(n.Children) > 0:
		return s.nodeError(n, "text shorthand cannot be combined with children")
	case n.Tag == "" && len(n.Data) > 0:
		return s.nodeError(n, "only tag nodes take data")
	}
	for _, c := range n.Children {
		if c == nil {
			return s.nodeError(n, "empty child")
		}
		if err := s.validateNode(c); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scene) nodeError(n *Node, detail string) error {
	e := errors.New("E031").WithDetail(detail)
	if s.File != "" {
		e.WithLocation(s.File, n.Line, n.Column)
	}
	return e
}

// Tree builds the tree of frame i. It returns nil for an unmount frame.
func (s *Scene) Tree(i int) (*vdom.VNode, error) {
	if i < 0 || i >= len(s.Frames) {
		return nil, fmt.Errorf("scene: frame %d out of range [0, %d)", i, len(s.Frames))
	}
	if s.Frames[i].Tree == nil {
		return nil, nil
	}
	return Build(s.Frames[i].Tree), nil
}

// Build converts a validated node description into a VNode.
func Build(n *Node) *vdom.VNode {
	children := make([]any, 0, len(n.Children))
	for _, c := range n.Children {
		children = append(children, Build(c))
	}

	var v *vdom.VNode
	switch {
	case n.Tag != "":
		if n.Text != nil {
			children = append(children, *n.Text)
		}
		v = vdom.Element(n.Tag, n.Data, children...)
	case n.Text != nil:
		v = vdom.Text(*n.Text)
	case n.Fragment:
		v = vdom.Fragment(children...)
	default:
		v = vdom.Portal(vdom.Selector(n.Portal), children...)
	}
	if n.Key != "" {
		v.WithKey(n.Key)
	}
	return v
}

// FrameName returns the name of frame i, or its index when unnamed.
func (s *Scene) FrameName(i int) string {
	if i >= 0 && i < len(s.Frames) && s.Frames[i].Name != "" {
		return s.Frames[i].Name
	}
	return fmt.Sprintf("#%d", i)
}
