package scene

import (
	"context"
	"log/slog"
	"strings"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/host"
	"github.com/vango-dev/reconcile/pkg/protocol"
	"github.com/vango-dev/reconcile/pkg/reconcile"
)

// Player renders the frames of a scene, one per Step, into an in-memory
// document and records the mutations each frame causes.
//
// Player is not safe for concurrent use.
type Player struct {
	scene     *Scene
	doc       *host.Document
	rec       *protocol.Recorder
	engine    *reconcile.Engine
	logger    *slog.Logger
	container host.Handle
	next      int
}

// NewPlayer builds the scene's document (container and portal targets under
// the root) and an engine rendering into it through a Recorder.
func NewPlayer(s *Scene, logger *slog.Logger, opts ...reconcile.Option) (*Player, error) {
	if logger == nil {
		logger = slog.Default()
	}
	doc := host.NewDocument()
	container, err := addElement(doc, s.Container[1:])
	if err != nil {
		return nil, err
	}
	for _, id := range s.Targets {
		if _, err := addElement(doc, id); err != nil {
			return nil, err
		}
	}

	rec := protocol.NewRecorder(doc)
	// The setup above is not part of any frame.
	opts = append([]reconcile.Option{reconcile.WithLogger(logger)}, opts...)
	return &Player{
		scene:     s,
		doc:       doc,
		rec:       rec,
		engine:    reconcile.New(rec, opts...),
		logger:    logger,
		container: container,
	}, nil
}

func addElement(doc *host.Document, id string) (host.Handle, error) {
	h := doc.CreateElement("div", "")
	doc.SetAttribute(h, "id", id)
	if err := doc.AppendChild(doc.Root(), h); err != nil {
		return host.None, errors.New("E007").Wrap(err)
	}
	return h, nil
}

// Scene returns the scene being played.
func (p *Player) Scene() *Scene { return p.scene }

// Document returns the document frames are rendered into.
func (p *Player) Document() *host.Document { return p.doc }

// Container returns the live container of the scene.
func (p *Player) Container() host.Handle { return p.container }

// Engine returns the engine rendering the scene.
func (p *Player) Engine() *reconcile.Engine { return p.engine }

// Next returns the index of the frame the next Step renders.
func (p *Player) Next() int { return p.next }

// Done reports whether every frame has been rendered.
func (p *Player) Done() bool { return p.next >= len(p.scene.Frames) }

// Step renders the next frame and returns the mutations it caused. The
// returned frame is nil when the render changed nothing. Step on a finished
// player is a no-op.
func (p *Player) Step(ctx context.Context) (*protocol.Frame, error) {
	if p.Done() {
		return nil, nil
	}
	i := p.next
	tree, err := p.scene.Tree(i)
	if err != nil {
		return nil, err
	}
	if err := p.engine.Render(ctx, tree, p.container); err != nil {
		return nil, err
	}
	p.next++

	f := p.rec.Flush(p.container)
	n := 0
	if f != nil {
		n = len(f.Mutations)
	}
	p.logger.Debug("frame rendered", "scene", p.scene.Name, "frame", p.scene.FrameName(i), "mutations", n)
	return f, nil
}

// Rewind unmounts the container so the scene can be played again from the
// first frame. The unmount mutations are returned like those of a Step.
func (p *Player) Rewind(ctx context.Context) (*protocol.Frame, error) {
	if err := p.engine.Render(ctx, nil, p.container); err != nil {
		return nil, err
	}
	p.next = 0
	return p.rec.Flush(p.container), nil
}

// Snapshot returns a snapshot frame holding the container's current HTML.
// Its sequence number is that of the last mutation frame.
func (p *Player) Snapshot() *protocol.Frame {
	return &protocol.Frame{
		Type:      protocol.FrameSnapshot,
		Seq:       p.rec.Seq(),
		Container: p.container,
		HTML:      p.doc.InnerHTML(p.container),
	}
}

// HTML serializes the container's children.
func (p *Player) HTML(cfg host.HTMLConfig) (string, error) {
	var b strings.Builder
	for _, c := range p.doc.Children(p.container) {
		if err := p.doc.WriteHTML(&b, c, cfg); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}
