package reconcile

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/host"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// Render operations, as reported in metrics and spans.
const (
	OpMount   = "mount"
	OpPatch   = "patch"
	OpUnmount = "unmount"
	OpNoop    = "noop"
)

// Render brings container in line with v.
//
// With no previous tree, v is mounted. With a previous tree, v is patched
// against it, or, when v is nil, the previous tree is removed. The
// container's record is updated only when the operation succeeds; after a
// failed render the live tree under container is unspecified.
func (e *Engine) Render(ctx context.Context, v *vdom.VNode, container host.Handle) (err error) {
	if !container.Valid() {
		return errors.New("E009")
	}
	leave, err := e.enter("Render")
	if err != nil {
		return err
	}
	defer leave()

	prev := e.roots[container]
	op := renderOp(prev, v)

	_, span := e.tracer.Start(ctx, "reconcile.Render", trace.WithAttributes(
		attribute.String("reconcile.op", op),
		attribute.Int64("reconcile.container", int64(container)),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		e.metrics.observeRender(op, time.Since(start), err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			e.logger.Error("render failed", "op", op, "container", container, "error", err)
		}
	}()

	switch op {
	case OpMount:
		if err = e.mount(v, container, false); err != nil {
			return err
		}
		e.roots[container] = v
	case OpPatch:
		if err = e.patch(prev, v, container, false); err != nil {
			return err
		}
		e.roots[container] = v
	case OpUnmount:
		if err = e.unmount(prev, container); err != nil {
			return err
		}
		delete(e.roots, container)
	}

	e.logger.Debug("rendered", "op", op, "container", container)
	return nil
}

func renderOp(prev, next *vdom.VNode) string {
	switch {
	case prev == nil && next == nil:
		return OpNoop
	case prev == nil:
		return OpMount
	case next != nil:
		return OpPatch
	default:
		return OpUnmount
	}
}
