// Package telemetry provides non-rendering telemetry implementations.
package telemetry

import (
	"context"
	"io"

	"github.com/talon-mods/talon/internal/core/domain"
	"github.com/talon-mods/talon/internal/core/ports"
)

// NoOp is a ports.Telemetry implementation that records nothing. It keeps
// call sites unconditional: code records vertices the same way whether or not
// a session is being rendered.
type NoOp struct{}

func NewNoOp() *NoOp {
	return &NoOp{}
}

// Record returns a vertex that swallows everything.
func (t *NoOp) Record(ctx context.Context, _ string, _ ...ports.VertexOption) (context.Context, ports.Vertex) {
	v := &NoOpVertex{}
	return ports.ContextWithVertex(ctx, v), v
}

// Close does nothing.
func (t *NoOp) Close() error { return nil }

// NoOpVertex is a vertex that discards all recorded data.
type NoOpVertex struct{}

func (v *NoOpVertex) Stdout() io.Writer               { return io.Discard }
func (v *NoOpVertex) Stderr() io.Writer               { return io.Discard }
func (v *NoOpVertex) Log(_ domain.LogLevel, _ string) {}
func (v *NoOpVertex) Progress(_, _ int64)             {}
func (v *NoOpVertex) Complete(_ error)                {}
func (v *NoOpVertex) Cached()                         {}

var _ ports.Telemetry = (*NoOp)(nil)
