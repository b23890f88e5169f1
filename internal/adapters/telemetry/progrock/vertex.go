package progrock

import (
	"fmt"
	"io"

	"github.com/talon-mods/talon/internal/core/domain"
	"github.com/vito/progrock"
)

// Vertex implements ports.Vertex wrapping *progrock.VertexRecorder.
type Vertex struct {
	vertex *progrock.VertexRecorder
	weak   bool

	lastMilestone int64
}

// Stdout returns a writer to capture standard output stream.
func (v *Vertex) Stdout() io.Writer {
	return v.vertex.Stdout()
}

// Stderr returns a writer to capture error output stream.
func (v *Vertex) Stderr() io.Writer {
	return v.vertex.Stderr()
}

// Log records a structured log message associated with this vertex.
func (v *Vertex) Log(level domain.LogLevel, msg string) {
	_, _ = fmt.Fprintf(v.vertex.Stdout(), "[%s] %s\n", level.String(), msg)
}

// Progress records byte progress as milestone lines on the vertex output:
// every 10% when the total is known, every 8 MiB otherwise. Transports call
// this per chunk; milestones keep the tape small.
func (v *Vertex) Progress(current, total int64) {
	const unknownStep = 8 << 20

	var milestone int64
	if total > 0 {
		milestone = current * 10 / total
	} else {
		milestone = current / unknownStep
	}
	if milestone == v.lastMilestone && current != total {
		return
	}
	v.lastMilestone = milestone

	if total > 0 {
		_, _ = fmt.Fprintf(v.vertex.Stdout(), "%d/%d bytes (%d%%)\n", current, total, current*100/total)
	} else {
		_, _ = fmt.Fprintf(v.vertex.Stdout(), "%d bytes\n", current)
	}
}

// Complete marks the vertex as finished (successfully or with an error). Weak
// vertices report their error on the output stream instead of failing the
// recording.
func (v *Vertex) Complete(err error) {
	if err != nil && v.weak {
		_, _ = fmt.Fprintf(v.vertex.Stderr(), "%v\n", err)
		v.vertex.Done(nil)
		return
	}
	v.vertex.Done(err)
}

// Cached marks the vertex as a cache hit.
func (v *Vertex) Cached() {
	v.vertex.Cached()
}
