// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"
	"io"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/assemble/internal/core/ports"
)

// Recorder implements the ports.Telemetry interface using the vito/progrock library.
type Recorder struct {
	w      progrock.Writer
	rec    *progrock.Recorder
	mirror io.Writer
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithOutput mirrors every vertex's output streams to w.
// Writes from concurrently running vertices are serialized.
func WithOutput(w io.Writer) Option {
	return func(r *Recorder) {
		r.mirror = &lockedWriter{w: w}
	}
}

// New creates a new Recorder with a default tape.
func New(opts ...Option) *Recorder {
	return NewRecorder(progrock.NewTape(), opts...)
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer, opts ...Option) *Recorder {
	r := &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record starts recording a new vertex. Vertex digests are derived from the name,
// so a vertex declared as an input of another is linked by name.
func (r *Recorder) Record(ctx context.Context, name string, opts ...ports.VertexOption) (context.Context, ports.Vertex) {
	var cfg ports.VertexConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var vopts []progrock.VertexOpt
	if len(cfg.Inputs) > 0 {
		inputs := make([]digest.Digest, len(cfg.Inputs))
		for i, in := range cfg.Inputs {
			inputs[i] = digest.FromString(in)
		}
		vopts = append(vopts, progrock.WithInputs(inputs...))
	}

	v := r.rec.Vertex(digest.FromString(name), name, vopts...)
	vertex := &Vertex{vertex: v, mirror: r.mirror}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
