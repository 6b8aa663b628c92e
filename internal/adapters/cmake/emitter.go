package cmake

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.trai.ch/cppdeps/internal/core/domain"
	"go.trai.ch/cppdeps/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.TargetAttacher = (*Emitter)(nil)

// Emitter attaches targets by writing target_link_libraries statements to a writer.
type Emitter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewEmitter creates an Emitter writing to w.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

// Attach writes `target_link_libraries(<consumer> <VISIBILITY> <target>)`.
func (e *Emitter) Attach(ctx context.Context, consumer string, visibility domain.Visibility, target string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := fmt.Fprintf(e.w, "target_link_libraries(%s %s %s)\n", consumer, visibility.Keyword(), target); err != nil {
		return zerr.Wrap(err, "failed to write link statement")
	}
	return nil
}
