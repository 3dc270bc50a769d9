// Package multitask processes a sequence of items with a fixed number of
// workers. Items are handed out one at a time through a mutex-guarded
// cursor, so the source never needs to be safe for concurrent use.
package multitask

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sync"

	"golang.org/x/sync/errgroup"
)

var ErrInvalidWorkers = errors.New("multitask: number of workers must be positive")

// NextFunc returns the next item, or false once the source is drained.
type NextFunc[T any] func() (T, bool)

// ProcessFunc handles one item. A non-nil error cancels the remaining work.
type ProcessFunc[T any] func(ctx context.Context, item T) error

type Option func(*config)

type config struct {
	logger Logger
}

// WithLogger routes worker lifecycle and failure logs to l.
func WithLogger(l Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts []Option) config {
	c := config{logger: noopLogger{}}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Group is a running batch started by Run.
type Group struct {
	done chan struct{}
	err  error
}

// Wait blocks until every worker returned and reports the first error.
func (g *Group) Wait() error {
	<-g.done
	return g.err
}

// Done is closed once every worker returned.
func (g *Group) Done() <-chan struct{} { return g.done }

// Run starts workers goroutines that pull items from next until it is
// drained, process fails, or ctx is cancelled. It does not block.
func Run[T any](ctx context.Context, workers int, next NextFunc[T], process ProcessFunc[T], opts ...Option) *Group {
	cfg := newConfig(opts)
	grp := &Group{done: make(chan struct{})}
	if workers < 1 {
		grp.err = fmt.Errorf("%w: %d", ErrInvalidWorkers, workers)
		close(grp.done)
		return grp
	}

	var mu sync.Mutex
	pull := func() (T, bool) {
		mu.Lock()
		defer mu.Unlock()
		return next()
	}

	eg, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		eg.Go(func() error {
			processed := 0
			cfg.logger.Debug("worker started", "worker", w)
			defer func() { cfg.logger.Debug("worker stopped", "worker", w, "processed", processed) }()
			for {
				if err := ctx.Err(); err != nil {
					return err
				}
				item, ok := pull()
				if !ok {
					return nil
				}
				if err := process(ctx, item); err != nil {
					cfg.logger.Error("processing failed", "worker", w, "error", err)
					return err
				}
				processed++
			}
		})
	}
	go func() {
		grp.err = eg.Wait()
		close(grp.done)
	}()
	return grp
}

// RunAndWait is Run followed by Wait.
func RunAndWait[T any](ctx context.Context, workers int, next NextFunc[T], process ProcessFunc[T], opts ...Option) error {
	return Run(ctx, workers, next, process, opts...).Wait()
}

// RunSeq processes every item of seq and blocks until done.
func RunSeq[T any](ctx context.Context, workers int, seq iter.Seq[T], process ProcessFunc[T], opts ...Option) error {
	next, stop := iter.Pull(seq)
	defer stop()
	return RunAndWait(ctx, workers, NextFunc[T](next), process, opts...)
}

// RunSlice processes items without a shared cursor: worker k handles the
// indexes k, k+workers, k+2*workers and so on. It blocks until done.
func RunSlice[T any](ctx context.Context, workers int, items []T, process ProcessFunc[T], opts ...Option) error {
	cfg := newConfig(opts)
	if workers < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, workers)
	}
	eg, ctx := errgroup.WithContext(ctx)
	for w := range min(workers, len(items)) {
		eg.Go(func() error {
			for i := w; i < len(items); i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := process(ctx, items[i]); err != nil {
					cfg.logger.Error("processing failed", "worker", w, "index", i, "error", err)
					return err
				}
			}
			return nil
		})
	}
	return eg.Wait()
}
