// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package active

import (
	"context"

	"go.uber.org/zap"
)

// Object owns one goroutine running a Task.
//
// Teardown is join-based: Close and Stop return only after the goroutine
// has exited. Both are idempotent and safe to call from several
// goroutines.
type Object struct {
	name   string
	log    *zap.Logger
	cancel context.CancelFunc
	done   chan struct{}
	err    error // Written before done is closed
}

// Start runs task on a new goroutine with a context derived from ctx.
func Start(ctx context.Context, task Task, opts ...Option) *Object {
	s := newSettings(opts)
	ctx, cancel := context.WithCancel(ctx)
	o := &Object{
		name:   s.name,
		log:    s.log,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	o.log.Debug("active: starting", zap.String("name", o.name))
	go o.loop(ctx, task)
	return o
}

func (o *Object) loop(ctx context.Context, task Task) {
	defer close(o.done)
	defer o.cancel()

	o.err = run(ctx, task)
	switch {
	case o.err == nil, IsCancel(o.err):
		o.log.Debug("active: exited", zap.String("name", o.name))
	default:
		o.log.Warn("active: exited with error", zap.String("name", o.name), zap.Error(o.err))
	}
}

// Done is closed when the goroutine has exited.
func (o *Object) Done() <-chan struct{} {
	return o.done
}

// Wait blocks until the goroutine exits and returns the task's error.
func (o *Object) Wait() error {
	<-o.done
	return o.err
}

// Close joins the goroutine without cancelling it. The task is expected to
// finish on its own, e.g. because its queue was closed.
func (o *Object) Close() error {
	return o.Wait()
}

// Stop cancels the task's context and joins the goroutine.
func (o *Object) Stop() error {
	o.cancel()
	return o.Wait()
}

// Name returns the name given by WithName.
func (o *Object) Name() string {
	return o.name
}
