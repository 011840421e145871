// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package active

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Group runs Tasks that share one context. The first Task to return a
// non-nil error cancels the rest; Wait joins them all.
type Group struct {
	g      *errgroup.Group
	ctx    context.Context
	cancel context.CancelFunc
	name   string
	log    *zap.Logger
}

// NewGroup returns an empty Group whose Tasks run under a context derived
// from ctx.
func NewGroup(ctx context.Context, opts ...Option) *Group {
	s := newSettings(opts)
	ctx, cancel := context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)
	return &Group{g: g, ctx: ctx, cancel: cancel, name: s.name, log: s.log}
}

// Go starts task on a new goroutine.
func (g *Group) Go(task Task) {
	g.g.Go(func() error {
		err := run(g.ctx, task)
		if err != nil && !IsCancel(err) {
			g.log.Warn("active: group task failed", zap.String("name", g.name), zap.Error(err))
		}
		return err
	})
}

// Context returns the context shared by the Group's Tasks.
func (g *Group) Context() context.Context {
	return g.ctx
}

// Wait joins every Task and returns the first error.
func (g *Group) Wait() error {
	defer g.cancel()
	return g.g.Wait()
}

// Stop cancels the shared context and joins every Task.
func (g *Group) Stop() error {
	g.cancel()
	return g.Wait()
}
