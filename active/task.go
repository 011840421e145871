// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package active

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Task is a unit of work run on its own goroutine.
// It should return when ctx is done.
type Task func(ctx context.Context) error

// Func adapts a function that ignores cancellation and cannot fail.
func Func(f func()) Task {
	return func(context.Context) error {
		f()
		return nil
	}
}

// Option configures an Object or a Group.
type Option func(*settings)

type settings struct {
	name string
	log  *zap.Logger
}

// WithName names the goroutine in log entries.
func WithName(name string) Option {
	return func(s *settings) { s.name = name }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.log = l
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{name: "active", log: zap.NewNop()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// run calls task and converts a panic into an error with a stack trace.
func run(ctx context.Context, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("active: task panicked: %v", r)
		}
	}()
	return task(ctx)
}

// IsCancel reports whether err only signals that the task's context ended.
func IsCancel(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
