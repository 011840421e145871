// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package active runs long-lived producer and consumer loops as owned
// goroutines.
//
// A [Task] is a function of a context. [Start] runs one Task on its own
// goroutine and returns an [Object] handle; teardown of the handle always
// joins the goroutine, so no loop outlives its owner. [Group] runs a set of
// Tasks that share a context and fail together.
//
//	obj := active.Start(ctx, func(ctx context.Context) error {
//	    for {
//	        v, err := q.Take(ctx)
//	        if err != nil {
//	            return err
//	        }
//	        handle(v)
//	    }
//	}, active.WithName("consumer"))
//	defer obj.Close()
//
// A panic inside a Task is recovered and reported as the Task's error.
package active
