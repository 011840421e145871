// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bbq_test

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"code.hybscloud.com/bbq"
)

// ExampleNewBounded demonstrates fail-fast enqueue and FIFO dequeue.
func ExampleNewBounded() {
	q := bbq.NewBounded[string](2)

	fmt.Println(q.Enqueue("A"))
	fmt.Println(q.Enqueue("B"))
	fmt.Println(q.Enqueue("C")) // full

	for range 2 {
		v, _ := q.Dequeue(time.Second)
		fmt.Println(v)
	}

	// Output:
	// true
	// true
	// false
	// A
	// B
}

// ExampleBounded_SetOpen demonstrates graceful shutdown: consumers drain the
// remaining items, then see (zero-value, false).
func ExampleBounded_SetOpen() {
	q := bbq.NewBounded[int](8)
	for i := 1; i <= 3; i++ {
		q.Enqueue(i * 10)
	}

	var wg sync.WaitGroup
	var got []int
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			v, ok := q.Dequeue(time.Second)
			if !ok {
				return
			}
			got = append(got, v)
		}
	}()

	q.SetOpen(false)
	wg.Wait()

	fmt.Println(got)
	fmt.Println(q.IsOpen())

	// Output:
	// [10 20 30]
	// false
}

// ExampleBuild demonstrates the ReturnOnTimeout wait policy.
func ExampleBuild() {
	q := bbq.Build[int](bbq.New(4).ReturnOnTimeout())

	_, ok := q.Dequeue(10 * time.Millisecond)
	fmt.Println("timed out:", !ok, "open:", q.IsOpen())

	// Output:
	// timed out: true open: true
}

// ExampleBounded_Take demonstrates a context-aware consumer loop.
func ExampleBounded_Take() {
	q := bbq.NewBounded[string](4)
	q.EnqueueBatch([]string{"x", "y"})
	q.Close()

	ctx := context.Background()
	for {
		v, err := q.Take(ctx)
		if bbq.IsClosed(err) {
			fmt.Println("drained")
			return
		}
		fmt.Println(v)
	}

	// Output:
	// x
	// y
	// drained
}

// ExamplePush demonstrates producer-side backpressure.
func ExamplePush() {
	q := bbq.NewBounded[int](2)
	ctx := context.Background()

	var wg sync.WaitGroup
	var got []int
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			v, ok := q.Dequeue(time.Second)
			if !ok {
				return
			}
			got = append(got, v)
		}
	}()

	for i := range 10 {
		if err := bbq.Push(ctx, q, i); err != nil {
			fmt.Println("push:", err)
		}
	}
	q.Close()
	wg.Wait()

	slices.Sort(got)
	fmt.Println(got)

	// Output:
	// [0 1 2 3 4 5 6 7 8 9]
}
