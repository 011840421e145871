// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bbq

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// For Offer: the queue is full (backpressure)
// For Poll: the queue is empty but still open
//
// ErrWouldBlock is a control flow signal, not a failure. The caller should
// retry later (see [Push]) or drop the item.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// ErrClosed is returned by Take and Poll once the queue has been closed
// and every queued item has been delivered.
//
// It marks the end of the stream for a consumer: no further item will
// ever be returned by the same queue.
var ErrClosed = errors.New("bbq: queue closed")

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsClosed reports whether err indicates a closed and drained queue.
func IsClosed(err error) bool {
	return errors.Is(err, ErrClosed)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil, ErrWouldBlock, ErrMore or ErrClosed.
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err) || IsClosed(err)
}
