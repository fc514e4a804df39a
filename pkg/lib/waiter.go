package lib

import (
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

var ErrWaiterTimeout = errors.New("waiter timeout")

type IWaiter interface {
	Wait() error
	Done()
}

// CountWaiter 等待 Done 被调用 count 次，超过 timeout 返回 ErrWaiterTimeout
type CountWaiter struct {
	remain  atomic.Int64
	ch      chan struct{}
	timeout time.Duration
}

func NewCountWaiter(count int, timeout time.Duration) *CountWaiter {
	w := &CountWaiter{
		ch:      make(chan struct{}),
		timeout: timeout,
	}
	w.remain.Store(int64(count))
	if count <= 0 {
		close(w.ch)
	}
	return w
}

func (w *CountWaiter) Wait() error {
	if w.timeout <= 0 {
		<-w.ch
		return nil
	}
	timer := time.NewTimer(w.timeout)
	defer timer.Stop()
	select {
	case <-w.ch:
		return nil
	case <-timer.C:
		return errors.Wrapf(ErrWaiterTimeout, "remain:%d", w.remain.Load())
	}
}

// Done 多余的调用会被忽略
func (w *CountWaiter) Done() {
	if w.remain.Add(-1) == 0 {
		close(w.ch)
	}
}
