package stopper

import "sync/atomic"

// Stopper 一次性开关，只有第一次 Stop 返回 true
type Stopper struct {
	isStopped atomic.Bool
}

func (s *Stopper) IsStop() bool {
	return s.isStopped.Load()
}

func (s *Stopper) Stop() bool {
	return s.isStopped.CompareAndSwap(false, true)
}

// StopFunc 第一次 Stop 时执行 fn，之后的调用什么也不做
func (s *Stopper) StopFunc(fn func()) bool {
	if !s.Stop() {
		return false
	}
	if fn != nil {
		fn()
	}
	return true
}
