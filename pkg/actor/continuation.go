package actor

import (
	"sync/atomic"

	"github.com/dzm2020/actress/pkg/glog"

	"go.uber.org/zap"
)

// Continuation 异步结果的回调，最多被调用一次
type Continuation[T any] func(T)

// once 重复调用会被忽略并记录告警
func once[T any](a *Actor, method string, cont Continuation[T]) Continuation[T] {
	var fired atomic.Bool
	return func(t T) {
		if !fired.CompareAndSwap(false, true) {
			glog.Warn("actor: continuation reused",
				zap.String("actor", a.name), zap.String("method", method), zap.Error(ErrContinuationReused))
			return
		}
		cont(t)
	}
}
