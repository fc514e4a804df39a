package dispatch

import (
	"sync/atomic"

	"github.com/dzm2020/actress/pkg/lib/workers"
)

// DefaultThroughput 每处理多少个任务让出一次 CPU
const DefaultThroughput = 50

// Dispatcher 决定队列的排空循环在哪个 goroutine 上执行
type Dispatcher interface {
	Schedule(fn func(), recoverFun func(err interface{})) error
	Throughput() int
}

// 协程池调度器，排空循环跑在 ants 协程池上
type poolDispatcher int

func NewPoolDispatcher(throughput int) Dispatcher {
	return poolDispatcher(throughput)
}

func (poolDispatcher) Schedule(fn func(), recoverFun func(err interface{})) error {
	return workers.Submit(fn, recoverFun)
}

func (d poolDispatcher) Throughput() int {
	return int(d)
}

// 协程调度器，每次排空新起一个 goroutine
type goroutineDispatcher int

func NewGoroutineDispatcher(throughput int) Dispatcher {
	return goroutineDispatcher(throughput)
}

func (goroutineDispatcher) Schedule(fn func(), recoverFun func(err interface{})) error {
	go workers.Try(fn, recoverFun)
	return nil
}

func (d goroutineDispatcher) Throughput() int {
	return int(d)
}

// 同步调度器，排空循环直接在投递者的 goroutine 上执行
type synchronizedDispatcher int

func NewSynchronizedDispatcher(throughput int) Dispatcher {
	return synchronizedDispatcher(throughput)
}

func (synchronizedDispatcher) Schedule(fn func(), recoverFun func(err interface{})) error {
	workers.Try(fn, recoverFun)
	return nil
}

func (d synchronizedDispatcher) Throughput() int {
	return int(d)
}

type dispatcherHolder struct {
	Dispatcher
}

var defaultDispatcher atomic.Pointer[dispatcherHolder]

func init() {
	SetDefaultDispatcher(NewPoolDispatcher(DefaultThroughput))
}

// SetDefaultDispatcher 修改之后新建队列使用的调度器，已创建的队列不受影响
func SetDefaultDispatcher(d Dispatcher) {
	if d == nil {
		return
	}
	defaultDispatcher.Store(&dispatcherHolder{Dispatcher: d})
}

func DefaultDispatcher() Dispatcher {
	return defaultDispatcher.Load().Dispatcher
}
