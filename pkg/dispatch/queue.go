package dispatch

import (
	"runtime"
	"sync/atomic"
	"time"

	"github.com/dzm2020/actress/pkg/glog"
	"github.com/dzm2020/actress/pkg/lib"
	"github.com/dzm2020/actress/pkg/lib/workers"

	"go.uber.org/zap"
)

const (
	idle int32 = iota
	running
)

var queueID atomic.Uint64

// Queue 串行队列：任务按投递顺序逐个执行，任意时刻最多一个任务在运行
type Queue struct {
	id       uint64
	label    string
	tasks    *lib.Mpsc[func()]
	dispatch Dispatcher
	state    atomic.Int32
	pending  atomic.Int64
}

func NewQueue(label string, options ...Option) *Queue {
	opts := loadOptions(options...)
	return &Queue{
		id:       queueID.Add(1),
		label:    label,
		tasks:    lib.NewMpsc[func()](),
		dispatch: opts.Dispatcher,
	}
}

func (q *Queue) ID() uint64 {
	return q.id
}

func (q *Queue) Label() string {
	return q.label
}

// Len 尚未执行的任务数，仅供观察
func (q *Queue) Len() int {
	return int(q.pending.Load())
}

// Async 投递任务，立即返回
func (q *Queue) Async(task func()) {
	if task == nil {
		return
	}
	q.pending.Add(1)
	q.tasks.Push(task)
	q.schedule()
}

// AsyncAfter 延迟 d 后再投递任务；任务入队之前可以通过返回的 Timer 取消
func (q *Queue) AsyncAfter(d time.Duration, task func()) *lib.Timer {
	return lib.AfterFunc(d, func() {
		q.Async(task)
	})
}

// schedule 通过 CAS 保证同一时刻只有一个排空循环
func (q *Queue) schedule() {
	if !q.state.CompareAndSwap(idle, running) {
		return
	}
	if err := q.dispatch.Schedule(q.process, q.onPanic); err != nil {
		glog.Error("dispatch: schedule failed, fallback to goroutine", zap.String("queue", q.label), zap.Error(err))
		go workers.Try(q.process, q.onPanic)
	}
}

func (q *Queue) process() {
	for {
		q.drain()
		q.state.Store(idle)
		// 置为 idle 之后再检查一次，投递者可能在我们退出前 push 了任务但 CAS 失败
		if q.tasks.Empty() {
			return
		}
		if !q.state.CompareAndSwap(idle, running) {
			return
		}
	}
}

func (q *Queue) drain() {
	gid, outer := q.enter()
	defer q.leave(gid, outer)

	throughput := q.dispatch.Throughput()
	var processed int
	for {
		task, ok := q.tasks.Pop()
		if !ok {
			return
		}
		q.pending.Add(-1)
		workers.Try(task, q.onTaskPanic)

		processed++
		if throughput > 0 && processed >= throughput {
			processed = 0
			runtime.Gosched()
		}
	}
}

func (q *Queue) onTaskPanic(err interface{}) {
	glog.Error("dispatch: task panic", zap.String("queue", q.label), zap.Any("err", err), zap.Stack("stack"))
}

func (q *Queue) onPanic(err interface{}) {
	glog.Error("dispatch: drain panic", zap.String("queue", q.label), zap.Any("err", err))
	q.state.Store(idle)
	if !q.tasks.Empty() {
		q.schedule()
	}
}
