// Package actor 主动对象：发往同一实例的所有工作都在它私有的串行队列上执行，
// 并可以通过行为栈做选择性接收。
package actor

import (
	"github.com/dzm2020/actress/pkg/dispatch"
	"github.com/dzm2020/actress/pkg/dispose"
	"github.com/dzm2020/actress/pkg/glog"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// activity 一次 actor 方法调用，以方法名标记
type activity struct {
	method string
	run    func()
}

// Actor 用法：业务类型内嵌 *Actor，每个方法体用 Call / Send 包装。
//
// activities / current / behaviors 只会在 queue 上读写。
type Actor struct {
	name       string
	queue      *dispatch.Queue
	activities []*activity
	current    *activity
	behaviors  []*Behavior
	bag        *dispose.Bag
}

func New(name string, options ...Option) *Actor {
	opts := loadOptions(options...)
	queue := opts.Queue
	if queue == nil {
		var queueOpts []dispatch.Option
		if opts.Dispatcher != nil {
			queueOpts = append(queueOpts, dispatch.WithDispatcher(opts.Dispatcher))
		}
		queue = dispatch.NewQueue(name, queueOpts...)
	}
	return &Actor{
		name:  name,
		queue: queue,
		bag:   dispose.NewBag(),
	}
}

func (a *Actor) Name() string {
	return a.name
}

// Queue actor 私有的串行队列
func (a *Actor) Queue() *dispatch.Queue {
	return a.queue
}

// DisposeBag 随 actor 生命周期释放的订阅
func (a *Actor) DisposeBag() *dispose.Bag {
	return a.bag
}

// Call 带返回值的 actor 方法。
//
// handler 在 actor 队列上独占执行；handler 调用 reply 后，结果投递到 queue 上执行 cont，
// 同时 actor 变为空闲并调度下一个可执行的 activity。handler 不调用 reply 时 actor 将永远阻塞。
// queue 为 nil 时 cont 在 actor 自己的队列上执行。
func Call[T any](a *Actor, method string, queue *dispatch.Queue, cont Continuation[T], handler func(reply Continuation[T])) {
	if handler == nil {
		return
	}
	a.queue.Async(func() {
		a.startActivity(method, func() {
			handler(once[T](a, method, func(t T) {
				deliver(a, queue, cont, t)
				a.queue.Async(a.finishActivity)
			}))
		})
	})
}

// Send 单向 actor 方法，done 只用于释放调度器
func (a *Actor) Send(method string, handler func(done func())) {
	if handler == nil {
		return
	}
	a.queue.Async(func() {
		a.startActivity(method, func() {
			finish := once[struct{}](a, method, func(struct{}) {
				a.queue.Async(a.finishActivity)
			})
			handler(func() { finish(struct{}{}) })
		})
	})
}

// Interleave 在 actor 队列上执行，但不经过 activity 队列和行为过滤，也不占用当前 activity。
// 用于某个 activity 尚未完成时仍需进入 actor 的逻辑（例如释放订阅）。
func Interleave[T any](a *Actor, queue *dispatch.Queue, cont Continuation[T], handler func(reply Continuation[T])) {
	if handler == nil {
		return
	}
	a.queue.Async(func() {
		handler(once[T](a, "interleave", func(t T) {
			deliver(a, queue, cont, t)
		}))
	})
}

// Do 无返回值的 Interleave
func (a *Actor) Do(fn func()) {
	a.queue.Async(fn)
}

func deliver[T any](a *Actor, queue *dispatch.Queue, cont Continuation[T], t T) {
	if cont == nil {
		return
	}
	if queue == nil {
		queue = a.queue
	}
	queue.Async(func() {
		cont(t)
	})
}

// Become 清空行为栈，b 不为 nil 时压入 b
func (a *Actor) Become(b *Behavior) {
	a.assertInside()
	clear(a.behaviors)
	a.behaviors = a.behaviors[:0]
	if b != nil {
		a.behaviors = append(a.behaviors, b)
	}
	a.runNextActivity()
}

func (a *Actor) Push(b *Behavior) {
	a.assertInside()
	if b == nil {
		return
	}
	a.behaviors = append(a.behaviors, b)
	a.runNextActivity()
}

// Pop 弹出最近压入的行为，栈为空属于调用方违约
func (a *Actor) Pop() {
	a.assertInside()
	n := len(a.behaviors)
	if n == 0 {
		panic(errors.Wrapf(ErrUnbalancedBehavior, "actor:%s", a.name))
	}
	a.behaviors[n-1] = nil
	a.behaviors = a.behaviors[:n-1]
	a.runNextActivity()
}

func (a *Actor) top() *Behavior {
	if n := len(a.behaviors); n > 0 {
		return a.behaviors[n-1]
	}
	return nil
}

func (a *Actor) startActivity(method string, run func()) {
	a.activities = append(a.activities, &activity{method: method, run: run})
	a.runNextActivity()
}

func (a *Actor) finishActivity() {
	a.current = nil
	a.runNextActivity()
}

func (a *Actor) runNextActivity() {
	if a.current != nil || len(a.activities) == 0 {
		return
	}
	next := a.selectActivity()
	if next == nil {
		glog.Debug("actor: no admitted activity",
			zap.String("actor", a.name), zap.Stringer("behavior", a.top()), zap.Int("pending", len(a.activities)))
		return
	}
	a.current = next
	next.run()
}

// selectActivity 从队头扫描，取出第一个被栈顶行为接受的 activity，其余保持原有顺序
func (a *Actor) selectActivity() *activity {
	behavior := a.top()
	i := slices.IndexFunc(a.activities, func(act *activity) bool {
		return behavior == nil || behavior.Admits(act.method)
	})
	if i < 0 {
		return nil
	}
	act := a.activities[i]
	a.activities = slices.Delete(a.activities, i, i+1)
	return act
}

// Stats actor 内部状态快照
type Stats struct {
	Name     string
	Pending  int
	Busy     bool
	Behavior string
}

// Inspect 以 interleave 方式读取内部状态，结果投递到 queue
func (a *Actor) Inspect(queue *dispatch.Queue, cont Continuation[Stats]) {
	Interleave(a, queue, cont, func(reply Continuation[Stats]) {
		reply(Stats{
			Name:     a.name,
			Pending:  len(a.activities),
			Busy:     a.current != nil,
			Behavior: a.top().String(),
		})
	})
}
