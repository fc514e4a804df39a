package signal

import (
	"github.com/dzm2020/actress/pkg/actor"
	"github.com/dzm2020/actress/pkg/dispatch"
	"github.com/dzm2020/actress/pkg/dispose"
	"github.com/dzm2020/actress/pkg/glog"
	"github.com/dzm2020/actress/pkg/lib/stopper"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

const (
	methodConnect   = "Connect"
	methodEmit      = "Emit"
	methodObservers = "Observers"
)

var _ Observable[int] = (*Signal[int])(nil)

// Signal 用 actor 实现的 Observable，adapters 只在 Signal 的队列上读写
type Signal[T any] struct {
	*actor.Actor
	disposeOnLastDisconnect bool
	adapters                []*adapter[T]
	disposed                stopper.Stopper
}

func New[T any](options ...Option) *Signal[T] {
	opts := loadOptions(options...)
	var actorOpts []actor.Option
	if opts.Dispatcher != nil {
		actorOpts = append(actorOpts, actor.WithDispatcher(opts.Dispatcher))
	}
	return &Signal[T]{
		Actor:                   actor.New(opts.Name, actorOpts...),
		disposeOnLastDisconnect: opts.DisposeOnLastDisconnect,
	}
}

// Connect 同一个 observer 可以重复连接，每次得到独立的 Disposable。
// observer 为 nil 时不会连接，cont 仍会收到一个空的 Disposable。
func (s *Signal[T]) Connect(observer Observer[T], queue *dispatch.Queue, cont actor.Continuation[dispose.Disposable]) {
	if observer == nil {
		glog.Warn("signal: connect nil observer", zap.String("signal", s.Name()))
		if cont == nil {
			return
		}
		if queue == nil {
			queue = s.Queue()
		}
		queue.Async(func() {
			cont(dispose.Func(nil))
		})
		return
	}
	actor.Call(s.Actor, methodConnect, queue, cont, func(reply actor.Continuation[dispose.Disposable]) {
		ad := newAdapter(s, observer)
		s.adapters = append(s.adapters, ad)
		reply(ad)
	})
}

// Emit 在同一个 activity 内按连接顺序同步调用每个 observer
func (s *Signal[T]) Emit(value T) {
	s.Send(methodEmit, func(done func()) {
		for _, ad := range s.adapters {
			ad.Detect(value)
		}
		done()
	})
}

// Observers 当前连接数
func (s *Signal[T]) Observers(queue *dispatch.Queue, cont actor.Continuation[int]) {
	actor.Call(s.Actor, methodObservers, queue, cont, func(reply actor.Continuation[int]) {
		reply(len(s.adapters))
	})
}

// disconnect 由 adapter.Dispose 触发。
// 用 interleave 而不是 activity：observer 可能在 Emit 的回调里释放自己，此时 Emit 仍占着 actor。
func (s *Signal[T]) disconnect(ad *adapter[T]) {
	s.Do(func() {
		i := slices.Index(s.adapters, ad)
		if i < 0 {
			return
		}
		s.adapters = slices.Delete(s.adapters, i, i+1)
		glog.Debug("signal: observer disconnected", zap.String("signal", s.Name()), zap.Int("observers", len(s.adapters)))
		if len(s.adapters) == 0 && s.disposeOnLastDisconnect {
			s.disposed.StopFunc(s.DisposeBag().Dispose)
		}
	})
}

// adopt 在 Signal 队列上收下上游订阅；已经自动释放过的 Signal 直接释放它
func (s *Signal[T]) adopt(d dispose.Disposable) {
	if s.disposed.IsStop() {
		d.Dispose()
		return
	}
	s.DisposeBag().Add(d)
}
