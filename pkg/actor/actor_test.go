package actor

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dzm2020/actress/pkg/dispatch"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitTimeout = 5 * time.Second

func collect[T any](t *testing.T, ch <-chan T, n int) []T {
	t.Helper()
	out := make([]T, 0, n)
	for len(out) < n {
		select {
		case v := <-ch:
			out = append(out, v)
		case <-time.After(waitTimeout):
			t.Fatalf("timeout, got %d/%d values: %v", len(out), n, out)
		}
	}
	return out
}

// ---------------------------------------------------------------- EchoActor

const (
	methodEcho    = "Echo"
	methodSpeakUp = "SpeakUp"
)

type echoActor struct {
	*Actor
	quiet *Behavior
}

func newEchoActor(name string) *echoActor {
	return &echoActor{
		Actor: New(name),
		quiet: NewBehavior("quiet", methodSpeakUp),
	}
}

func (e *echoActor) Echo(text string, queue *dispatch.Queue, cont Continuation[string]) {
	Call(e.Actor, methodEcho, queue, cont, func(reply Continuation[string]) {
		if text == "shutup" {
			e.Push(e.quiet)
		}
		reply(text)
	})
}

func (e *echoActor) SpeakUp(queue *dispatch.Queue, cont Continuation[string]) {
	Call(e.Actor, methodSpeakUp, queue, cont, func(reply Continuation[string]) {
		e.Pop()
		reply("yo")
	})
}

func TestEcho(t *testing.T) {
	main := dispatch.NewQueue("main")
	e := newEchoActor("e")
	replies := make(chan string, 3)
	onMain := make(chan bool, 3)

	e.Echo("shutup", main, func(s string) {
		onMain <- main.IsCurrent()
		replies <- s
		e.Echo("hi", main, func(s string) {
			onMain <- main.IsCurrent()
			replies <- s
		})
		e.SpeakUp(main, func(s string) {
			onMain <- main.IsCurrent()
			replies <- s
		})
	})

	assert.Equal(t, []string{"shutup", "yo", "hi"}, collect(t, replies, 3))
	assert.Equal(t, []bool{true, true, true}, collect(t, onMain, 3))
}

func TestEchoSubmittedBackToBack(t *testing.T) {
	main := dispatch.NewQueue("main")
	e := newEchoActor("e")
	replies := make(chan string, 3)
	push := func(s string) { replies <- s }

	e.Echo("shutup", main, push)
	e.Echo("hi", main, push)
	e.SpeakUp(main, push)

	assert.Equal(t, []string{"shutup", "yo", "hi"}, collect(t, replies, 3))
}

// ---------------------------------------------------------------- Adder

type adder struct {
	*Actor
	value int
}

func (a *adder) Add(delta int) {
	a.Send("Add", func(done func()) {
		a.value += delta
		done()
	})
}

func (a *adder) Reset() {
	a.Send("Reset", func(done func()) {
		a.value = 0
		done()
	})
}

func (a *adder) Sum(queue *dispatch.Queue, cont Continuation[int]) {
	Call(a.Actor, "Sum", queue, cont, func(reply Continuation[int]) {
		reply(a.value)
	})
}

func TestOneway(t *testing.T) {
	main := dispatch.NewQueue("main")
	a := &adder{Actor: New("a")}
	sums := make(chan int, 2)

	a.Add(3)
	a.Sum(main, func(v int) {
		sums <- v
		a.Reset()
		a.Sum(main, func(v int) {
			sums <- v
		})
	})

	assert.Equal(t, []int{3, 0}, collect(t, sums, 2))
}

// ---------------------------------------------------------------- scheduling

func TestFIFOWithoutOverlap(t *testing.T) {
	const n = 200
	a := New("fifo")
	var inFlight, maxInFlight atomic.Int32
	order := make(chan int, n)

	for i := 0; i < n; i++ {
		i := i
		Call(a, "Step", nil, nil, func(reply Continuation[struct{}]) {
			if v := inFlight.Add(1); v > maxInFlight.Load() {
				maxInFlight.Store(v)
			}
			order <- i
			// 在别的 goroutine 上完成，验证 actor 在 reply 之前一直处于忙碌状态
			go func() {
				time.Sleep(time.Microsecond)
				inFlight.Add(-1)
				reply(struct{}{})
			}()
		})
	}

	got := collect(t, order, n)
	for i, v := range got {
		require.Equal(t, i, v)
	}
	assert.Equal(t, int32(1), maxInFlight.Load())
}

func TestConcurrentSubmittersNeverOverlap(t *testing.T) {
	const producers, perProducer = 8, 100
	a := New("overlap")
	var inFlight atomic.Int32
	var overlapped atomic.Bool
	var wg sync.WaitGroup
	done := make(chan struct{}, producers*perProducer)

	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				a.Send("Work", func(finish func()) {
					if inFlight.Add(1) > 1 {
						overlapped.Store(true)
					}
					go func() {
						inFlight.Add(-1)
						done <- struct{}{}
						finish()
					}()
				})
			}
		}()
	}
	wg.Wait()

	collect(t, done, producers*perProducer)
	assert.False(t, overlapped.Load())
}

// gate 的 Lock 压入只接受 A / Unlock 的行为，Unlock 弹出
type gate struct {
	*Actor
	locked *Behavior
	trace  []string
}

func (g *gate) record(method, tag string, queue *dispatch.Queue, cont Continuation[string], fn func()) {
	Call(g.Actor, method, queue, cont, func(reply Continuation[string]) {
		if fn != nil {
			fn()
		}
		g.trace = append(g.trace, tag)
		reply(tag)
	})
}

func TestBehaviorDefersIneligibleActivities(t *testing.T) {
	main := dispatch.NewQueue("main")
	g := &gate{Actor: New("gate")}
	g.locked = NewBehavior("locked", "A", "Unlock")
	out := make(chan string, 6)
	push := func(s string) { out <- s }

	g.record("Lock", "lock", main, push, func() { g.Push(g.locked) })
	g.record("X", "x1", main, push, nil)
	g.record("A", "a1", main, push, nil)
	g.record("X", "x2", main, push, nil)
	g.record("A", "a2", main, push, nil)
	g.record("Unlock", "unlock", main, push, func() { g.Pop() })

	assert.Equal(t, []string{"lock", "a1", "a2", "unlock", "x1", "x2"}, collect(t, out, 6))
}

func TestBecomeReplacesStack(t *testing.T) {
	main := dispatch.NewQueue("main")
	a := New("become")
	onlyB := NewBehavior("onlyB", "B")
	out := make(chan string, 3)
	push := func(s string) { out <- s }

	Call(a, "Setup", main, push, func(reply Continuation[string]) {
		a.Push(NewBehavior("first", "Setup"))
		a.Push(NewBehavior("second", "Setup"))
		a.Become(onlyB)
		reply("setup")
	})
	Call(a, "A", main, push, func(reply Continuation[string]) {
		reply("a")
	})
	Call(a, "B", main, push, func(reply Continuation[string]) {
		a.Become(nil)
		reply("b")
	})

	assert.Equal(t, []string{"setup", "b", "a"}, collect(t, out, 3))
}

func TestBehaviorChangeFromInterleaveRescans(t *testing.T) {
	main := dispatch.NewQueue("main")
	a := New("rescan")
	out := make(chan string, 1)

	a.Do(func() { a.Become(NewBehavior("closed")) })
	Call(a, "Work", main, func(s string) { out <- s }, func(reply Continuation[string]) {
		reply("work")
	})

	stats := make(chan Stats, 1)
	a.Inspect(main, func(s Stats) { stats <- s })
	st := collect(t, stats, 1)[0]
	assert.Equal(t, 1, st.Pending)
	assert.False(t, st.Busy)
	assert.Equal(t, "closed", st.Behavior)

	a.Do(func() { a.Become(nil) })
	assert.Equal(t, []string{"work"}, collect(t, out, 1))
}

func TestInterleaveDoesNotWaitForCurrentActivity(t *testing.T) {
	main := dispatch.NewQueue("main")
	a := New("interleave")
	var pending func()
	out := make(chan string, 3)

	a.Send("Hold", func(done func()) {
		pending = done
		out <- "hold"
	})
	Call(a, "After", main, func(s string) { out <- s }, func(reply Continuation[string]) {
		reply("after")
	})
	Interleave(a, main, func(s string) { out <- s }, func(reply Continuation[string]) {
		// 仍在 actor 队列上，可以安全访问 Hold 留下的状态
		pending()
		reply("interleaved")
	})

	assert.Equal(t, []string{"hold", "interleaved", "after"}, collect(t, out, 3))
}

func TestContinuationAtMostOnce(t *testing.T) {
	main := dispatch.NewQueue("main")
	a := New("twice")
	out := make(chan int, 4)

	Call(a, "Twice", main, func(v int) { out <- v }, func(reply Continuation[int]) {
		reply(1)
		reply(2)
	})
	Call(a, "Next", main, func(v int) { out <- v }, func(reply Continuation[int]) {
		reply(3)
	})

	assert.Equal(t, []int{1, 3}, collect(t, out, 2))
	select {
	case v := <-out:
		t.Fatalf("unexpected extra reply %d", v)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNilQueueDeliversOnActorQueue(t *testing.T) {
	a := New("self")
	onSelf := make(chan bool, 1)
	Call(a, "Self", nil, func(struct{}) { onSelf <- a.Queue().IsCurrent() }, func(reply Continuation[struct{}]) {
		reply(struct{}{})
	})
	assert.True(t, collect(t, onSelf, 1)[0])
}

func TestPopEmptyPanics(t *testing.T) {
	a := New("pop")
	recovered := make(chan interface{}, 1)
	a.Do(func() {
		defer func() { recovered <- recover() }()
		a.Pop()
	})

	r := collect(t, recovered, 1)[0]
	err, ok := r.(error)
	require.True(t, ok)
	assert.True(t, errors.Is(err, ErrUnbalancedBehavior))
}

func TestBehaviorMethods(t *testing.T) {
	b := NewBehavior("b", "z", "a", "m")
	assert.Equal(t, "b", b.Name())
	assert.Equal(t, []string{"a", "m", "z"}, b.Methods())
	assert.True(t, b.Admits("m"))
	assert.False(t, b.Admits("x"))

	var none *Behavior
	assert.Equal(t, "<any>", none.String())
}
