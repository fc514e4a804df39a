package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/dzm2020/actress/internal/config"
	"github.com/dzm2020/actress/pkg/actor"
	"github.com/dzm2020/actress/pkg/dispatch"
	"github.com/dzm2020/actress/pkg/dispose"
	"github.com/dzm2020/actress/pkg/glog"
	"github.com/dzm2020/actress/pkg/lib"
	"github.com/dzm2020/actress/pkg/signal"

	"go.uber.org/zap"
)

var configPath = flag.String("config", "", "yaml config file")

func main() {
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			panic(err)
		}
	}
	if err := config.Apply(cfg); err != nil {
		panic(err)
	}
	defer glog.Stop()

	const count = 5
	sender := NewSender("sender")
	receiver := NewReceiver("receiver", sender.Ticks, count)
	mainQueue := dispatch.NewQueue("main")

	for i := 1; i <= count; i++ {
		sender.Tick(i)
	}
	if err := receiver.Wait(); err != nil {
		glog.Error("demo: wait receiver", zap.Error(err))
		return
	}

	totalCh := make(chan int, 1)
	receiver.Total(mainQueue, func(total int) {
		totalCh <- total
	})
	glog.Info("demo: receiver done", zap.Int("total", <-totalCh))
	receiver.DisposeBag().Dispose()
}

// Sender 每次 Tick 发出一个值
type Sender struct {
	*actor.Actor
	Ticks *signal.Signal[int]
}

func NewSender(name string) *Sender {
	return &Sender{
		Actor: actor.New(name),
		Ticks: signal.New[int](signal.WithName(name + ".ticks")),
	}
}

func (s *Sender) Tick(n int) {
	s.Send("Tick", func(done func()) {
		s.Ticks.Emit(n)
		done()
	})
}

// Receiver 通过 MethodSlot 收原始值，通过 Map 之后的 ClosureSlot 收格式化后的值
type Receiver struct {
	*actor.Actor
	total int
	done  *lib.CountWaiter
}

func NewReceiver(name string, ticks *signal.Signal[int], expect int) *Receiver {
	r := &Receiver{
		Actor: actor.New(name),
		done:  lib.NewCountWaiter(expect*2, 5*time.Second),
	}
	ticks.Connect(signal.NewMethodSlot(r, (*Receiver).DidReceive), r.Queue(), r.DisposeBag().Add)
	labels := signal.Map(ticks, func(n int) string {
		return fmt.Sprintf("tick-%d", n)
	})
	labels.Connect(signal.ClosureSlotFor(r.Actor, func(label string) {
		glog.Info("demo: label", zap.String("label", label))
		r.done.Done()
	}), r.Queue(), func(d dispose.Disposable) {
		r.DisposeBag().Add(d)
	})
	return r
}

func (r *Receiver) DidReceive(n int) {
	r.Send("DidReceive", func(done func()) {
		r.total += n
		glog.Info("demo: received", zap.Int("value", n), zap.Int("total", r.total))
		r.done.Done()
		done()
	})
}

func (r *Receiver) Total(queue *dispatch.Queue, cont actor.Continuation[int]) {
	actor.Call(r.Actor, "Total", queue, cont, func(reply actor.Continuation[int]) {
		reply(r.total)
	})
}

func (r *Receiver) Wait() error {
	return r.done.Wait()
}
