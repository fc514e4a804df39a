package lib

import (
	"sync"
	"time"

	"github.com/RussellLuo/timingwheel"
)

var (
	tw     *timingwheel.TimingWheel
	twOnce sync.Once
)

// Timer 时间轮定时器，到期前可以 Stop
type Timer struct {
	*timingwheel.Timer
}

// wheel 第一次使用时才启动时间轮，避免只引用包就常驻 goroutine
func wheel() *timingwheel.TimingWheel {
	twOnce.Do(func() {
		tw = timingwheel.NewTimingWheel(time.Millisecond, 3600)
		tw.Start()
	})
	return tw
}

// AfterFunc 注册一次性定时器，到期后在时间轮的 goroutine 上执行 callback
func AfterFunc(duration time.Duration, callback func()) *Timer {
	t := wheel().AfterFunc(duration, func() {
		if callback != nil {
			callback()
		}
	})
	return &Timer{Timer: t}
}
