// Package dispose 订阅等资源的释放
package dispose

import "github.com/dzm2020/actress/pkg/lib/stopper"

// Disposable 可释放的资源
type Disposable interface {
	Dispose()
}

// Func 把函数适配为 Disposable
type Func func()

func (f Func) Dispose() {
	if f != nil {
		f()
	}
}

type once struct {
	stopper.Stopper
	d Disposable
}

// Once 包装 d，保证 d.Dispose 最多执行一次
func Once(d Disposable) Disposable {
	if d == nil {
		return Func(nil)
	}
	return &once{d: d}
}

func (o *once) Dispose() {
	o.StopFunc(o.d.Dispose)
}
