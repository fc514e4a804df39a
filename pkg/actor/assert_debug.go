//go:build debug

package actor

import "github.com/pkg/errors"

// assertInside 行为栈只能在 actor 自己的队列上修改
func (a *Actor) assertInside() {
	if !a.queue.IsCurrent() {
		panic(errors.Wrapf(ErrOffQueue, "actor:%s queue:%s", a.name, a.queue.Label()))
	}
}
