package dispatch

import (
	"github.com/duke-git/lancet/v2/maputil"
	"github.com/petermattis/goid"
)

// goroutine id -> 正在该 goroutine 上排空的队列
var draining = maputil.NewConcurrentMap[int64, *Queue](64)

// Current 返回当前 goroutine 正在排空的队列，不在任何队列上时返回 nil
func Current() *Queue {
	q, _ := draining.Get(goid.Get())
	return q
}

// IsCurrent 当前代码是否运行在 q 上
func (q *Queue) IsCurrent() bool {
	return Current() == q
}

// enter 同步调度器下队列可能嵌套排空，返回值用于 leave 时恢复外层队列
func (q *Queue) enter() (gid int64, outer *Queue) {
	gid = goid.Get()
	outer, _ = draining.Get(gid)
	draining.Set(gid, q)
	return gid, outer
}

func (q *Queue) leave(gid int64, outer *Queue) {
	if outer != nil {
		draining.Set(gid, outer)
		return
	}
	draining.Delete(gid)
}
