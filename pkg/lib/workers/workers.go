/**
 * @Author: dingQingHui
 * @Description:
 * @File: workers
 * @Version: 1.0.0
 * @Date: 2025/1/2 10:16
 */

package workers

import (
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
)

// DefaultPoolSize 协程池默认容量
const DefaultPoolSize = 5000

var (
	runCount   atomic.Int64
	panicCount atomic.Uint64

	mu   sync.Mutex
	pool *ants.Pool
)

// Init 创建协程池，已存在时调整容量
func Init(size int) error {
	if size <= 0 {
		size = DefaultPoolSize
	}
	mu.Lock()
	defer mu.Unlock()
	if pool != nil {
		pool.Tune(size)
		return nil
	}
	p, err := ants.NewPool(size)
	if err != nil {
		return errors.Wrapf(err, "workers: new pool size:%d", size)
	}
	pool = p
	return nil
}

func getPool() (*ants.Pool, error) {
	mu.Lock()
	defer mu.Unlock()
	if pool == nil {
		p, err := ants.NewPool(DefaultPoolSize)
		if err != nil {
			return nil, errors.Wrap(err, "workers: new default pool")
		}
		pool = p
	}
	return pool, nil
}

// Submit 把 fn 投递到协程池，fn 中的 panic 交给 recoverFun 处理
func Submit(fn func(), recoverFun func(err interface{})) error {
	p, err := getPool()
	if err != nil {
		return err
	}
	return p.Submit(func() {
		runCount.Add(1)
		Try(fn, recoverFun)
		runCount.Add(-1)
	})
}

func Try(fn func(), reFun func(err interface{})) {
	defer func() {
		if err := recover(); err != nil {
			panicCount.Add(1)
			if reFun != nil {
				reFun(err)
			}
		}
	}()
	fn()
}

// Running 正在协程池中执行的任务数
func Running() int64 {
	return runCount.Load()
}

// PanicCount 累计捕获的 panic 次数
func PanicCount() uint64 {
	return panicCount.Load()
}
