package dispose

import "sync"

// Bag 聚合多个 Disposable，Dispose 时按加入顺序全部释放并清空
type Bag struct {
	mu          sync.Mutex
	disposables []Disposable
}

func NewBag() *Bag {
	return &Bag{}
}

// Add 可以直接作为 actor.Continuation[Disposable] 使用
func (b *Bag) Add(d Disposable) {
	if d == nil {
		return
	}
	b.mu.Lock()
	b.disposables = append(b.disposables, d)
	b.mu.Unlock()
}

// Dispose 先取出再释放，释放过程中重入 Add/Dispose 不会死锁
func (b *Bag) Dispose() {
	b.mu.Lock()
	disposables := b.disposables
	b.disposables = nil
	b.mu.Unlock()

	for _, d := range disposables {
		d.Dispose()
	}
}

func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.disposables)
}
