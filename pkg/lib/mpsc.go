// Package lib
// @Description: 无锁多生产者单消费者队列

package lib

import (
	"sync/atomic"
	"unsafe"
)

type node[T any] struct {
	next *node[T]
	val  T
}

// Mpsc 多个 goroutine 可以并发 Push，同一时刻只允许一个消费者 Pop
type Mpsc[T any] struct {
	head, tail *node[T]
}

func NewMpsc[T any]() *Mpsc[T] {
	q := &Mpsc[T]{}
	stub := &node[T]{}
	q.head = stub
	q.tail = stub
	return q
}

func (q *Mpsc[T]) Push(x T) {
	n := &node[T]{val: x}
	prev := (*node[T])(atomic.SwapPointer((*unsafe.Pointer)(unsafe.Pointer(&q.head)), unsafe.Pointer(n)))
	atomic.StorePointer((*unsafe.Pointer)(unsafe.Pointer(&prev.next)), unsafe.Pointer(n))
}

// Pop 只能由消费者调用，队列为空时返回 false
func (q *Mpsc[T]) Pop() (T, bool) {
	var zero T
	tail := q.tail
	next := (*node[T])(atomic.LoadPointer((*unsafe.Pointer)(unsafe.Pointer(&tail.next)))) // acquire
	if next == nil {
		return zero, false
	}
	q.tail = next
	v := next.val
	// 释放引用，避免已出队元素被 stub 节点持有
	next.val = zero
	return v, true
}

func (q *Mpsc[T]) Empty() bool {
	tail := q.tail
	next := (*node[T])(atomic.LoadPointer((*unsafe.Pointer)(unsafe.Pointer(&tail.next))))
	return next == nil
}
