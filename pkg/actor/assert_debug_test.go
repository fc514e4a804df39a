//go:build debug

package actor

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func offQueue(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ErrOffQueue))
	}()
	fn()
}

// TestBehaviorOffQueuePanics 测试在 actor 队列之外修改行为栈会 panic
func TestBehaviorOffQueuePanics(t *testing.T) {
	a := New("off-queue")
	b := NewBehavior("b", "M")

	offQueue(t, func() { a.Push(b) })
	offQueue(t, func() { a.Become(b) })
	offQueue(t, func() { a.Pop() })
}

func TestBehaviorOnQueueAllowed(t *testing.T) {
	a := New("on-queue")
	done := make(chan interface{}, 1)
	a.Do(func() {
		defer func() { done <- recover() }()
		a.Push(NewBehavior("b", "M"))
		a.Pop()
	})
	assert.Nil(t, collect(t, done, 1)[0])
}
