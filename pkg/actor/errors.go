package actor

import "github.com/pkg/errors"

var (
	// ErrUnbalancedBehavior 行为栈为空时 Pop
	ErrUnbalancedBehavior = errors.New("actor: pop on empty behavior stack")
	// ErrContinuationReused 同一个 continuation 被调用了多次
	ErrContinuationReused = errors.New("actor: continuation invoked more than once")
	// ErrOffQueue 在 actor 队列之外修改行为栈（仅 debug 构建检查）
	ErrOffQueue = errors.New("actor: behavior changed outside the actor queue")
)
