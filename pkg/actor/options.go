package actor

import "github.com/dzm2020/actress/pkg/dispatch"

type Option func(*Options)

type Options struct {
	Queue      *dispatch.Queue
	Dispatcher dispatch.Dispatcher
}

func loadOptions(options ...Option) *Options {
	opts := &Options{}
	for _, option := range options {
		option(opts)
	}
	return opts
}

// WithQueue 使用外部队列；多个 actor 共享同一队列时仍然各自串行
func WithQueue(queue *dispatch.Queue) Option {
	return func(op *Options) {
		op.Queue = queue
	}
}

func WithDispatcher(dispatcher dispatch.Dispatcher) Option {
	return func(op *Options) {
		op.Dispatcher = dispatcher
	}
}
