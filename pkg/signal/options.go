package signal

import "github.com/dzm2020/actress/pkg/dispatch"

const defaultName = "Signal"

type Option func(*Options)

type Options struct {
	Name                    string
	DisposeOnLastDisconnect bool
	Dispatcher              dispatch.Dispatcher
}

func loadOptions(options ...Option) *Options {
	opts := &Options{Name: defaultName}
	for _, option := range options {
		option(opts)
	}
	return opts
}

func WithName(name string) Option {
	return func(op *Options) {
		op.Name = name
	}
}

// WithDisposeOnLastDisconnect 最后一个 observer 断开后释放 Signal 自己的 DisposeBag
func WithDisposeOnLastDisconnect() Option {
	return func(op *Options) {
		op.DisposeOnLastDisconnect = true
	}
}

func WithDispatcher(dispatcher dispatch.Dispatcher) Option {
	return func(op *Options) {
		op.Dispatcher = dispatcher
	}
}
