package dispatch

type Option func(*Options)

type Options struct {
	Dispatcher Dispatcher
	Throughput int
}

func loadOptions(options ...Option) *Options {
	opts := &Options{}
	for _, option := range options {
		option(opts)
	}
	if opts.Dispatcher == nil {
		opts.Dispatcher = DefaultDispatcher()
	}
	if opts.Throughput > 0 {
		opts.Dispatcher = withThroughput{Dispatcher: opts.Dispatcher, throughput: opts.Throughput}
	}
	return opts
}

func WithDispatcher(dispatcher Dispatcher) Option {
	return func(op *Options) {
		op.Dispatcher = dispatcher
	}
}

// WithThroughput 覆盖调度器自带的吞吐量
func WithThroughput(throughput int) Option {
	return func(op *Options) {
		op.Throughput = throughput
	}
}

type withThroughput struct {
	Dispatcher
	throughput int
}

func (d withThroughput) Throughput() int {
	return d.throughput
}
