package config

import (
	"os"

	"github.com/dzm2020/actress/pkg/dispatch"
	"github.com/dzm2020/actress/pkg/glog"
	"github.com/dzm2020/actress/pkg/lib/workers"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DispatcherPool         = "pool"
	DispatcherGoroutine    = "goroutine"
	DispatcherSynchronized = "synchronized"
)

// Config 进程级配置
type Config struct {
	Glog     glog.Config    `yaml:"glog"`
	Dispatch DispatchConfig `yaml:"dispatch"`
}

// DispatchConfig 队列调度配置
type DispatchConfig struct {
	// Dispatcher pool / goroutine / synchronized
	Dispatcher string `yaml:"dispatcher"`
	// PoolSize ants 协程池容量
	PoolSize int `yaml:"poolSize"`
	// Throughput 排空循环每处理多少个任务让出一次 CPU
	Throughput int `yaml:"throughput"`
}

func Default() *Config {
	return &Config{
		Glog: *glog.DefaultConfig(),
		Dispatch: DispatchConfig{
			Dispatcher: DispatcherPool,
			PoolSize:   workers.DefaultPoolSize,
			Throughput: dispatch.DefaultThroughput,
		},
	}
}

// Load 读取 yaml 文件，未出现的字段保留默认值
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config file failed")
	}
	cfg := Default()
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config failed")
	}
	return cfg, nil
}

// Apply 初始化日志、协程池和默认调度器
func Apply(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	dispatcher, err := cfg.Dispatch.newDispatcher()
	if err != nil {
		return err
	}
	glog.Init(&cfg.Glog)
	if err = workers.Init(cfg.Dispatch.PoolSize); err != nil {
		return err
	}
	dispatch.SetDefaultDispatcher(dispatcher)
	return nil
}

func (c DispatchConfig) newDispatcher() (dispatch.Dispatcher, error) {
	throughput := c.Throughput
	if throughput <= 0 {
		throughput = dispatch.DefaultThroughput
	}
	switch c.Dispatcher {
	case "", DispatcherPool:
		return dispatch.NewPoolDispatcher(throughput), nil
	case DispatcherGoroutine:
		return dispatch.NewGoroutineDispatcher(throughput), nil
	case DispatcherSynchronized:
		return dispatch.NewSynchronizedDispatcher(throughput), nil
	default:
		return nil, ErrUnknownDispatcher(c.Dispatcher)
	}
}

func ErrUnknownDispatcher(name string) error {
	return errors.Errorf("unknown dispatcher: %s", name)
}
