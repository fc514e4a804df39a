package actor

import "golang.org/x/exp/slices"

// Behavior 不可变的方法名集合，表示 actor 当前愿意处理哪些消息
type Behavior struct {
	name    string
	methods map[string]struct{}
}

func NewBehavior(name string, methods ...string) *Behavior {
	b := &Behavior{
		name:    name,
		methods: make(map[string]struct{}, len(methods)),
	}
	for _, m := range methods {
		b.methods[m] = struct{}{}
	}
	return b
}

func (b *Behavior) Name() string {
	return b.name
}

// Methods 返回排好序的副本
func (b *Behavior) Methods() []string {
	methods := make([]string, 0, len(b.methods))
	for m := range b.methods {
		methods = append(methods, m)
	}
	slices.Sort(methods)
	return methods
}

func (b *Behavior) Admits(method string) bool {
	_, ok := b.methods[method]
	return ok
}

func (b *Behavior) String() string {
	if b == nil {
		return "<any>"
	}
	return b.name
}
