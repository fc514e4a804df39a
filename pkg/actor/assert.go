//go:build !debug

package actor

func (a *Actor) assertInside() {}
