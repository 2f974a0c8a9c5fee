// Package mutex guards a value with a lock.
package mutex

import "sync"

// Mutex protects a value of type T.
//
// T is normally a pointer so that changes made while locked stick:
//
//	topics := mutex.New(&openTopics{})
//	t := topics.Lock()
//	defer topics.Unlock()
//	t.add("invoice")
type Mutex[T any] struct {
	m sync.Mutex
	v T
}

func New[T any](v T) *Mutex[T] {
	return &Mutex[T]{v: v}
}

// Lock the Mutex and return the protected value.
func (l *Mutex[T]) Lock() T {
	l.m.Lock()
	return l.v
}

// Unlock the Mutex. The value returned by Lock must not be used afterwards.
func (l *Mutex[T]) Unlock() {
	l.m.Unlock()
}

// With calls fn with the protected value while holding the lock.
func (l *Mutex[T]) With(fn func(v T)) {
	l.m.Lock()
	defer l.m.Unlock()
	fn(l.v)
}
