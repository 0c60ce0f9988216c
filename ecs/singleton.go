package ecs

import (
	"reflect"
	"unsafe"
)

// Singleton is a typed handle to world-wide state that does not belong to an
// entity: score, input, configuration. Handles created for the same type and
// storage share one value.
type Singleton[T any] struct {
	storage *Storage
	ptr     unsafe.Pointer
}

// NewSingleton returns a handle for T, creating the value if needed. The
// optional initializer is only used when the singleton does not exist yet.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	t := reflect.TypeFor[T]()
	if storage.singletonEntry(t) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}
	s := &Singleton[T]{}
	s.bind(storage)
	return s
}

// bind is called by the Scheduler for Singleton fields of registered systems.
func (s *Singleton[T]) bind(storage *Storage) {
	s.storage = storage
	s.ptr = nil
	s.lookup()
}

func (s *Singleton[T]) lookup() {
	if s.storage == nil {
		return
	}
	if entry := s.storage.singletonEntry(reflect.TypeFor[T]()); entry != nil {
		s.ptr = entry.dataPtr
	}
}

// Get returns the singleton value, or nil if it was never added.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil {
		s.lookup()
	}
	return (*T)(s.ptr)
}

// Exists reports whether the singleton has been added to the storage.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
