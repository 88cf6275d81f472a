// Package syncmap wraps sync.Map with a typed channel API for pairing
// dispatcher requests with their response channels.
package syncmap

import "sync"

type Map[T any] struct {
	syncMap sync.Map
}

func (m *Map[T]) LoadOrStore(key string, value chan T) (chan T, bool) {
	val, loaded := m.syncMap.LoadOrStore(key, value)
	return val.(chan T), loaded
}

func (m *Map[T]) Load(key string) chan T {
	val, ok := m.syncMap.Load(key)
	if ok {
		return val.(chan T)
	}
	return nil
}

func (m *Map[T]) Exists(key string) bool {
	_, ok := m.syncMap.Load(key)
	return ok
}

func (m *Map[T]) Store(key string, value chan T) {
	m.syncMap.Store(key, value)
}

func (m *Map[T]) Delete(key string) {
	m.syncMap.Delete(key)
}
