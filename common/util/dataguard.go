// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package util

import "sync"

// DataGuard pairs a value with an RWMutex so that readers and writers
// cannot observe it mid-update. The registry uses it to guard its
// entry table.
type DataGuard[T any] struct {
	mutex sync.RWMutex
	value T
}

// NewDataGuard returns a DataGuard holding the given initial value.
func NewDataGuard[T any](val T) *DataGuard[T] {
	return &DataGuard[T]{
		value: val,
	}
}

// Load runs the callback with the stored value under a read lock. The
// callback must not retain the value past its return when T has
// reference semantics.
func (g *DataGuard[T]) Load(cb func(T)) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	cb(g.value)
}

// GetValue returns a snapshot of the stored value. Use Load instead
// when the caller needs the value to stay consistent across several
// reads.
func (g *DataGuard[T]) GetValue() T {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	return g.value
}

// Store replaces the stored value with the callback's return, under
// the write lock.
func (g *DataGuard[T]) Store(cb func(T) T) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	g.value = cb(g.value)
}
