// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package loader

import (
	"fmt"
	"slices"
	"sync"
)

var (
	mu       sync.RWMutex
	registry = make(map[string]Loader)
)

// Register adds a loader to the registry.
func Register(l Loader) {
	mu.Lock()
	defer mu.Unlock()
	meta := l.Metadata()
	if _, exists := registry[meta.Name]; exists {
		panic(fmt.Sprintf("loader %q already registered", meta.Name))
	}
	registry[meta.Name] = l
}

// Get returns a loader by name.
func Get(name string) (Loader, bool) {
	mu.RLock()
	defer mu.RUnlock()
	l, ok := registry[name]
	return l, ok
}

// List returns all registered loader names, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// All returns all registered loaders, sorted by name.
func All() []Loader {
	mu.RLock()
	defer mu.RUnlock()
	loaders := make([]Loader, 0, len(registry))
	for _, l := range registry {
		loaders = append(loaders, l)
	}
	slices.SortFunc(loaders, func(a, b Loader) int {
		switch an, bn := a.Metadata().Name, b.Metadata().Name; {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		return 0
	})
	return loaders
}

// Reset clears the registry (for testing).
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	registry = make(map[string]Loader)
}
