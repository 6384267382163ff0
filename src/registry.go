/* Copyright 2016-2026 nix <https://keybase.io/nixn>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License. */

package src

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"github.com/nixn/hname/names"
)

// handleType is what a handle refers to: either a mutable names.Name or an immutable names.Value
type handleType struct {
	kind  kindType
	name  names.Name
	value names.Value
}

func (h *handleType) reader() names.Reader {
	if h.name != nil {
		return h.name
	}
	return h.value
}

func (h *handleType) String() string {
	return fmt.Sprintf("%s(%q)", h.kind, h.reader().AsDataString())
}

// registryType holds the handles of one client. The least recently used handle is evicted when the registry is full.
// lru.Cache does its own locking.
type registryType struct {
	handles  *lru.Cache
	dropping bool // lru.Cache calls the eviction callback on Remove too
}

func newRegistry(size int, onEvict func(handle string, h *handleType)) (*registryType, error) {
	r := &registryType{}
	cache, err := lru.NewWithEvict(size, func(key, value any) {
		if onEvict != nil && !r.dropping {
			onEvict(key.(string), value.(*handleType))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create handle registry: %s", err)
	}
	r.handles = cache
	return r, nil
}

func (r *registryType) get(handle string) (*handleType, error) {
	if v, ok := r.handles.Get(handle); ok {
		return v.(*handleType), nil
	}
	return nil, fmt.Errorf("unknown handle %q", handle)
}

func (r *registryType) put(handle string, h *handleType) {
	r.handles.Add(handle, h)
}

func (r *registryType) drop(handle string) bool {
	r.dropping = true
	defer func() { r.dropping = false }()
	return r.handles.Remove(handle)
}

// list returns the handles from least to most recently used
func (r *registryType) list() []string {
	return Map(r.handles.Keys(), func(k any, _ int) string { return k.(string) })
}

func (r *registryType) len() int {
	return r.handles.Len()
}
