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

// Package names implements hierarchical structured names: sequences of components joined by a single delimiter
// character, where components may contain the delimiter or the escape character in escaped form.
//
// There are two storage strategies with identical observable behavior: an array of unescaped components
// (StringArrayName, StringArrayValue) and a single escaped data string with a cached component count
// (StringName, StringValue). The Name contract mutates in place, the Value contract returns a new instance
// from every mutator and leaves the receiver unchanged.
package names

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"slices"
)

// Reader is the query part shared by Name and Value.
type Reader interface {
	fmt.Stringer
	Delimiter() rune
	IsEmpty() bool
	NoComponents() int
	// Component returns the unescaped component at index i.
	Component(i int) (string, error)
	// AsString renders the name with the given delimiter, escaping the components for it.
	// The delimiter of the name stays unchanged. It panics when delimiter is not valid (see ValidDelimiter).
	AsString(delimiter rune) string
	// AsDataString is the canonical serialized form: escaped components joined with Delimiter().
	AsDataString() string
}

// Name is a mutable name, all mutators change the receiver.
// Failing mutators do not change anything.
type Name interface {
	Reader
	SetComponent(i int, c string) error
	Insert(i int, c string) error
	Append(c string)
	Remove(i int) error
	Concat(other Reader)
	IsEqual(other Reader) bool
	HashCode() uint32
	Clone() Name
}

// Value is an immutable name, all mutators return a new Value.
type Value interface {
	Reader
	SetComponent(i int, c string) (Value, error)
	Insert(i int, c string) (Value, error)
	Append(c string) Value
	Remove(i int) (Value, error)
	Concat(other Reader) Value
	IsEqual(other Reader) bool
	HashCode() uint32
	Clone() Value
}

func component(r Reader, i int) string {
	c, err := r.Component(i)
	if err != nil {
		// i comes from 0..NoComponents()-1, so this is a broken Reader
		panic(fmt.Sprintf("%T.Component(%d) failed with %d components: %s", r, i, r.NoComponents(), err))
	}
	return c
}

// lister is implemented by names which produce all their components in one pass.
// list returns a slice the caller may modify.
type lister interface {
	list() []string
}

// Components returns a snapshot of the unescaped components of r.
func Components(r Reader) []string {
	if l, ok := r.(lister); ok {
		return l.list()
	}
	n := r.NoComponents()
	components := make([]string, n)
	for i := 0; i < n; i++ {
		components[i] = component(r, i)
	}
	return components
}

// Equal reports whether a and b have the same components in the same order. Delimiters and storage are ignored.
func Equal(a, b Reader) bool {
	if a.NoComponents() != b.NoComponents() {
		return false
	}
	return slices.Equal(Components(a), Components(b))
}

// Hash computes a content hash over the components, so names which are Equal have the same hash.
func Hash(r Reader) uint32 {
	h := fnv.New32a()
	var length [binary.MaxVarintLen64]byte
	for _, c := range Components(r) {
		// length prefix, so ["ab"] and ["a", "b"] differ
		_, _ = h.Write(length[:binary.PutUvarint(length[:], uint64(len(c)))])
		_, _ = h.Write([]byte(c))
	}
	return h.Sum32()
}
