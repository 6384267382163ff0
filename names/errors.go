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

package names

import (
	"errors"
	"fmt"
)

var (
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrMalformedEscape  = errors.New("malformed escape sequence")
	ErrInvalidDelimiter = errors.New("invalid delimiter")
)

// IndexError is returned by every index-taking operation when the index is outside its valid range.
// It matches ErrIndexOutOfRange with errors.Is.
type IndexError struct {
	Op    string
	Index int
	Range int // number of valid indexes, they are 0..Range-1
}

func (e *IndexError) Error() string {
	if e.Range == 0 {
		return fmt.Sprintf("%s(%d): %s (name has no components)", e.Op, e.Index, ErrIndexOutOfRange)
	}
	return fmt.Sprintf("%s(%d): %s (0..%d)", e.Op, e.Index, ErrIndexOutOfRange, e.Range-1)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

// checkIndex accepts 0 <= i < count
func checkIndex(op string, i, count int) error {
	if i < 0 || i >= count {
		return &IndexError{op, i, count}
	}
	return nil
}

// checkInsertIndex accepts 0 <= i <= count (inserting at the end is allowed)
func checkInsertIndex(i, count int) error {
	if i < 0 || i > count {
		return &IndexError{"insert", i, count + 1}
	}
	return nil
}
