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
	"fmt"
	"slices"
)

// StringArrayName stores its components unescaped. Escaping happens only when rendering.
// Create it with NewStringArrayName or ParseStringArrayName and use it by pointer.
type StringArrayName struct {
	abstractName
	components []string
}

func newStringArrayName(components []string, delimiter rune) *StringArrayName {
	n := &StringArrayName{components: components}
	n.abstractName = abstractName{n, delimiter}
	return n
}

// NewStringArrayName creates a name from unescaped components. The slice is copied.
func NewStringArrayName(components []string, delimiter rune) (*StringArrayName, error) {
	if err := ValidDelimiter(delimiter); err != nil {
		return nil, err
	}
	return newStringArrayName(slices.Clone(components), delimiter), nil
}

// ParseStringArrayName creates a name from a data string (escaped components joined with delimiter).
func ParseStringArrayName(data string, delimiter rune) (*StringArrayName, error) {
	if err := ValidDelimiter(delimiter); err != nil {
		return nil, err
	}
	components, err := Split(data, delimiter)
	if err != nil {
		return nil, fmt.Errorf("failed to parse name: %w", err)
	}
	return newStringArrayName(components, delimiter), nil
}

func (n *StringArrayName) empty(delimiter rune) Name {
	return newStringArrayName(nil, delimiter)
}

func (n *StringArrayName) NoComponents() int {
	return len(n.components)
}

func (n *StringArrayName) Component(i int) (string, error) {
	if err := checkIndex("component", i, len(n.components)); err != nil {
		return "", err
	}
	return n.components[i], nil
}

func (n *StringArrayName) SetComponent(i int, c string) error {
	if err := checkIndex("setComponent", i, len(n.components)); err != nil {
		return err
	}
	n.components[i] = c
	return nil
}

func (n *StringArrayName) Insert(i int, c string) error {
	if err := checkInsertIndex(i, len(n.components)); err != nil {
		return err
	}
	n.components = slices.Insert(n.components, i, c)
	return nil
}

func (n *StringArrayName) Append(c string) {
	n.components = append(n.components, c)
}

func (n *StringArrayName) Remove(i int) error {
	if err := checkIndex("remove", i, len(n.components)); err != nil {
		return err
	}
	n.components = slices.Delete(n.components, i, i+1)
	return nil
}

func (n *StringArrayName) AsString(delimiter rune) string {
	return Join(n.components, delimiter)
}

func (n *StringArrayName) list() []string {
	return slices.Clone(n.components)
}

// StringArrayValue is the immutable variant of StringArrayName.
type StringArrayValue struct {
	abstractValue
	components []string
}

func newStringArrayValue(components []string, delimiter rune) *StringArrayValue {
	v := &StringArrayValue{components: components}
	v.abstractValue = abstractValue{v, delimiter}
	return v
}

func NewStringArrayValue(components []string, delimiter rune) (*StringArrayValue, error) {
	if err := ValidDelimiter(delimiter); err != nil {
		return nil, err
	}
	return newStringArrayValue(slices.Clone(components), delimiter), nil
}

func ParseStringArrayValue(data string, delimiter rune) (*StringArrayValue, error) {
	if err := ValidDelimiter(delimiter); err != nil {
		return nil, err
	}
	components, err := Split(data, delimiter)
	if err != nil {
		return nil, fmt.Errorf("failed to parse name: %w", err)
	}
	return newStringArrayValue(components, delimiter), nil
}

func (v *StringArrayValue) empty(delimiter rune) Value {
	return newStringArrayValue(nil, delimiter)
}

func (v *StringArrayValue) with(components []string) *StringArrayValue {
	return newStringArrayValue(components, v.delimiter)
}

func (v *StringArrayValue) NoComponents() int {
	return len(v.components)
}

func (v *StringArrayValue) Component(i int) (string, error) {
	if err := checkIndex("component", i, len(v.components)); err != nil {
		return "", err
	}
	return v.components[i], nil
}

func (v *StringArrayValue) SetComponent(i int, c string) (Value, error) {
	if err := checkIndex("setComponent", i, len(v.components)); err != nil {
		return nil, err
	}
	components := slices.Clone(v.components)
	components[i] = c
	return v.with(components), nil
}

func (v *StringArrayValue) Insert(i int, c string) (Value, error) {
	if err := checkInsertIndex(i, len(v.components)); err != nil {
		return nil, err
	}
	return v.with(slices.Insert(slices.Clone(v.components), i, c)), nil
}

func (v *StringArrayValue) Append(c string) Value {
	return v.with(append(slices.Clip(v.components), c))
}

func (v *StringArrayValue) Remove(i int) (Value, error) {
	if err := checkIndex("remove", i, len(v.components)); err != nil {
		return nil, err
	}
	return v.with(slices.Delete(slices.Clone(v.components), i, i+1)), nil
}

func (v *StringArrayValue) Concat(other Reader) Value {
	return v.with(append(slices.Clip(v.components), Components(other)...))
}

func (v *StringArrayValue) AsString(delimiter rune) string {
	return Join(v.components, delimiter)
}

func (v *StringArrayValue) list() []string {
	return slices.Clone(v.components)
}
