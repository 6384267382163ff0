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

// stringForm holds a name as one escaped data string plus the cached number of components.
// The data string is the source of truth, components are parsed from it on every access.
type stringForm struct {
	name         string
	noComponents int
}

func parseStringForm(data string, delimiter rune) (stringForm, error) {
	if err := ValidDelimiter(delimiter); err != nil {
		return stringForm{}, err
	}
	components, err := Split(data, delimiter)
	if err != nil {
		return stringForm{}, fmt.Errorf("failed to parse name: %w", err)
	}
	return stringForm{data, len(components)}, nil
}

func buildStringForm(components []string, delimiter rune) stringForm {
	return stringForm{Join(components, delimiter), len(components)}
}

// components parses the data string. An empty data string is either no component or one empty component,
// the cached count tells which one.
func (f *stringForm) components(delimiter rune) []string {
	if f.name == "" {
		return make([]string, f.noComponents)
	}
	components, err := Split(f.name, delimiter)
	if err != nil {
		// every data string is validated or built by Join
		panic(fmt.Sprintf("corrupt data string %q: %s", f.name, err))
	}
	return components
}

func (f *stringForm) isEmpty() bool {
	return f.noComponents == 0 || f.name == ""
}

// StringName stores the whole name as one escaped data string.
// Create it with NewStringName or NewStringNameFromComponents and use it by pointer.
type StringName struct {
	abstractName
	stringForm
}

func newStringName(form stringForm, delimiter rune) *StringName {
	n := &StringName{stringForm: form}
	n.abstractName = abstractName{n, delimiter}
	return n
}

// NewStringName creates a name from a data string, which must not end with an unterminated escape character.
// The data string is kept verbatim.
func NewStringName(data string, delimiter rune) (*StringName, error) {
	form, err := parseStringForm(data, delimiter)
	if err != nil {
		return nil, err
	}
	return newStringName(form, delimiter), nil
}

// NewStringNameFromComponents creates a name from unescaped components.
func NewStringNameFromComponents(components []string, delimiter rune) (*StringName, error) {
	if err := ValidDelimiter(delimiter); err != nil {
		return nil, err
	}
	return newStringName(buildStringForm(components, delimiter), delimiter), nil
}

func (n *StringName) empty(delimiter rune) Name {
	return newStringName(stringForm{}, delimiter)
}

func (n *StringName) rebuild(components []string) {
	n.stringForm = buildStringForm(components, n.delimiter)
}

func (n *StringName) IsEmpty() bool {
	return n.isEmpty()
}

func (n *StringName) NoComponents() int {
	return n.noComponents
}

func (n *StringName) Component(i int) (string, error) {
	components := n.components(n.delimiter)
	if err := checkIndex("component", i, len(components)); err != nil {
		return "", err
	}
	return components[i], nil
}

func (n *StringName) SetComponent(i int, c string) error {
	components := n.components(n.delimiter)
	if err := checkIndex("setComponent", i, len(components)); err != nil {
		return err
	}
	components[i] = c
	n.rebuild(components)
	return nil
}

func (n *StringName) Insert(i int, c string) error {
	components := n.components(n.delimiter)
	if err := checkInsertIndex(i, len(components)); err != nil {
		return err
	}
	n.rebuild(slices.Insert(components, i, c))
	return nil
}

func (n *StringName) Append(c string) {
	n.rebuild(append(n.components(n.delimiter), c))
}

func (n *StringName) Remove(i int) error {
	components := n.components(n.delimiter)
	if err := checkIndex("remove", i, len(components)); err != nil {
		return err
	}
	n.rebuild(slices.Delete(components, i, i+1))
	return nil
}

// Concat parses and rebuilds only once.
func (n *StringName) Concat(other Reader) {
	n.rebuild(append(n.components(n.delimiter), Components(other)...))
}

func (n *StringName) AsString(delimiter rune) string {
	return Join(n.components(n.delimiter), delimiter)
}

// AsDataString returns the stored data string without parsing it.
func (n *StringName) AsDataString() string {
	return n.name
}

func (n *StringName) list() []string {
	return n.components(n.delimiter)
}

// StringValue is the immutable variant of StringName.
type StringValue struct {
	abstractValue
	stringForm
}

func newStringValue(form stringForm, delimiter rune) *StringValue {
	v := &StringValue{stringForm: form}
	v.abstractValue = abstractValue{v, delimiter}
	return v
}

func NewStringValue(data string, delimiter rune) (*StringValue, error) {
	form, err := parseStringForm(data, delimiter)
	if err != nil {
		return nil, err
	}
	return newStringValue(form, delimiter), nil
}

func NewStringValueFromComponents(components []string, delimiter rune) (*StringValue, error) {
	if err := ValidDelimiter(delimiter); err != nil {
		return nil, err
	}
	return newStringValue(buildStringForm(components, delimiter), delimiter), nil
}

func (v *StringValue) empty(delimiter rune) Value {
	return newStringValue(stringForm{}, delimiter)
}

func (v *StringValue) with(components []string) *StringValue {
	return newStringValue(buildStringForm(components, v.delimiter), v.delimiter)
}

func (v *StringValue) IsEmpty() bool {
	return v.isEmpty()
}

func (v *StringValue) NoComponents() int {
	return v.noComponents
}

func (v *StringValue) Component(i int) (string, error) {
	components := v.components(v.delimiter)
	if err := checkIndex("component", i, len(components)); err != nil {
		return "", err
	}
	return components[i], nil
}

func (v *StringValue) SetComponent(i int, c string) (Value, error) {
	components := v.components(v.delimiter)
	if err := checkIndex("setComponent", i, len(components)); err != nil {
		return nil, err
	}
	components[i] = c
	return v.with(components), nil
}

func (v *StringValue) Insert(i int, c string) (Value, error) {
	components := v.components(v.delimiter)
	if err := checkInsertIndex(i, len(components)); err != nil {
		return nil, err
	}
	return v.with(slices.Insert(components, i, c)), nil
}

func (v *StringValue) Append(c string) Value {
	return v.with(append(v.components(v.delimiter), c))
}

func (v *StringValue) Remove(i int) (Value, error) {
	components := v.components(v.delimiter)
	if err := checkIndex("remove", i, len(components)); err != nil {
		return nil, err
	}
	return v.with(slices.Delete(components, i, i+1)), nil
}

func (v *StringValue) Concat(other Reader) Value {
	return v.with(append(v.components(v.delimiter), Components(other)...))
}

func (v *StringValue) AsString(delimiter rune) string {
	return Join(v.components(v.delimiter), delimiter)
}

func (v *StringValue) AsDataString() string {
	return v.name
}

func (v *StringValue) list() []string {
	return v.components(v.delimiter)
}
