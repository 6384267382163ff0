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

type nameImpl interface {
	Name
	empty(delimiter rune) Name
}

// abstractName supplies the default behavior of a Name from its primitive operations.
// Concrete names embed it and set self to themselves.
type abstractName struct {
	self      nameImpl
	delimiter rune
}

func (n *abstractName) Delimiter() rune {
	return n.delimiter
}

func (n *abstractName) IsEmpty() bool {
	return n.self.NoComponents() == 0
}

func (n *abstractName) AsString(delimiter rune) string {
	return Join(Components(n.self), delimiter)
}

func (n *abstractName) AsDataString() string {
	return n.self.AsString(n.delimiter)
}

func (n *abstractName) String() string {
	return n.self.AsDataString()
}

func (n *abstractName) IsEqual(other Reader) bool {
	return Equal(n.self, other)
}

func (n *abstractName) HashCode() uint32 {
	return Hash(n.self)
}

func (n *abstractName) Concat(other Reader) {
	// snapshot first, other may be the receiver itself
	for _, c := range Components(other) {
		n.self.Append(c)
	}
}

func (n *abstractName) Clone() Name {
	clone := n.self.empty(n.delimiter)
	for _, c := range Components(n.self) {
		clone.Append(c)
	}
	return clone
}

type valueImpl interface {
	Value
	empty(delimiter rune) Value
}

// abstractValue is the immutable counterpart of abstractName.
type abstractValue struct {
	self      valueImpl
	delimiter rune
}

func (v *abstractValue) Delimiter() rune {
	return v.delimiter
}

func (v *abstractValue) IsEmpty() bool {
	return v.self.NoComponents() == 0
}

func (v *abstractValue) AsString(delimiter rune) string {
	return Join(Components(v.self), delimiter)
}

func (v *abstractValue) AsDataString() string {
	return v.self.AsString(v.delimiter)
}

func (v *abstractValue) String() string {
	return v.self.AsDataString()
}

func (v *abstractValue) IsEqual(other Reader) bool {
	return Equal(v.self, other)
}

func (v *abstractValue) HashCode() uint32 {
	return Hash(v.self)
}

func (v *abstractValue) Concat(other Reader) Value {
	var result Value = v.self
	for _, c := range Components(other) {
		result = result.Append(c)
	}
	return result
}

func (v *abstractValue) Clone() Value {
	var clone = v.self.empty(v.delimiter)
	for _, c := range Components(v.self) {
		clone = clone.Append(c)
	}
	return clone
}
