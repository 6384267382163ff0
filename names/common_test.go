//go:build unit

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
	"reflect"
	"strings"
	"testing"
)

type ve[Value any] struct {
	v Value
	e string
}

type test[Input any, Value any] struct {
	input    Input
	expected ve[Value]
}

type testFunc[Input any, Value any] func(Input) (Value, error)

func check[Input any, Value any](t *testing.T, id string, f testFunc[Input, Value], in Input, expected ve[Value]) bool {
	t.Helper()
	return t.Run(id, func(t *testing.T) {
		t.Helper()
		got, err := f(in)
		if expected.e != "" {
			if err == nil {
				t.Errorf(`%#+v -> expected error with %q, got value: %#v`, in, expected.e, got)
			} else if !strings.Contains(err.Error(), expected.e) {
				t.Errorf(`%#+v -> expected error with %q, got error: %s`, in, expected.e, err)
			}
		} else {
			if err != nil {
				t.Errorf(`%#+v -> expected value: %#v, got error: %s`, in, expected.v, err)
			} else if !reflect.DeepEqual(expected.v, got) {
				t.Errorf(`%#+v -> expected: %#v, got: %#v`, in, expected.v, got)
			}
		}
	})
}

func checkAll[Input any, Value any](t *testing.T, f testFunc[Input, Value], cases []test[Input, Value]) {
	t.Helper()
	for i, tc := range cases {
		check(t, fmt.Sprintf("(%d)%#v", i+1, tc.input), f, tc.input, tc.expected)
	}
}

// nameKinds and valueKinds create every representation from the same components, so tests can run against all of them
var nameKinds = map[string]func(components []string, delimiter rune) (Name, error){
	"array": func(components []string, delimiter rune) (Name, error) {
		return NewStringArrayName(components, delimiter)
	},
	"string": func(components []string, delimiter rune) (Name, error) {
		return NewStringNameFromComponents(components, delimiter)
	},
}

var valueKinds = map[string]func(components []string, delimiter rune) (Value, error){
	"array": func(components []string, delimiter rune) (Value, error) {
		return NewStringArrayValue(components, delimiter)
	},
	"string": func(components []string, delimiter rune) (Value, error) {
		return NewStringValueFromComponents(components, delimiter)
	},
}

func mustName(t *testing.T, kind string, delimiter rune, components ...string) Name {
	t.Helper()
	n, err := nameKinds[kind](components, delimiter)
	if err != nil {
		t.Fatalf("failed to create %s name from %q: %s", kind, components, err)
	}
	return n
}

func mustValue(t *testing.T, kind string, delimiter rune, components ...string) Value {
	t.Helper()
	v, err := valueKinds[kind](components, delimiter)
	if err != nil {
		t.Fatalf("failed to create %s value from %q: %s", kind, components, err)
	}
	return v
}

func expectComponents(t *testing.T, r Reader, expected ...string) {
	t.Helper()
	if r.NoComponents() != len(expected) {
		t.Fatalf("%T %q: expected %d components, got %d", r, r.AsDataString(), len(expected), r.NoComponents())
	}
	if got := Components(r); !reflect.DeepEqual(got, append([]string{}, expected...)) {
		t.Errorf("%T %q: expected components %q, got %q", r, r.AsDataString(), expected, got)
	}
}
