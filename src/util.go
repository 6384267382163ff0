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
	"io"
	"reflect"
	"sort"
	"strings"
)

type objectType[T any] map[string]T

func parseBoolean(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "y", "yes", "1", "t", "true", "on":
		return true, nil
	case "n", "no", "0", "f", "false", "off":
		return false, nil
	default:
		return false, fmt.Errorf("not a boolean string (y[es]/n[o], 1/0, t[rue]/f[alse], on/off)")
	}
}

// Map takes a slice of type T, maps every element of it to type R through the mapper function and returns the mapped elements in a new slice of type R
func Map[T any, R any](slice []T, mapper func(T, int) R) []R {
	l := len(slice)
	r := make([]R, l)
	for i := 0; i < l; i++ {
		r[i] = mapper(slice[i], i)
	}
	return r
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func tn(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Ptr:
		return "*" + tn(t.Elem())
	default:
		var handle func(n string) string
		handle = func(n string) string {
			i, j := strings.IndexByte(n, '['), strings.LastIndexByte(n, ']')
			if i >= 0 && j > i {
				return fmt.Sprintf("%s[%s]%s", n[:i], handle(n[i+1:j]), handle(n[j+1:]))
			}
			if n == "interface {}" {
				return "any"
			}
			return n
		}
		return handle(t.String())
	}
}

func val2str(value any) string {
	if s, ok := value.(fmt.Stringer); ok && s != nil && !reflect.ValueOf(value).IsZero() {
		return s.String()
	}
	return val2strR(reflect.ValueOf(value), true)
}

func val2strR(value reflect.Value, withType bool) string {
	if value.Kind() == reflect.Interface {
		value = value.Elem()
	}
	switch value.Kind() {
	case reflect.Invalid:
		return "<nil>"
	case reflect.Bool, reflect.Int, reflect.Int32, reflect.Uint32, reflect.Float64:
		return fmt.Sprintf("%v", value)
	case reflect.String:
		return fmt.Sprintf("%q", value.String())
	case reflect.Ptr:
		if value.IsNil() {
			return "*<nil>"
		}
		return "&" + val2strR(value.Elem(), withType)
	case reflect.Map:
		t := value.Type()
		typeStr := ""
		if withType {
			typeStr = tn(t)
		}
		if value.IsNil() {
			return typeStr + "<nil>"
		}
		isAny := t.Elem() == reflect.TypeOf((*any)(nil)).Elem()
		var parts []string
		for _, k := range value.MapKeys() {
			parts = append(parts, val2strR(k, true)+": "+val2strR(value.MapIndex(k), isAny))
		}
		sort.Strings(parts)
		return typeStr + "{" + strings.Join(parts, ", ") + "}"
	case reflect.Struct:
		sType := value.Type()
		var fields []string
		for i, n := 0, value.NumField(); i < n; i++ {
			if !sType.Field(i).IsExported() {
				continue
			}
			fields = append(fields, fmt.Sprintf("%s: %s", sType.Field(i).Name, val2strR(value.Field(i), true)))
		}
		str := fmt.Sprintf("{%s}", strings.Join(fields, ", "))
		if withType {
			str = tn(sType) + str
		}
		return str
	case reflect.Slice:
		if value.IsNil() {
			return "[]<nil>"
		}
		fallthrough
	case reflect.Array:
		elemType := value.Type().Elem()
		isAny := elemType == reflect.TypeOf((*any)(nil)).Elem()
		var elements []string
		for i, n := 0, value.Len(); i < n; i++ {
			v := value.Index(i)
			elements = append(elements, val2strR(v, isAny || elemType != v.Type()))
		}
		return fmt.Sprintf("❲%s❳[%s]", tn(value.Type().Elem()), strings.Join(elements, ", "))
	default:
		str := fmt.Sprintf("%v", value)
		if withType {
			str = fmt.Sprintf("❲%s❳", tn(value.Type())) + str
		}
		return str
	}
}

func err2str(err error) string {
	if err == nil {
		return "<nil>"
	}
	return err.Error()
}

func recoverPanics(f func(any) bool) {
	if r := recover(); r != nil {
		repanic := false
		if f != nil {
			repanic = f(r)
		}
		if repanic {
			panic(r)
		}
	}
}

func closeNoError(c io.Closer) {
	_ = c.Close()
}
