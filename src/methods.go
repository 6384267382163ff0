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
	"math"
	"strconv"

	"github.com/nixn/hname/names"
)

type methodFunc func(params objectType[any], client *shellClient) (any, error)

// methods maps the lowercased method name of a request to its handler
var methods = map[string]methodFunc{
	"initialize":   initialize,
	"new":          newName,
	"get":          getComponent,
	"set":          setComponent,
	"insert":       insertComponent,
	"append":       appendComponent,
	"remove":       removeComponent,
	"concat":       concat,
	"count":        count,
	"isempty":      isEmpty,
	"asstring":     asString,
	"asdatastring": asDataString,
	"components":   components,
	"equal":        equal,
	"hash":         hash,
	"clone":        clone,
	"drop":         drop,
	"handles":      handles,
	"fromdomain":   fromDomain,
	"todomain":     toDomain,
	"issubdomain":  isSubDomain,
}

func param(params objectType[any], key string) (any, error) {
	if v, ok := params[key]; ok && v != nil {
		return v, nil
	}
	return nil, fmt.Errorf("missing parameter %q", key)
}

func stringValue(params objectType[any], key string) (string, error) {
	v, err := param(params, key)
	if err != nil {
		return "", err
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("parameter %q must be a string, got %T", key, v)
}

func optStringValue(params objectType[any], key string) (*string, error) {
	if _, ok := params[key]; !ok {
		return nil, nil
	}
	s, err := stringValue(params, key)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func intValue(params objectType[any], key string) (int, error) {
	v, err := param(params, key)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		if n > math.MaxInt32 {
			return 0, fmt.Errorf("parameter %q is too large: %d", key, n)
		}
		return int(n), nil
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > math.MaxInt32 {
			return 0, fmt.Errorf("parameter %q must be an integer, got %v", key, n)
		}
		return int(n), nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, fmt.Errorf("parameter %q must be an integer: %s", key, err)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("parameter %q must be an integer, got %T", key, v)
	}
}

func componentsValue(params objectType[any], key string) ([]string, error) {
	v, err := param(params, key)
	if err != nil {
		return nil, err
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("parameter %q must be a list of strings, got %T", key, v)
	}
	components := make([]string, len(list))
	for i, c := range list {
		if components[i], ok = c.(string); !ok {
			return nil, fmt.Errorf("parameter %q: element %d must be a string, got %T", key, i, c)
		}
	}
	return components, nil
}

func delimiterValue(params objectType[any], def rune) (rune, error) {
	s, err := optStringValue(params, delimiterParam)
	if err != nil || s == nil {
		return def, err
	}
	return parseDelimiter(*s)
}

func kindValue(params objectType[any], def kindType) (kindType, error) {
	s, err := optStringValue(params, kindParam)
	if err != nil || s == nil {
		return def, err
	}
	return parseKind(*s)
}

func handleValue(params objectType[any], key string, client *shellClient) (string, *handleType, error) {
	handle, err := stringValue(params, key)
	if err != nil {
		return "", nil, err
	}
	h, err := client.registry.get(handle)
	return handle, h, err
}

// createHandle builds a name of the given kind, either from a data string or from components
func createHandle(kind kindType, delimiter rune, data *string, components []string) (*handleType, error) {
	h := &handleType{kind: kind}
	var err error
	switch kind {
	case arrayKind:
		var n *names.StringArrayName
		if data != nil {
			n, err = names.ParseStringArrayName(*data, delimiter)
		} else {
			n, err = names.NewStringArrayName(components, delimiter)
		}
		h.name = n
	case stringKind:
		var n *names.StringName
		if data != nil {
			n, err = names.NewStringName(*data, delimiter)
		} else {
			n, err = names.NewStringNameFromComponents(components, delimiter)
		}
		h.name = n
	case arrayValueKind:
		var v *names.StringArrayValue
		if data != nil {
			v, err = names.ParseStringArrayValue(*data, delimiter)
		} else {
			v, err = names.NewStringArrayValue(components, delimiter)
		}
		h.value = v
	case stringValueKind:
		var v *names.StringValue
		if data != nil {
			v, err = names.NewStringValue(*data, delimiter)
		} else {
			v, err = names.NewStringValueFromComponents(components, delimiter)
		}
		h.value = v
	default:
		err = fmt.Errorf("invalid kind %q", kind)
	}
	if err != nil {
		return nil, err
	}
	return h, nil
}

func initialize(params objectType[any], client *shellClient) (any, error) {
	if err := client.readParameters(params); err != nil {
		return nil, err
	}
	client.log.main("delimiter", string(client.delimiter), "kind", client.kind).Debug("initialized")
	return true, nil
}

func newName(params objectType[any], client *shellClient) (any, error) {
	handle, err := stringValue(params, "handle")
	if err != nil {
		return nil, err
	}
	kind, err := kindValue(params, client.kind)
	if err != nil {
		return nil, err
	}
	delimiter, err := delimiterValue(params, client.delimiter)
	if err != nil {
		return nil, err
	}
	data, err := optStringValue(params, "data")
	if err != nil {
		return nil, err
	}
	var components []string
	if _, ok := params["components"]; ok {
		if data != nil {
			return nil, fmt.Errorf("only one of \"data\" and \"components\" can be given")
		}
		if components, err = componentsValue(params, "components"); err != nil {
			return nil, err
		}
	}
	h, err := createHandle(kind, delimiter, data, components)
	if err != nil {
		return nil, err
	}
	client.registry.put(handle, h)
	client.log.name("handle", handle, "name", h).Debug("created")
	return h.reader().AsDataString(), nil
}

// mutate applies a mutation to a Name in place or stores the derived Value under "target" (default: the handle itself)
func mutate(params objectType[any], client *shellClient, onName func(names.Name) error, onValue func(names.Value) (names.Value, error)) (any, error) {
	handle, h, err := handleValue(params, "handle", client)
	if err != nil {
		return nil, err
	}
	if h.name != nil {
		if _, ok := params["target"]; ok {
			return nil, fmt.Errorf("\"target\" is only allowed for value kinds, %q is %s", handle, h.kind)
		}
		if err := onName(h.name); err != nil {
			return nil, err
		}
		client.log.name("handle", handle, "name", h).Trace("mutated")
		return h.name.AsDataString(), nil
	}
	target := handle
	if t, err := optStringValue(params, "target"); err != nil {
		return nil, err
	} else if t != nil {
		target = *t
	}
	v, err := onValue(h.value)
	if err != nil {
		return nil, err
	}
	derived := &handleType{kind: h.kind, value: v}
	client.registry.put(target, derived)
	client.log.name("handle", handle, "target", target, "name", derived).Trace("derived")
	return v.AsDataString(), nil
}

func getComponent(params objectType[any], client *shellClient) (any, error) {
	_, h, err := handleValue(params, "handle", client)
	if err != nil {
		return nil, err
	}
	i, err := intValue(params, "index")
	if err != nil {
		return nil, err
	}
	return h.reader().Component(i)
}

func setComponent(params objectType[any], client *shellClient) (any, error) {
	i, err := intValue(params, "index")
	if err != nil {
		return nil, err
	}
	c, err := stringValue(params, "component")
	if err != nil {
		return nil, err
	}
	return mutate(params, client,
		func(n names.Name) error { return n.SetComponent(i, c) },
		func(v names.Value) (names.Value, error) { return v.SetComponent(i, c) })
}

func insertComponent(params objectType[any], client *shellClient) (any, error) {
	i, err := intValue(params, "index")
	if err != nil {
		return nil, err
	}
	c, err := stringValue(params, "component")
	if err != nil {
		return nil, err
	}
	return mutate(params, client,
		func(n names.Name) error { return n.Insert(i, c) },
		func(v names.Value) (names.Value, error) { return v.Insert(i, c) })
}

func appendComponent(params objectType[any], client *shellClient) (any, error) {
	c, err := stringValue(params, "component")
	if err != nil {
		return nil, err
	}
	return mutate(params, client,
		func(n names.Name) error { n.Append(c); return nil },
		func(v names.Value) (names.Value, error) { return v.Append(c), nil })
}

func removeComponent(params objectType[any], client *shellClient) (any, error) {
	i, err := intValue(params, "index")
	if err != nil {
		return nil, err
	}
	return mutate(params, client,
		func(n names.Name) error { return n.Remove(i) },
		func(v names.Value) (names.Value, error) { return v.Remove(i) })
}

func concat(params objectType[any], client *shellClient) (any, error) {
	_, other, err := handleValue(params, "other", client)
	if err != nil {
		return nil, err
	}
	return mutate(params, client,
		func(n names.Name) error { n.Concat(other.reader()); return nil },
		func(v names.Value) (names.Value, error) { return v.Concat(other.reader()), nil })
}

func count(params objectType[any], client *shellClient) (any, error) {
	_, h, err := handleValue(params, "handle", client)
	if err != nil {
		return nil, err
	}
	return h.reader().NoComponents(), nil
}

func isEmpty(params objectType[any], client *shellClient) (any, error) {
	_, h, err := handleValue(params, "handle", client)
	if err != nil {
		return nil, err
	}
	return h.reader().IsEmpty(), nil
}

func asString(params objectType[any], client *shellClient) (any, error) {
	_, h, err := handleValue(params, "handle", client)
	if err != nil {
		return nil, err
	}
	delimiter, err := delimiterValue(params, h.reader().Delimiter())
	if err != nil {
		return nil, err
	}
	return h.reader().AsString(delimiter), nil
}

func asDataString(params objectType[any], client *shellClient) (any, error) {
	_, h, err := handleValue(params, "handle", client)
	if err != nil {
		return nil, err
	}
	return h.reader().AsDataString(), nil
}

func components(params objectType[any], client *shellClient) (any, error) {
	_, h, err := handleValue(params, "handle", client)
	if err != nil {
		return nil, err
	}
	return names.Components(h.reader()), nil
}

func equal(params objectType[any], client *shellClient) (any, error) {
	_, h, err := handleValue(params, "handle", client)
	if err != nil {
		return nil, err
	}
	_, other, err := handleValue(params, "other", client)
	if err != nil {
		return nil, err
	}
	return names.Equal(h.reader(), other.reader()), nil
}

func hash(params objectType[any], client *shellClient) (any, error) {
	_, h, err := handleValue(params, "handle", client)
	if err != nil {
		return nil, err
	}
	if h.name != nil {
		return h.name.HashCode(), nil
	}
	return h.value.HashCode(), nil
}

func clone(params objectType[any], client *shellClient) (any, error) {
	_, h, err := handleValue(params, "handle", client)
	if err != nil {
		return nil, err
	}
	target, err := stringValue(params, "target")
	if err != nil {
		return nil, err
	}
	c := &handleType{kind: h.kind}
	if h.name != nil {
		c.name = h.name.Clone()
	} else {
		c.value = h.value.Clone()
	}
	client.registry.put(target, c)
	return c.reader().AsDataString(), nil
}

func drop(params objectType[any], client *shellClient) (any, error) {
	handle, err := stringValue(params, "handle")
	if err != nil {
		return nil, err
	}
	return client.registry.drop(handle), nil
}

func handles(_ objectType[any], client *shellClient) (any, error) {
	return client.registry.list(), nil
}

func fromDomain(params objectType[any], client *shellClient) (any, error) {
	handle, err := stringValue(params, "handle")
	if err != nil {
		return nil, err
	}
	domain, err := stringValue(params, "domain")
	if err != nil {
		return nil, err
	}
	kind, err := kindValue(params, client.kind)
	if err != nil {
		return nil, err
	}
	n, err := names.ParseDomainName(domain)
	if err != nil {
		return nil, err
	}
	h, err := createHandle(kind, n.Delimiter(), nil, names.Components(n))
	if err != nil {
		return nil, err
	}
	client.registry.put(handle, h)
	client.log.name("handle", handle, "domain", domain).Debug("created from domain name")
	return h.reader().AsDataString(), nil
}

func toDomain(params objectType[any], client *shellClient) (any, error) {
	_, h, err := handleValue(params, "handle", client)
	if err != nil {
		return nil, err
	}
	return names.DomainName(h.reader())
}

func isSubDomain(params objectType[any], client *shellClient) (any, error) {
	_, parent, err := handleValue(params, "parent", client)
	if err != nil {
		return nil, err
	}
	_, child, err := handleValue(params, "child", client)
	if err != nil {
		return nil, err
	}
	return names.IsSubDomain(parent.reader(), child.reader())
}
