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

	"github.com/miekg/dns"
)

// DNS names in presentation format use '.' as delimiter and '\' as escape character, the same grammar as here.
// Decimal escapes (\DDD) are not part of this grammar and are rejected.

// ParseDomainName parses a domain name in presentation format, with or without trailing dot.
// The root domain "." is the empty name.
func ParseDomainName(s string) (*StringArrayName, error) {
	if _, ok := dns.IsDomainName(s); !ok {
		return nil, fmt.Errorf("invalid domain name %q", s)
	}
	labels := dns.SplitDomainName(s)
	components := make([]string, 0, len(labels))
	for _, label := range labels {
		if hasDecimalEscape(label) {
			return nil, fmt.Errorf("%w: decimal escape in label %q", ErrMalformedEscape, label)
		}
		c, err := Unescape(label)
		if err != nil {
			return nil, err
		}
		components = append(components, c)
	}
	return newStringArrayName(components, '.'), nil
}

// DomainName renders r as a fully qualified domain name. The delimiter of r does not matter.
func DomainName(r Reader) (string, error) {
	components := Components(r)
	for i, c := range components {
		if c == "" {
			return "", fmt.Errorf("empty label at index %d", i)
		}
	}
	name := dns.Fqdn(Join(components, '.'))
	if _, ok := dns.IsDomainName(name); !ok {
		return "", fmt.Errorf("%q exceeds the domain name limits", name)
	}
	return name, nil
}

// IsSubDomain reports whether child is equal to or below parent, compared as domain names (case-insensitive).
func IsSubDomain(parent, child Reader) (bool, error) {
	p, err := DomainName(parent)
	if err != nil {
		return false, fmt.Errorf("parent: %w", err)
	}
	c, err := DomainName(child)
	if err != nil {
		return false, fmt.Errorf("child: %w", err)
	}
	return dns.IsSubDomain(p, c), nil
}

func hasDecimalEscape(label string) bool {
	escaped := false
	for _, ch := range label {
		if escaped {
			if ch >= '0' && ch <= '9' {
				return true
			}
			escaped = false
		} else if ch == EscapeCharacter {
			escaped = true
		}
	}
	return false
}
