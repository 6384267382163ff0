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
	"strings"
	"unicode/utf8"
)

const (
	DefaultDelimiter = '.'
	EscapeCharacter  = '\\'
)

// ValidDelimiter checks that delimiter can be used to separate components.
func ValidDelimiter(delimiter rune) error {
	switch {
	case delimiter == EscapeCharacter:
		return fmt.Errorf("%w: %q is the escape character", ErrInvalidDelimiter, delimiter)
	case delimiter == utf8.RuneError || !utf8.ValidRune(delimiter):
		return fmt.Errorf("%w: %U is not a valid character", ErrInvalidDelimiter, delimiter)
	}
	return nil
}

// Escape returns the stored form of a component: the escape character is doubled, the delimiter gets the escape
// character prepended. It is done in one pass, so escape characters introduced for delimiters are never doubled.
func Escape(component string, delimiter rune) string {
	if !strings.ContainsRune(component, EscapeCharacter) && !strings.ContainsRune(component, delimiter) {
		return component
	}
	var sb strings.Builder
	sb.Grow(len(component) + 4)
	for i := 0; i < len(component); {
		ch, size := utf8.DecodeRuneInString(component[i:])
		if ch == EscapeCharacter || ch == delimiter {
			sb.WriteRune(EscapeCharacter)
		}
		sb.WriteString(component[i : i+size])
		i += size
	}
	return sb.String()
}

// Unescape is the inverse of Escape. The character following an escape character is taken literally.
// A trailing escape character without a target results in ErrMalformedEscape.
func Unescape(stored string) (string, error) {
	if !strings.ContainsRune(stored, EscapeCharacter) {
		return stored, nil
	}
	var sb strings.Builder
	sb.Grow(len(stored))
	escaped := false
	for i := 0; i < len(stored); {
		ch, size := utf8.DecodeRuneInString(stored[i:])
		if !escaped && ch == EscapeCharacter {
			escaped = true
		} else {
			sb.WriteString(stored[i : i+size])
			escaped = false
		}
		i += size
	}
	if escaped {
		return "", fmt.Errorf("%w: %q ends with an unterminated escape character", ErrMalformedEscape, stored)
	}
	return sb.String(), nil
}

// Split parses a data string into its unescaped components. Only delimiters which are not escaped separate
// components. The empty string has no components. Bytes which are not valid UTF-8 are kept as they are.
func Split(data string, delimiter rune) ([]string, error) {
	if data == "" {
		return []string{}, nil
	}
	var components []string
	var current strings.Builder
	escaped := false
	for i := 0; i < len(data); {
		ch, size := utf8.DecodeRuneInString(data[i:])
		switch {
		case escaped:
			current.WriteString(data[i : i+size])
			escaped = false
		case ch == EscapeCharacter:
			escaped = true
		case ch == delimiter:
			components = append(components, current.String())
			current.Reset()
		default:
			current.WriteString(data[i : i+size])
		}
		i += size
	}
	if escaped {
		return nil, fmt.Errorf("%w: %q ends with an unterminated escape character", ErrMalformedEscape, data)
	}
	return append(components, current.String()), nil
}

// Join escapes every component for delimiter and joins them with it.
// It panics when delimiter is not valid (see ValidDelimiter), the result could not be split again.
func Join(components []string, delimiter rune) string {
	if err := ValidDelimiter(delimiter); err != nil {
		panic(fmt.Sprintf("Join: %s", err))
	}
	var sb strings.Builder
	for i, c := range components {
		if i > 0 {
			sb.WriteRune(delimiter)
		}
		sb.WriteString(Escape(c, delimiter))
	}
	return sb.String()
}
