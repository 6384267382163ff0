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
	"regexp"
	"strconv"
	"strings"
)

const (
	developmentPrefix = "0."
)

var (
	versionRegex = regexp.MustCompile(`^([0-9]+)(?:\.([0-9]+))?(?:\.([0-9]+))?$`)
)

// VersionType is the program version
type VersionType struct {
	IsDevelopment       bool
	Major, Minor, Patch uint64
}

func (v *VersionType) String() string {
	if v.IsDevelopment && v.Major == 0 && v.Minor == 0 && v.Patch == 0 {
		return "develop"
	}
	var vs string
	if v.IsDevelopment {
		vs = developmentPrefix
	}
	vs += fmt.Sprintf("%d.%d", v.Major, v.Minor)
	if v.Patch > 0 {
		vs += fmt.Sprintf(".%d", v.Patch)
	}
	return vs
}

// ParseVersion parses "[v]major[.minor[.patch]]". A leading "0." marks a development version, the rest is parsed the same.
func ParseVersion(str string) (*VersionType, error) {
	version := VersionType{}
	str = strings.TrimPrefix(str, "v")
	if strings.HasPrefix(str, developmentPrefix) {
		version.IsDevelopment = true
		str = str[len(developmentPrefix):]
	}
	parts := versionRegex.FindStringSubmatch(str)
	if parts == nil {
		return nil, fmt.Errorf("invalid version string %q", str)
	}
	var err error
	if version.Major, err = strconv.ParseUint(parts[1], 10, 16); err != nil {
		return nil, fmt.Errorf("failed to parse major: %s", err)
	}
	if parts[2] != "" {
		if version.Minor, err = strconv.ParseUint(parts[2], 10, 16); err != nil {
			return nil, fmt.Errorf("failed to parse minor: %s", err)
		}
	}
	if parts[3] != "" {
		if version.Patch, err = strconv.ParseUint(parts[3], 10, 16); err != nil {
			return nil, fmt.Errorf("failed to parse patch: %s", err)
		}
	}
	return &version, nil
}
