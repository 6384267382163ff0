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

package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/nixn/hname/src"
)

// set by the build: go build -ldflags "-X main.version=..."
var version = "0.1"

func gitVersion() string {
	v := "???"
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				v = setting.Value
			case "vcs.modified":
				if setting.Value == "true" {
					v += "*"
				}
			}
		}
	}
	return v
}

func main() {
	programVersion, err := src.ParseVersion(version)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "invalid program version %q: %s\n", version, err)
		os.Exit(1)
	}
	src.Main(*programVersion, gitVersion(), os.Args[1:])
}
