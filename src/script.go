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
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.yaml.in/yaml/v4"
)

// scriptType is one YAML document of a script. A script file may contain several documents, they share the handles.
type scriptType struct {
	Defaults objectType[any] `yaml:"defaults"`
	Requests []shellRequest  `yaml:"requests"`
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

func runScriptFile(ctx context.Context, path string, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer closeNoError(f)
	return runScript(ctx, f, out)
}

// runScript runs all requests and writes one JSON response line per request.
// Failed requests do not stop the script, but make the returned error non-nil.
func runScript(ctx context.Context, in io.Reader, out io.Writer) error {
	client, err := newShellClient(ctx, 0, strings.NewReader(""), nopWriteCloser{out})
	if err != nil {
		return err
	}
	decoder := yaml.NewDecoder(in)
	total, failed := 0, 0
	for doc := 1; ; doc++ {
		var script scriptType
		if err := decoder.Decode(&script); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("failed to parse document %d: %s", doc, err)
		}
		if len(script.Defaults) > 0 {
			if err := client.readParameters(script.Defaults); err != nil {
				return fmt.Errorf("document %d: invalid defaults: %s", doc, err)
			}
		}
		client.log.main("document", doc, "#requests", len(script.Requests)).Debug("running script document")
		for i := range script.Requests {
			if err := ctx.Err(); err != nil {
				return err
			}
			response := handleRequest(&script.Requests[i], client)
			if result, ok := response["result"].(bool); ok && !result {
				if _, ok := response["log"]; ok {
					failed++
				}
			}
			total++
			client.respond(response)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d requests failed", failed, total)
	}
	return nil
}
