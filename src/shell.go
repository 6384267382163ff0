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
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nixn/hname/names"
	"github.com/sirupsen/logrus"
)

type kindType string

const (
	arrayKind       kindType = "array"
	stringKind      kindType = "string"
	arrayValueKind  kindType = "array-value"
	stringValueKind kindType = "string-value"
)

func parseKind(s string) (kindType, error) {
	switch kind := kindType(strings.ToLower(s)); kind {
	case arrayKind, stringKind, arrayValueKind, stringValueKind:
		return kind, nil
	default:
		return "", fmt.Errorf("invalid kind %q (array, string, array-value, string-value)", s)
	}
}

func (kind kindType) isValue() bool {
	return kind == arrayValueKind || kind == stringValueKind
}

func parseDelimiter(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be exactly one character, got %q", s)
	}
	d, _ := utf8.DecodeRuneInString(s)
	if err := names.ValidDelimiter(d); err != nil {
		return 0, err
	}
	return d, nil
}

type shellRequest struct {
	Method     string          `json:"method" yaml:"method"`
	Parameters objectType[any] `json:"parameters" yaml:"parameters"`
}

func (req *shellRequest) String() string {
	return fmt.Sprintf("%s: %s", req.Method, val2str(map[string]any(req.Parameters)))
}

type shellClient struct {
	ID        uint
	Comm      *commType[shellRequest]
	log       logType
	out       io.Closer
	registry  *registryType
	delimiter rune
	kind      kindType
}

func newShellClient(ctx context.Context, id uint, in io.Reader, out interface {
	io.Writer
	io.Closer
}) (*shellClient, error) {
	client := &shellClient{
		ID:   id,
		Comm: newComm[shellRequest](ctx, in, out),
		log:  newLog(fmt.Sprintf("[%d] ", id), "main", "shell", "name"),
		out:  out,
	}
	for component, logger := range log {
		client.log.logger(component).SetLevel(logger.GetLevel())
	}
	var err error
	if client.delimiter, err = parseDelimiter(*args.Delimiter); err != nil {
		return nil, fmt.Errorf("invalid default delimiter: %s", err)
	}
	if client.kind, err = parseKind(*args.Kind); err != nil {
		return nil, fmt.Errorf("invalid default kind: %s", err)
	}
	if client.registry, err = newRegistry(*args.MaxHandles, client.evicted); err != nil {
		return nil, err
	}
	return client, nil
}

func (client *shellClient) evicted(handle string, h *handleType) {
	client.log.name("handle", handle, "name", h).Warn("registry is full, dropped least recently used handle")
}

func (client *shellClient) respond(response any) {
	client.log.shell("response", response).Trace("response")
	if err := client.Comm.write(response); err != nil {
		client.log.shell().WithError(err).Error("failed to encode response")
	}
}

func (client *shellClient) readParameters(params objectType[any]) error {
	for _, k := range sortedKeys(params) {
		v, err := stringValue(params, k)
		if err != nil {
			return err
		}
	SWITCH:
		switch {
		case k == delimiterParam:
			var d rune
			if d, err = parseDelimiter(v); err == nil {
				client.delimiter = d
			}
		case k == kindParam:
			var kind kindType
			if kind, err = parseKind(v); err == nil {
				client.kind = kind
			}
		case strings.HasPrefix(k, logParamPrefix):
			for _, level := range logrus.AllLevels {
				if k == logParamPrefix+level.String() {
					err = client.log.setLoggingLevel(v, level)
					break SWITCH
				}
			}
			err = fmt.Errorf("invalid log level parameter: %s", k)
		default:
			client.log.main().Warnf("unknown parameter %q", k)
		}
		if err != nil {
			return fmt.Errorf("failed to set parameter %q: %s", k, err)
		}
	}
	return nil
}

type readResult struct {
	request shellRequest
	err     error
}

func startReadRequests(ctx context.Context, client *shellClient) <-chan readResult {
	ch := make(chan readResult)
	go func() {
		defer close(ch)
		for {
			request, err := client.Comm.read()
			if err != nil && errors.Is(err, io.EOF) {
				client.log.shell().Debug("EOF on input stream, terminating")
				return
			}
			if err == nil {
				client.log.shell("request", request).Debug("received new request")
			}
			select {
			case ch <- readResult{*request, err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				// the decoder cannot recover from a syntax error, so the stream ends here
				return
			}
		}
	}()
	return ch
}

func handleRequest(request *shellRequest, client *shellClient) objectType[any] {
	client.log.main("request", request).Debug("handling request")
	since := time.Now()
	var result any
	var err error
	if method, ok := methods[strings.ToLower(request.Method)]; ok {
		params := request.Parameters
		if params == nil {
			params = objectType[any]{}
		}
		result, err = method(params, client)
	} else {
		err = fmt.Errorf("unknown method: %q", request.Method)
	}
	dur := time.Since(since)
	client.log.main("dur", dur, "err", err2str(err), "val", result).Trace("result")
	if err != nil {
		return makeResponse(false, err.Error())
	}
	return makeResponse(result)
}

func serve(ctx context.Context, client *shellClient) {
	defer closeNoError(client.out)
	reqChan := startReadRequests(ctx, client)
	for {
		select {
		case <-ctx.Done():
			client.log.shell().Debug("context done, terminating")
			return
		case read, ok := <-reqChan:
			if !ok {
				return
			}
			if read.err != nil {
				client.log.shell().Errorf("failed to decode request: %s", read.err)
				client.respond(makeResponse(false, fmt.Sprintf("failed to decode request: %s", read.err)))
				return
			}
			client.respond(handleRequest(&read.request, client))
		}
	}
}

func makeResponse(result any, msgs ...string) objectType[any] {
	response := objectType[any]{"result": result}
	if len(msgs) > 0 {
		response["log"] = msgs
	}
	return response
}
