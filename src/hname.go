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
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/sirupsen/logrus"
)

type programArgs struct {
	Delimiter  *string
	Kind       *string
	MaxHandles *int
}

func (pa programArgs) String() string {
	return fmt.Sprintf("Delimiter=%s, Kind=%s, MaxHandles=%s", val2str(pa.Delimiter), val2str(pa.Kind), val2str(pa.MaxHandles))
}

var (
	log        = newLog("", "main", "shell", "name")
	args       programArgs
	standalone bool
)

// Main is the "moved" program entrypoint, but with git version argument (which is set in real main package)
func Main(programVersion VersionType, gitVersion string, cmdLineArgs []string) {
	releaseVersion := programVersion.String()
	if "v"+releaseVersion != gitVersion {
		releaseVersion += fmt.Sprintf("[%s]", gitVersion)
	}
	log.main().Printf("hname %s, Copyright © 2016-2026 nix <https://keybase.io/nixn>", releaseVersion)
	flags := flag.NewFlagSet("hname", flag.ExitOnError)
	standaloneURL := flags.String(standaloneParam, "", `Run standalone, listening on the given URL ("unix:///path/to/socket[?relative=true]" or "http://<listen-address>:<listen-port>")`)
	scriptFile := flags.String(scriptParam, "", "Run the requests of the given YAML script file, write the responses to stdout and exit")
	args = programArgs{
		Delimiter:  flags.String(delimiterParam, string(defaultDelimiter), "Default delimiter of new names"),
		Kind:       flags.String(kindParam, string(defaultKind), "Default kind of new names (array, string, array-value, string-value)"),
		MaxHandles: flags.Int(maxHandlesParam, defaultMaxHandles, "Maximum number of handles per client, the least recently used handle is dropped when exceeded"),
	}
	logging := map[logrus.Level]*string{}
	for _, level := range logrus.AllLevels {
		logging[level] = flags.String(logParamPrefix+level.String(), "", fmt.Sprintf("Set logging level %s to the given components (separated by +)", level))
	}
	_ = flags.Parse(cmdLineArgs) // ExitOnError
	for level, components := range logging {
		if len(*components) > 0 {
			if err := log.setLoggingLevel(*components, level); err != nil {
				log.main().Fatalf("-%s%s: %s", logParamPrefix, level, err)
			}
		}
	}
	log.main("args", args).Debug("parsed arguments")
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	wg := &sync.WaitGroup{}
	switch {
	case *scriptFile != "":
		if err := runScriptFile(ctx, *scriptFile, os.Stdout); err != nil {
			log.main().Fatalf("script %s failed: %s", *scriptFile, err)
		}
		return
	case *standaloneURL != "":
		standalone = true
		u, err := url.Parse(*standaloneURL)
		if err != nil {
			log.main().Fatalf("failed to parse the standalone URL %q: %s", *standaloneURL, err)
		}
		listen, ok := standalones[strings.ToLower(u.Scheme)]
		if !ok {
			log.main().Fatalf("unsupported standalone URL scheme %q (unix, http)", u.Scheme)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer recoverPanics(func(v any) bool {
				log.main().Errorf("{main} standalone %s: %v", u.Scheme, v)
				cancel()
				return false
			})
			listen(wg, ctx, u)
		}()
	default:
		wg.Add(1)
		go func() {
			defer wg.Done()
			pipe(ctx, cancel)
		}()
	}
	log.main().Debugf("{main} waiting for shutdown signal")
	<-ctx.Done()
	log.main().Debugf("{main} shutting down")
	wg.Wait()
}

// pipe serves stdin/stdout until EOF, which ends the program
func pipe(ctx context.Context, done context.CancelFunc) {
	defer done()
	client, err := newShellClient(ctx, 0, os.Stdin, os.Stdout)
	if err != nil {
		log.main().Errorf("{pipe} failed to create client: %s", err)
		return
	}
	serve(ctx, client)
}
