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
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var pid = os.Getpid()

type logFormatter struct {
	msgPrefix string
	component string
}

var logLevelChars = map[logrus.Level]string{
	logrus.PanicLevel: "FTL", // panics are used to exit gracefully and get reasons in upper levels for fatal errors, so just name it "FTL" too
	logrus.FatalLevel: "FTL",
	logrus.ErrorLevel: "ERR",
	logrus.WarnLevel:  "WRN",
	logrus.InfoLevel:  "INF",
	logrus.DebugLevel: "DBG",
	logrus.TraceLevel: "TRC",
}

func (f *logFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var arg1 string
	if standalone {
		arg1 = fmt.Sprintf("[%s]", time.Now().Format(time.StampMilli))
	} else {
		arg1 = fmt.Sprintf("hname[%d]", pid)
	}
	str := fmt.Sprintf("%s %-5s %s: %s%s", arg1, f.component, logLevelChars[entry.Level], f.msgPrefix, entry.Message)
	if len(entry.Data) > 0 {
		str += " |"
	}
	for _, k := range sortedKeys(entry.Data) {
		str += " "
		if k != "" {
			str += fmt.Sprintf("%s=", k)
		}
		str += val2str(entry.Data[k])
	}
	str += "\n"
	return []byte(str), nil
}

type logType map[string]*logrus.Logger

func newLog(msgPrefix string, components ...string) logType {
	newLogger := func(component string) *logrus.Logger {
		logger := logrus.New()
		logger.SetOutput(os.Stderr) // stdout carries the responses
		logger.SetFormatter(&logFormatter{msgPrefix, component})
		return logger
	}
	log := logType{}
	for _, comp := range components {
		log[comp] = newLogger(comp)
	}
	return log
}

func (log *logType) logger(component string) *logrus.Logger {
	return (*log)[component]
}

func (log *logType) main(fields ...any) *logrus.Entry {
	return logFrom(log.logger("main"), fields...)
}

func (log *logType) shell(fields ...any) *logrus.Entry {
	return logFrom(log.logger("shell"), fields...)
}

func (log *logType) name(fields ...any) *logrus.Entry {
	return logFrom(log.logger("name"), fields...)
}

func (log *logType) setLoggingLevel(components string, level logrus.Level) error {
	for _, component := range strings.Split(components, "+") {
		if logger, ok := (*log)[component]; ok {
			logger.SetLevel(level)
		} else {
			return fmt.Errorf("invalid log component %q", component)
		}
	}
	return nil
}

func logFrom(logger *logrus.Logger, fieldsArgs ...any) *logrus.Entry {
	fields := logrus.Fields{}
	var name *string
	if len(fieldsArgs) == 1 {
		s := ""
		name = &s
	}
	n := 1
	for _, v := range fieldsArgs {
		if s, ok := v.(string); ok && name == nil {
			name = &s
		} else if name != nil {
			fields[*name] = v
			name = nil
			n++
		} else {
			fields[fmt.Sprintf("%d", n)] = v
			n++
		}
	}
	if name != nil {
		fields[fmt.Sprintf("%d", n)] = *name
	}
	return logger.WithFields(fields)
}
