// SPDX-License-Identifier: GPL-3.0-or-later
package log

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	loggers   map[string]*logrus.Logger
	loggersMu sync.Mutex
)

func NewPrefixLogger(prefix string) *PrefixLogger {
	stringPrefix := fmt.Sprintf("%s:\t", prefix)

	formatter := &logrus.TextFormatter{}
	formatter.FullTimestamp = true
	formatter.TimestampFormat = "15:04:05"
	formatter.DisableColors = strings.Contains(runtime.GOOS, "windows")
	return &PrefixLogger{
		formatter,
		[]byte(stringPrefix),
	}
}

type PrefixLogger struct {
	formatter logrus.Formatter
	prefix    []byte
}

func (f *PrefixLogger) Format(entry *logrus.Entry) ([]byte, error) {
	text, err := f.formatter.Format(entry)
	if err != nil {
		return nil, err
	}
	return append(append([]byte{}, f.prefix...), text...), nil
}

const (
	LOG_MAIN         = "MA"
	LOG_ENGINE       = "EN"
	LOG_HIDDEN       = "HS"
	LOG_INTERCEPTOR  = "IC"
	LOG_LOOKUPFILTER = "LF"
	LOG_RECONCILE    = "RC"
	LOG_PERSISTENCE  = "PI"
	LOG_GATEWAY      = "GW"
	LOG_STATE        = "ST"
)

var prefixes = []string{
	LOG_MAIN,
	LOG_ENGINE,
	LOG_HIDDEN,
	LOG_INTERCEPTOR,
	LOG_LOOKUPFILTER,
	LOG_RECONCILE,
	LOG_PERSISTENCE,
	LOG_GATEWAY,
	LOG_STATE,
}

func getLevel(loglevel string) logrus.Level {
	switch strings.ToLower(loglevel) {
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "panic":
		return logrus.PanicLevel
	case "fatal":
		return logrus.FatalLevel
	}

	// Info is default
	return logrus.InfoLevel
}

func initLogger(prefix, loglevel string) {
	loggers[prefix] = logrus.New()
	loggers[prefix].Level = getLevel(loglevel)
	loggers[prefix].Formatter = NewPrefixLogger(prefix)
}

func InitLogging(loglevel string) {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	loggers = make(map[string]*logrus.Logger)
	for _, prefix := range prefixes {
		initLogger(prefix, loglevel)
	}
}

func SetLogLevel(loglevel string) {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	for _, v := range loggers {
		v.SetLevel(getLevel(loglevel))
	}
}

// Logger returns the logger for a known prefix. Logging is initialised at info level on first
// use if InitLogging has not been called yet.
func Logger(logger string) *logrus.Logger {
	loggersMu.Lock()
	if loggers == nil {
		loggers = make(map[string]*logrus.Logger)
		for _, prefix := range prefixes {
			initLogger(prefix, "info")
		}
	}
	l, ok := loggers[logger]
	loggersMu.Unlock()

	if !ok {
		panic("Logger " + logger + " unknown")
	}

	return l
}
