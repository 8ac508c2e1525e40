package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

func BoostrapLogger() {
	Log = &logrus.Logger{
		Out:   nil,
		Hooks: make(logrus.LevelHooks),
		Formatter: &logrus.TextFormatter{
			DisableColors:    false,
			DisableQuote:     false,
			DisableTimestamp: false,
			FullTimestamp:    true,
			TimestampFormat:  "2006-01-02T15:04:05.000Z07:00",
		},
		ReportCaller: false,
		Level:        logrus.DebugLevel,
		ExitFunc:     os.Exit,
	}

	Log.SetReportCaller(true)
	Log.Out = os.Stdout
}

// SetLevel switches the global logger to the named level. Unknown names keep the current level.
func SetLevel(name string) {
	if Log == nil {
		BoostrapLogger()
	}
	level, err := logrus.ParseLevel(strings.TrimSpace(name))
	if err != nil {
		Log.Warnf("unknown log level '%s', keeping %s", name, Log.GetLevel())
		return
	}
	Log.SetLevel(level)
}

// WithComponent returns an entry tagged with the component name, used by background tasks.
func WithComponent(name string) *logrus.Entry {
	if Log == nil {
		BoostrapLogger()
	}
	return Log.WithField("component", name)
}
