package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// BoostrapLogger replaces Log with the service logger. Unknown levels fall back to debug.
func BoostrapLogger(level string, json bool) {
	var formatter logrus.Formatter = &logrus.TextFormatter{
		DisableColors:    false,
		DisableQuote:     false,
		DisableTimestamp: false,
		FullTimestamp:    true,
	}
	if json {
		formatter = &logrus.JSONFormatter{}
	}

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.DebugLevel
	}

	Log = &logrus.Logger{
		Out:          os.Stdout,
		Hooks:        make(logrus.LevelHooks),
		Formatter:    formatter,
		ReportCaller: true,
		Level:        lvl,
		ExitFunc:     os.Exit,
	}
}
