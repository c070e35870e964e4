package testutil

import (
	"flag"
	"io/ioutil"
	"os"

	log "github.com/sirupsen/logrus"
)

var (
	logFile = flag.String("log-file", "",
		"`file` to log to instead of the test default")
	logLevel = flag.String("log-level", "info",
		"log level: trace, debug, info, warn, error, fatal, or panic")
	logStderr = flag.Bool("log-stderr", false, "log to standard error")
)

// SetupLogger returns a logger for a test binary. It writes to file,
// unless overridden by the -log-file or -log-stderr flags; with no file
// at all the output is discarded.
func SetupLogger(file string) *log.Logger {
	logger := log.New()
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if *logStderr {
		logger.SetOutput(os.Stderr)
	} else {
		if *logFile != "" {
			file = *logFile
		}
		if file == "" {
			logger.SetOutput(ioutil.Discard)
		} else {
			w, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
			if err != nil {
				panic(err)
			}
			logger.SetOutput(w)
		}
	}

	ll, err := log.ParseLevel(*logLevel)
	if err != nil {
		panic(err)
	}
	logger.SetLevel(ll)

	logger.WithField("pid", os.Getpid()).Info("tests starting")
	return logger
}
