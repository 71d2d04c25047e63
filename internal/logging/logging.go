package logging

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

// Init sets up apex/log with a single-line handler and a level taken from
// the AWSOPS_LOG env variable. defaultLevel applies when the variable is
// unset; the CLI uses "error", the watcher uses "info".
func Init(defaultLevel string) {
	envLevel := strings.ToLower(os.Getenv("AWSOPS_LOG"))
	if envLevel == "" {
		envLevel = defaultLevel
	}

	var apexLevel log.Level
	switch envLevel {
	case "debug":
		apexLevel = log.DebugLevel
	case "info":
		apexLevel = log.InfoLevel
	case "warn":
		apexLevel = log.WarnLevel
	case "error":
		apexLevel = log.ErrorLevel
	case "fatal":
		apexLevel = log.FatalLevel
	default:
		apexLevel = log.ErrorLevel
	}

	log.SetHandler(&LineHandler{Out: os.Stderr})
	log.SetLevel(apexLevel)
}

// LineHandler formats log entries as "timestamp LEVEL message" lines
type LineHandler struct {
	Out *os.File
}

// HandleLog implements the log.Handler interface
func (h *LineHandler) HandleLog(e *log.Entry) error {
	timestamp := time.Now().Format("2006-01-02 15:04:05")

	level := "?"
	switch e.Level {
	case log.DebugLevel:
		level = "D"
	case log.InfoLevel:
		level = "I"
	case log.WarnLevel:
		level = "W"
	case log.ErrorLevel:
		level = "E"
	case log.FatalLevel:
		level = "F"
	}

	message := e.Message
	for _, f := range e.Fields.Names() {
		message += fmt.Sprintf(" %s=%v", f, e.Fields.Get(f))
	}

	fmt.Fprintf(h.Out, "%s %s %s\n", timestamp, level, message)
	return nil
}
