package logging

import (
	"bytes"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

type ActionsFormatter struct{}

// Setup configures the standard logger for command line use. Actions
// switches to a format understood by the GitHub Actions log parser, and
// quiet silences everything below error level.
func Setup(quiet, actions bool) {
	log.SetOutput(os.Stderr)

	if actions {
		log.SetFormatter(&ActionsFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{
			FullTimestamp:          true,
			TimestampFormat:        time.RFC3339Nano,
			DisableLevelTruncation: true,
		})
	}

	if quiet {
		log.SetLevel(log.ErrorLevel)
	}
}

func (a *ActionsFormatter) Format(e *log.Entry) ([]byte, error) {
	buf := &bytes.Buffer{}
	switch e.Level {
	case log.ErrorLevel:
		buf.WriteString("::error::")
	case log.WarnLevel:
		buf.WriteString("::warn::")
	default:
		buf.WriteString("[")
		buf.WriteString(e.Time.Format(time.RFC3339Nano))
		buf.WriteString("] ")
	}
	buf.WriteString(e.Message)
	buf.WriteRune('\n')
	return buf.Bytes(), nil
}
