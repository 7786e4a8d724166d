package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	goutils "go.viam.com/utils"
	"gopkg.in/natefinch/lumberjack.v2"

	"go.viam.com/rrtplan/logging"
)

// printf prints a message with no prefix.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

// warningf prints a message prefixed with a bold yellow "Warning: ".
func warningf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	color.New(color.Bold, color.FgYellow).Fprint(w, "Warning: ")
	printf(w, format, a...)
}

// Errorf prints a message prefixed with a bold red "Error: ".
func Errorf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	color.New(color.Bold, color.FgRed).Fprint(w, "Error: ")
	printf(w, format, a...)
}

// samePath returns true if abs(path1) and abs(path2) are the same.
func samePath(path1, path2 string) (bool, error) {
	abs1, err := filepath.Abs(path1)
	if err != nil {
		return false, err
	}
	abs2, err := filepath.Abs(path2)
	if err != nil {
		return false, err
	}
	return abs1 == abs2, nil
}

// newLogger returns a logger writing to the app's error stream, and to a rotating log file with
// --log-file. The level is debug with --debug, warn otherwise. The returned func closes the log file.
func newLogger(c *cli.Context) (logging.Logger, func()) {
	level := logging.WARN
	if c.Bool(debugFlag) {
		level = logging.DEBUG
	}
	appenders := []logging.Appender{logging.NewWriterAppender(c.App.ErrWriter)}
	closeLog := func() {}
	if path := c.String(logFileFlag); path != "" {
		logFile := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    64,
			MaxBackups: 2,
			Compress:   true,
		}
		appenders = append(appenders, logging.NewWriterAppender(logFile))
		closeLog = func() { goutils.UncheckedError(logFile.Close()) }
	}
	return logging.NewLoggerWithAppenders("rrtplan", level, appenders...), closeLog
}
