package logger

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds the diagnostic logger. The TUI owns the terminal, so logs go
// to a rolling file under the XDG data dir. Level "none" disables output.
func New(level string) zerolog.Logger {
	lvl := zerolog.InfoLevel
	switch level {
	case "debug":
		lvl = zerolog.DebugLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	case "none":
		return zerolog.Nop()
	}

	path, err := logPath()
	if err != nil {
		return zerolog.Nop()
	}

	writer := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // MB
		MaxAge:     14,
		MaxBackups: 3,
	}

	return zerolog.New(writer).With().Timestamp().Logger().Level(lvl)
}

func logPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "modwatch", "modwatch.log"), nil
}
