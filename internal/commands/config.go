package commands

import (
	"os"

	"github.com/charmbracelet/log"
)

// CommonConfig contains configuration common to all commands
type CommonConfig struct {
	// LogLevel is the logging level to use
	LogLevel string `help:"Log level (debug, info, warn, error)" default:"warn" enum:"debug,info,warn,error"`
}

// Logger builds the command logger from the configured level
func (c CommonConfig) Logger() *log.Logger {
	logger := log.New(os.Stderr)
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		logger.Fatal("Invalid log level", "error", err)
	}
	logger.SetLevel(level)
	return logger
}
