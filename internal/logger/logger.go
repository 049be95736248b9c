// Package logger redirects the standard logger to a file so that log
// output never corrupts the terminal UI of the client.
package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"
)

const maxLogSize = 10 * 1024 * 1024 // 10MB

var (
	logFile *os.File
	logPath string
)

// Init opens ~/.doudizhu/debug.log and points the standard logger at it.
func Init() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	logDir := filepath.Join(homeDir, ".doudizhu")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath = filepath.Join(logDir, "debug.log")
	logFile, err = openOrRotate(logDir)
	if err != nil {
		return err
	}

	log.SetOutput(logFile)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)

	Infof("logger initialized, log file: %s", logPath)
	return nil
}

func openOrRotate(logDir string) (*os.File, error) {
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	info, err := f.Stat()
	if err != nil || info.Size() <= maxLogSize {
		return f, nil
	}

	// Keep one timestamped backup, then start fresh.
	_ = f.Close()
	backup := filepath.Join(logDir, fmt.Sprintf("debug.log.%d", time.Now().Unix()))
	_ = os.Rename(logPath, backup)

	f, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create new log file: %w", err)
	}
	return f, nil
}

// Close closes the log file
func Close() {
	if logFile != nil {
		_ = logFile.Close()
	}
}

// Infof logs an info message
func Infof(format string, args ...interface{}) {
	log.Printf("[INFO] "+format, args...)
}

// Errorf logs an error message
func Errorf(format string, args ...interface{}) {
	log.Printf("[ERROR] "+format, args...)
}

// Panicf logs a recovered panic with its stack trace
func Panicf(r interface{}) {
	log.Printf("[PANIC] %v\n%s", r, debug.Stack())
}

// Path returns the current log file path
func Path() string {
	return logPath
}
