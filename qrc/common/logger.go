package common

import (
	"fmt"
	"log"
	"strings"
)

// Logger collects the messages logged while serving one request
type Logger struct {
	Entries []*LogEntry
}

// Dbg prints an informational message without keeping it
func (l *Logger) Dbg(format string, v ...interface{}) {
	log.Printf("%s\n", fmt.Sprintf(format, v...))
}

// Msg logs an informational message
func (l *Logger) Msg(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	log.Println(msg)
	l.Entries = append(l.Entries, &LogEntry{false, msg})
}

// Err logs an error message
func (l *Logger) Err(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	log.Printf("Error: %s\n", msg)
	l.Entries = append(l.Entries, &LogEntry{true, msg})
}

// HasErrors reports whether any error was logged
func (l *Logger) HasErrors() bool {
	for _, e := range l.Entries {
		if e.IsError {
			return true
		}
	}
	return false
}

// Summary joins the logged errors into one line
func (l *Logger) Summary() string {
	var errs []string
	for _, e := range l.Entries {
		if e.IsError {
			errs = append(errs, e.Msg)
		}
	}
	return strings.Join(errs, "; ")
}

// NewLog creates a new logger
func NewLog() *Logger {
	return new(Logger)
}

// LogEntry contains the message and metadata
type LogEntry struct {
	IsError bool
	Msg     string
}
