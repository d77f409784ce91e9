package ui

import (
	"fmt"
)

// Logger is the small leveled logger shared by the commands. Output is
// plain lines on stdout: during downloads the mpb bars own the terminal,
// so anything fancier would fight them for the cursor.
type Logger struct {
	Debug bool
}

func NewLogger(debug bool) *Logger {
	return &Logger{Debug: debug}
}

func (l *Logger) Debugf(format string, args ...any) {
	if l.Debug {
		fmt.Printf("[DEBUG] "+format, args...)
	}
}

func (l *Logger) Infof(format string, args ...any) {
	fmt.Printf("[INFO] "+format, args...)
}

// Warnf is for recoverable trouble, like a failed sample during a learn
// run that shrinks the pool but does not abort it.
func (l *Logger) Warnf(format string, args ...any) {
	fmt.Printf("[WARN] "+format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	fmt.Printf("[ERROR] "+format, args...)
}
