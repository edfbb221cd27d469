package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
)

var (
	timestampColor = color.New(color.FgHiBlack)
	infoColor      = color.New(color.FgBlue)
	successColor   = color.New(color.FgGreen)
	warningColor   = color.New(color.FgYellow)
	errorColor     = color.New(color.FgRed)
	debugColor     = color.New(color.FgHiBlack)
)

func prefix() string {
	return timestampColor.Sprintf("[%s]", time.Now().Format("15:04:05"))
}

// Info logs general information (blue).
func Info(message string, args ...interface{}) {
	fmt.Printf("%s %s\n", prefix(), infoColor.Sprintf(message, args...))
}

// Success logs a success (green).
func Success(message string, args ...interface{}) {
	fmt.Printf("%s %s\n", prefix(), successColor.Sprintf("✓ "+message, args...))
}

// Warning logs a warning (yellow).
func Warning(message string, args ...interface{}) {
	fmt.Printf("%s %s\n", prefix(), warningColor.Sprintf("⚠ "+message, args...))
}

// Error logs an error (red) to stderr.
func Error(message string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s\n", prefix(), errorColor.Sprintf("✗ "+message, args...))
}

// Debug logs a debug message, shown only when SMARTFITNESS_DEBUG is set.
func Debug(message string, args ...interface{}) {
	if os.Getenv("SMARTFITNESS_DEBUG") == "" {
		return
	}
	fmt.Printf("%s %s\n", prefix(), debugColor.Sprintf("DEBUG: "+message, args...))
}
