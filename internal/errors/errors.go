// Package errors holds the fatal-exit helpers used during application
// wiring. Commands return their errors to the CLI runner; these are for
// failures before a command can run at all.
package errors

import (
	"fmt"
	"os"

	"github.com/adityarawat/prepometer/internal/logger"
)

// Format renders an error for the terminal with the standard "Error: " prefix.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf is Format over a format string.
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs the failure, prints it to stderr, and exits with code 1.
// A nil error is a no-op.
func Fatal(err error) {
	if err != nil {
		logger.Error("Exiting on fatal error", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf is Fatal over a format string.
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Exiting on fatal error", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
