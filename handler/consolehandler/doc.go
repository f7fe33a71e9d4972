// Package consolehandler provides a handler that writes one formatted,
// newline-terminated line per record to an io.Writer, os.Stdout by default.
package consolehandler
