// Package cli turns process arguments into an app.Config. The surface is
// deliberately bare: one or two positional arguments, no flags, no
// environment variables.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/mimesummon/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const usage = `mimesummon - ask the desktop session to open a file.

Usage:
  mimesummon [MIMETYPE] FILE

Arguments:
  MIMETYPE
    Optional explicit content type for FILE. When omitted, the type is
    detected from the file itself.
  FILE
    Path or URI of the file to open.
`

// Parse processes command-line arguments. Exactly one or two positionals
// are accepted: FILE, or MIMETYPE then FILE. Anything else prints usage to
// output and returns an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, error) {
	slog.Debug("CLI parser started.", "argc", len(args))

	var path, mimeType string
	switch len(args) {
	case 1:
		path = args[0]
	case 2:
		// The first argument is the type hint, the second the file.
		mimeType = args[0]
		path = args[1]
	default:
		fmt.Fprint(output, usage)
		return nil, &ExitError{Code: 2, Message: "expected 1 or 2 arguments"}
	}

	config, err := app.NewConfig(app.Config{
		Path:     path,
		MIMEType: mimeType,
	})
	if err != nil {
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "path", path, "mimetype", mimeType)
	return config, nil
}
