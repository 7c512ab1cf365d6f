package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/habyt/internal/logger"
	"github.com/julianstephens/habyt/internal/models"
)

// Exit codes
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitValidation = 2
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// IsValidation reports whether err wraps a *models.ValidationError.
func IsValidation(err error) bool {
	var verr *models.ValidationError
	return stderrors.As(err, &verr)
}

// ExitCode maps err to the process exit status: validation failures are
// distinguished from I/O and data errors.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case IsValidation(err):
		return ExitValidation
	default:
		return ExitFailure
	}
}

// Report logs err and writes it to w. It returns the exit code for err.
func Report(w io.Writer, err error) int {
	if err == nil {
		return ExitOK
	}
	if IsValidation(err) {
		logger.Warn("Rejected input", "error", err)
	} else {
		logger.Error("Command execution failed", "error", err)
	}
	fmt.Fprintf(w, "%s\n", Format(err))
	return ExitCode(err)
}

// Fatal reports err on stderr and exits with its exit code. It does nothing
// for a nil error.
func Fatal(err error) {
	if err != nil {
		os.Exit(Report(os.Stderr, err))
	}
}
