package cli

import (
	"errors"

	"github.com/yaklabco/refract/pkg/pipeline"
	"github.com/yaklabco/refract/pkg/refactor"
)

// Exit codes.
const (
	ExitSuccess = 0

	// ExitFailure means at least one file could not be refactored.
	ExitFailure = 1

	// ExitNoChanges means --require-changes was set and nothing changed.
	ExitNoChanges = 2

	ExitInvalidUsage  = 64
	ExitConfigError   = 65
	ExitInternalError = 70
	ExitIOError       = 74
)

// Command errors, mapped to exit codes by ExitCode.
var (
	ErrRefactoringFailed = errors.New("refactoring failed")
	ErrInvalidUsage      = errors.New("invalid usage")
	ErrConfig            = errors.New("configuration error")
)

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, pipeline.ErrNoChanges):
		return ExitNoChanges
	case errors.Is(err, ErrInvalidUsage),
		errors.Is(err, refactor.ErrInvalidParams),
		errors.Is(err, refactor.ErrUnknownRefactoring),
		errors.Is(err, pipeline.ErrUnsupportedLanguage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, pipeline.ErrFileNotFound), errors.Is(err, pipeline.ErrWriteFailure):
		return ExitIOError
	default:
		return ExitFailure
	}
}

// Silent reports whether err only carries an exit status and was already
// reported on the output.
func Silent(err error) bool {
	return errors.Is(err, ErrRefactoringFailed) || errors.Is(err, pipeline.ErrNoChanges)
}
