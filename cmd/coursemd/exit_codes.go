package main

import (
	"errors"
	"os"

	flag "github.com/spf13/pflag"

	coursemd "github.com/alnah/go-coursemd"
	"github.com/alnah/go-coursemd/internal/config"
	"github.com/alnah/go-coursemd/internal/logger"
)

// Exit codes for the coursemd CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Command completed
	ExitGeneral = 1 // General/unexpected error, including partial build failures
	ExitUsage   = 2 // Invalid flags, config, or unknown lesson
	ExitIO      = 3 // File not found, permission denied, write failures
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, coursemd.ErrReadContent) ||
		errors.Is(err, coursemd.ErrProgressWrite) ||
		errors.Is(err, coursemd.ErrAssetRead) ||
		errors.Is(err, ErrContentDir) ||
		errors.Is(err, ErrReadLesson) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, flag.ErrHelp) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrInvalidFlag) ||
		errors.Is(err, ErrMissingArgument) ||
		errors.Is(err, ErrUnexpectedArgument) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUnknownProgressAction) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, logger.ErrUnknownMode) ||
		errors.Is(err, coursemd.ErrEmptyMarkdown) ||
		errors.Is(err, coursemd.ErrEmptyLessonID) ||
		errors.Is(err, coursemd.ErrLessonNotFound) ||
		errors.Is(err, coursemd.ErrCategoryNotFound) ||
		errors.Is(err, coursemd.ErrUnknownHighlightStyle) ||
		errors.Is(err, coursemd.ErrStyleNotFound) ||
		errors.Is(err, coursemd.ErrTemplateSetNotFound) ||
		errors.Is(err, coursemd.ErrIncompleteTemplateSet) ||
		errors.Is(err, coursemd.ErrTemplateParse) ||
		errors.Is(err, coursemd.ErrInvalidAssetPath) ||
		errors.Is(err, coursemd.ErrInvalidAssetName) {
		return ExitUsage
	}

	return ExitGeneral
}
