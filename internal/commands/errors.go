package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	codeCommandValidation = "PORTFOLIO_COMMAND_VALIDATION_FAILED"
	codeCommandCanceled   = "PORTFOLIO_COMMAND_CANCELED"
	codeCommandTimeout    = "PORTFOLIO_COMMAND_TIMEOUT"
	codeCommandContext    = "PORTFOLIO_COMMAND_CONTEXT_ERROR"
	codeCommandFailed     = "PORTFOLIO_COMMAND_FAILED"
)

func wrapValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(codeCommandValidation)
}

func wrapContextError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}

	message, code := "command context error", codeCommandContext
	switch {
	case errors.Is(err, context.Canceled):
		message, code = "command execution cancelled", codeCommandCanceled
	case errors.Is(err, context.DeadlineExceeded):
		message, code = "command execution deadline exceeded", codeCommandTimeout
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, message).WithTextCode(code)
}

func wrapExecuteError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
		WithTextCode(codeCommandFailed)
}
