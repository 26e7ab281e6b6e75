// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"

	"github.com/davetashner/riskboard/internal/incident"
)

// Exit codes for riskboard CLI.
const (
	ExitOK          = 0 // Success.
	ExitInvalidArgs = 1 // Invalid flags, config or filter expression.
	ExitRuntime     = 2 // Generation, rendering or I/O failed.
)

type exitCodeError struct {
	code int
	msg  string
	err  error
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

func (e *exitCodeError) Unwrap() error { return e.err }

// exitError creates an exitCodeError. If msg is empty, the error message is
// set to a generic description of the exit code.
func exitError(code int, format string, args ...any) *exitCodeError {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		switch code {
		case ExitInvalidArgs:
			msg = "riskboard: invalid arguments"
		default:
			msg = "riskboard: error"
		}
	}
	return &exitCodeError{code: code, msg: msg}
}

// fail maps err to an exit code: anything wrapping
// incident.ErrInvalidArgument exits with ExitInvalidArgs, the rest with
// ExitRuntime. An existing exitCodeError is returned unchanged.
func fail(err error) error {
	if err == nil {
		return nil
	}
	var ece *exitCodeError
	if errors.As(err, &ece) {
		return err
	}
	code := ExitRuntime
	if errors.Is(err, incident.ErrInvalidArgument) {
		code = ExitInvalidArgs
	}
	e := exitError(code, "riskboard: %v", err)
	e.err = err
	return e
}
