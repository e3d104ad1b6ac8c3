// Package main provides the workoutify admin CLI: seeding demo data,
// inspecting and deleting rows, and printing reports straight from the
// database, without going through the HTTP server.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sakif/workoutify/internal/apperror"
	"github.com/sakif/workoutify/internal/seed"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// exitCode maps errors the user can fix (bad input, missing rows,
// conflicts) to 1 and everything else to 2.
func exitCode(err error) int {
	switch {
	case errors.Is(err, apperror.ErrValidation),
		errors.Is(err, apperror.ErrNotFound),
		errors.Is(err, apperror.ErrConflict),
		errors.Is(err, seed.ErrNotEmpty):
		return exitUserError
	default:
		return exitSysError
	}
}
