//go:build mage

// Package main provides build targets for workoutify using Mage.
//
// Usage:
//
//	mage build     Compile the server and admin CLI to bin/
//	mage test      Run all tests
//	mage lint      Run golangci-lint
//	mage run       Build and start the API server
//	mage seed      Reset the local database and fill it with demo data
//	mage clean     Remove build artifacts
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binaryDir = "bin"

var binaries = map[string]string{
	"workoutify-server": "./cmd/server",
	"workoutify":        "./cmd/workoutify",
}

// Build compiles both binaries to bin/, stamping the CLI version from git
// when available.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || version == "" {
		version = "dev"
	}
	ldflags := fmt.Sprintf("-X main.version=%s", version)

	for name, pkg := range binaries {
		if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", filepath.Join(binaryDir, name), pkg); err != nil {
			return err
		}
	}
	return nil
}

// Test runs all tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Run builds and starts the API server.
func Run() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binaryDir, "workoutify-server"))
}

// Seed wipes the configured database and generates 30 days of demo data.
func Seed() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binaryDir, "workoutify"), "seed", "--reset")
}

// Clean removes build artifacts.
func Clean() error {
	return os.RemoveAll(binaryDir)
}
