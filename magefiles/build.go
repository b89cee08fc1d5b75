//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Build mg.Namespace

// Builds the testbed binary into bin/affine.
func (Build) Binary() error {
	return sh.RunV("go", "build", "-o", "bin/affine", ".")
}

// Runs go mod tidy and go vet over every package.
func (Build) Check() error {
	if err := sh.Run("go", "mod", "tidy"); err != nil {
		return fmt.Errorf("failed to run go mod tidy: %w", err)
	}
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return fmt.Errorf("failed to run go vet: %w", err)
	}
	return nil
}

type Test mg.Namespace

// Runs every test with the race detector.
func (Test) All() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Runs the math package tests only.
func (Test) Math() error {
	return sh.RunV("go", "test", "-v", "./engine/math/...")
}
