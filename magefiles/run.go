//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Run mg.Namespace

// Runs the testbed on the demo scene for ten seconds worth of frames.
func (Run) Demo() error {
	fmt.Println("Run demo...")
	return sh.RunV("go", "run", "main.go", "-scene", "testbed/scene.toml", "-frames", "600")
}

// Runs the testbed with the shipped config, reloading the scene on change.
func (Run) Watch() error {
	mg.Deps(Build.Binary)
	fmt.Println("Run testbed, edit testbed/scene.toml to reload...")
	return sh.RunV("bin/affine", "-config", "testbed/app.toml")
}
