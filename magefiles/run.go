//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the SSAO sample with the configuration in config.toml.
func (Run) Sample() error {
	fmt.Println("Run SSAO sample...")
	if _, err := executeCmd("go", withArgs("run", ".", "-config", "config.toml"), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the SSAO sample without a window for the given number of frames.
func (Run) Headless() error {
	if _, err := executeCmd("go", withArgs("run", ".", "-config", "config.toml", "-headless", "-frames", "120"), withStream()); err != nil {
		return err
	}
	return nil
}
