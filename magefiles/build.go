//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Downloads the modules and builds the sample binary into bin/.
func (Build) Sample() error {
	if _, err := executeCmd("go", withArgs("mod", "download"), withStream()); err != nil {
		return err
	}
	fmt.Println("Building SSAO sample...")
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/ssao", "."), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the test suite of every package.
func (Build) Test() error {
	if _, err := executeCmd("go", withArgs("test", "./..."), withStream()); err != nil {
		return err
	}
	return nil
}
