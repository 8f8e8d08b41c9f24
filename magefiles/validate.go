//go:build mage

package main

import (
	"os"
	"os/exec"
	"path/filepath"
)

// Validate builds the CLI and checks the published corpus for
// inconsistencies without modifying it.
func Validate() error {
	if err := Build(); err != nil {
		return err
	}
	cmd := exec.Command(filepath.Join(binDir, binName), "validate")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Quarantine builds the CLI and lists records currently held out of the
// published corpus.
func Quarantine() error {
	if err := Build(); err != nil {
		return err
	}
	cmd := exec.Command(filepath.Join(binDir, binName), "quarantine", "list")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
