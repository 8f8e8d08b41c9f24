//go:build mage

package main

import (
	"os"
	"os/exec"
	"path/filepath"
)

// Run builds the CLI and executes the full normalization pipeline over
// corpus/raw.
func Run() error {
	if err := Build(); err != nil {
		return err
	}
	cmd := exec.Command(filepath.Join(binDir, binName), "run")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Report builds the CLI and prints the latest run report tables.
func Report() error {
	if err := Build(); err != nil {
		return err
	}
	cmd := exec.Command(filepath.Join(binDir, binName), "report")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
