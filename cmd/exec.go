package cmd

import (
	"os/exec"
)

// The optional post-check build shells out to docker. These seams keep
// that invocation stubbable without a Docker install.

// findExecutable resolves a binary on PATH, typically docker.
func findExecutable(name string) (string, error) {
	return exec.LookPath(name)
}

// execCommand prepares the external build command.
func execCommand(name string, args ...string) *exec.Cmd {
	return exec.Command(name, args...)
}
