package git

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Checker answers questions about the Git repository around the working directory
type Checker struct {
	// Dir is where git runs; empty means the process working directory.
	Dir string
}

// NewChecker creates a new Git checker for the working directory
func NewChecker() *Checker {
	return &Checker{}
}

// IsGitRepository checks if the directory is within a Git repository
func (c *Checker) IsGitRepository() (bool, error) {
	cmd := c.command("rev-parse", "--git-dir")
	err := cmd.Run()
	if err != nil {
		// Check if error is because git command not found
		if _, ok := err.(*exec.Error); ok {
			return false, fmt.Errorf("git not found in PATH\nInstall Git: https://git-scm.com/downloads")
		}
		// Not in a Git repository
		return false, nil
	}
	return true, nil
}

// GetGitRoot returns the absolute path to the Git repository root
func (c *Checker) GetGitRoot() (string, error) {
	output, err := c.command("rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", fmt.Errorf("failed to get Git root: %w", err)
	}

	return strings.TrimSpace(string(output)), nil
}

// ProjectRoot returns the Git root when inside a repository and the
// directory itself otherwise. The result is absolute.
func (c *Checker) ProjectRoot() (string, error) {
	// A missing git binary is treated like a directory outside any repository
	if isRepo, err := c.IsGitRepository(); err == nil && isRepo {
		return c.GetGitRoot()
	}

	dir := c.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		dir = wd
	}
	return filepath.Abs(dir)
}

func (c *Checker) command(args ...string) *exec.Cmd {
	cmd := exec.Command("git", args...)
	cmd.Dir = c.Dir
	return cmd
}
