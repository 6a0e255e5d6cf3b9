package instance

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/docker/docker/client"
	"github.com/dyluth/planrun/internal/git"
)

// GetCanonicalWorkspacePath returns the absolute, symlink-free Git root of dir
// (the working directory when empty), the same path Holt records in its
// workspace label. In Docker-in-Docker setups container paths under /app are
// translated to the host path.
func GetCanonicalWorkspacePath(dir string) (string, error) {
	gitRoot, err := (&git.Checker{Dir: dir}).GetGitRoot()
	if err != nil {
		return "", fmt.Errorf("not in a Git repository: %w", err)
	}

	realPath, err := filepath.EvalSymlinks(gitRoot)
	if err != nil {
		return "", fmt.Errorf("failed to resolve symlinks: %w", err)
	}

	absPath, err := filepath.Abs(realPath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	return translateContainerPathToHost(absPath), nil
}

func translateContainerPathToHost(containerPath string) string {
	if !strings.HasPrefix(containerPath, "/app") {
		return containerPath
	}

	if _, err := os.Stat("/.dockerenv"); err != nil {
		return containerPath
	}

	hostPath := detectHostPathForAppMount()
	if hostPath == "" {
		return containerPath
	}

	return filepath.Join(hostPath, containerPath[len("/app"):])
}

// detectHostPathForAppMount inspects our own container for the /app bind mount source
func detectHostPathForAppMount() string {
	hostname, err := os.Hostname()
	if err != nil {
		return ""
	}

	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return ""
	}
	defer cli.Close()

	inspect, err := cli.ContainerInspect(context.Background(), hostname)
	if err != nil {
		return ""
	}

	for _, mount := range inspect.Mounts {
		if mount.Destination == "/app" {
			return mount.Source
		}
	}

	return ""
}
