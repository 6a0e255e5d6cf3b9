package docker

import (
	"context"
	"errors"
	"fmt"

	"github.com/docker/docker/client"
)

// ErrDaemonUnavailable means Docker could not be reached, so the Holt
// instance cannot be discovered from container labels.
var ErrDaemonUnavailable = errors.New("Docker daemon not accessible for instance discovery")

// NewClient connects to the Docker daemon named by the environment
// (DOCKER_HOST and friends) and pings it. The caller owns the returned client.
func NewClient(ctx context.Context) (*client.Client, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}

	if _, err := cli.Ping(ctx); err != nil {
		cli.Close()
		return nil, fmt.Errorf("%w (%v)", ErrDaemonUnavailable, err)
	}

	return cli, nil
}
