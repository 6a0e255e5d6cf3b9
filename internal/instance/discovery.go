package instance

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	dockerpkg "github.com/dyluth/planrun/internal/docker"
)

// ContainerLister is the slice of the Docker API discovery needs.
// *client.Client satisfies it.
type ContainerLister interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]types.Container, error)
}

// listByLabels returns all containers (running or not) carrying every label filter.
func listByLabels(ctx context.Context, cli ContainerLister, labels ...string) ([]types.Container, error) {
	filter := filters.NewArgs()
	for _, l := range labels {
		filter.Add("label", l)
	}

	containers, err := cli.ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: filter,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}
	return containers, nil
}

// FindInstanceByWorkspace finds the Holt instance running on the given workspace path.
// Returns the instance name, ErrNoInstance, or ErrMultipleInstances.
// workspacePath must already be canonical (see GetCanonicalWorkspacePath).
func FindInstanceByWorkspace(ctx context.Context, cli ContainerLister, workspacePath string) (string, error) {
	containers, err := listByLabels(ctx, cli, dockerpkg.LabelFilter(dockerpkg.LabelProject, "true"))
	if err != nil {
		return "", err
	}

	seen := make(map[string]bool)
	var matching []string
	for _, c := range containers {
		if c.Labels[dockerpkg.LabelWorkspacePath] != workspacePath {
			continue
		}
		name := c.Labels[dockerpkg.LabelInstanceName]
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		matching = append(matching, name)
	}

	switch len(matching) {
	case 0:
		return "", fmt.Errorf("%w for workspace %s", ErrNoInstance, workspacePath)
	case 1:
		return matching[0], nil
	default:
		sort.Strings(matching)
		return "", fmt.Errorf("%w: %v", ErrMultipleInstances, matching)
	}
}

// GetInstanceRedisPort retrieves the Redis port for the given instance from Docker labels.
func GetInstanceRedisPort(ctx context.Context, cli ContainerLister, instanceName string) (int, error) {
	containers, err := listByLabels(ctx, cli,
		dockerpkg.LabelFilter(dockerpkg.LabelInstanceName, instanceName),
		dockerpkg.LabelFilter(dockerpkg.LabelComponent, dockerpkg.ComponentRedis),
	)
	if err != nil {
		return 0, err
	}

	if len(containers) == 0 {
		return 0, fmt.Errorf("Redis container not found for instance '%s'", instanceName)
	}

	portStr, ok := containers[0].Labels[dockerpkg.LabelRedisPort]
	if !ok {
		return 0, fmt.Errorf("Redis port label missing for instance '%s'", instanceName)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, fmt.Errorf("invalid Redis port '%s': %w", portStr, err)
	}

	return port, nil
}

// VerifyInstanceRunning checks that the instance's Redis and orchestrator
// containers are running. Agent containers may exit between tasks and are not checked.
func VerifyInstanceRunning(ctx context.Context, cli ContainerLister, instanceName string) error {
	containers, err := listByLabels(ctx, cli, dockerpkg.LabelFilter(dockerpkg.LabelInstanceName, instanceName))
	if err != nil {
		return err
	}

	if len(containers) == 0 {
		return fmt.Errorf("%w: instance '%s' not found", ErrNoInstance, instanceName)
	}

	essential := map[string]bool{
		dockerpkg.ComponentRedis:        false,
		dockerpkg.ComponentOrchestrator: false,
	}

	for _, c := range containers {
		component := c.Labels[dockerpkg.LabelComponent]
		if _, ok := essential[component]; !ok {
			continue
		}
		essential[component] = true
		if c.State != "running" {
			return fmt.Errorf("instance '%s' is not running (component '%s' is %s)", instanceName, component, c.State)
		}
	}

	for _, component := range []string{dockerpkg.ComponentRedis, dockerpkg.ComponentOrchestrator} {
		if !essential[component] {
			return fmt.Errorf("instance '%s' is missing essential component '%s'", instanceName, component)
		}
	}

	log.Printf("[Discovery] Instance '%s' is %s (%d containers)", instanceName, DetermineStatus(containers), len(containers))
	return nil
}
