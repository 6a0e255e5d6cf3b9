package instance

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrNoInstance means no running Holt instance serves the workspace.
	ErrNoInstance = errors.New("no Holt instance found")

	// ErrMultipleInstances means the workspace is ambiguous without --name.
	ErrMultipleInstances = errors.New("multiple Holt instances found")
)

// Target is a resolved blackboard location.
type Target struct {
	RedisURL string
	Instance string
	// Discovered is true when the target came from Docker labels rather than
	// an explicit Redis URL.
	Discovered bool
}

// ResolveOptions controls how the blackboard is located.
type ResolveOptions struct {
	// RedisURL skips Docker discovery when set.
	RedisURL string
	// Name selects the instance. Empty means DefaultName with RedisURL, or the
	// instance bound to the workspace otherwise.
	Name string
	// Docker is required only for discovery.
	Docker ContainerLister
	// Workspace is the canonical workspace path; empty means derive it from
	// the working directory.
	Workspace string
}

// Resolve determines which Redis URL and instance name the collaborators
// answer on. With an explicit URL no Docker call is made.
func Resolve(ctx context.Context, opts ResolveOptions) (*Target, error) {
	if opts.Name != "" {
		if err := ValidateName(opts.Name); err != nil {
			return nil, err
		}
	}

	if opts.RedisURL != "" {
		if _, err := redis.ParseURL(opts.RedisURL); err != nil {
			return nil, fmt.Errorf("invalid Redis URL: %w", err)
		}
		name := opts.Name
		if name == "" {
			name = DefaultName
		}
		return &Target{RedisURL: opts.RedisURL, Instance: name}, nil
	}

	if opts.Docker == nil {
		return nil, fmt.Errorf("no Redis URL given and Docker is unavailable for discovery")
	}

	name := opts.Name
	if name == "" {
		workspace := opts.Workspace
		if workspace == "" {
			var err error
			workspace, err = GetCanonicalWorkspacePath("")
			if err != nil {
				return nil, err
			}
		}

		var err error
		name, err = FindInstanceByWorkspace(ctx, opts.Docker, workspace)
		if err != nil {
			return nil, err
		}
	}

	if err := VerifyInstanceRunning(ctx, opts.Docker, name); err != nil {
		return nil, err
	}

	port, err := GetInstanceRedisPort(ctx, opts.Docker, name)
	if err != nil {
		return nil, err
	}

	return &Target{RedisURL: GetRedisURL(port), Instance: name, Discovered: true}, nil
}
