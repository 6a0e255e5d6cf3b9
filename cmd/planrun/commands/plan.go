package commands

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dyluth/planrun/internal/collab"
	"github.com/dyluth/planrun/internal/config"
	"github.com/dyluth/planrun/internal/descriptor"
	dockerpkg "github.com/dyluth/planrun/internal/docker"
	"github.com/dyluth/planrun/internal/git"
	"github.com/dyluth/planrun/internal/instance"
	"github.com/dyluth/planrun/internal/pipeline"
	"github.com/dyluth/planrun/internal/printer"
	"github.com/dyluth/planrun/pkg/blackboard"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

func runPlan(cmd *cobra.Command, opts *rootOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Phase 1: Configuration
	cfg, err := config.LoadOptional(opts.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return printer.Error(
			"invalid configuration",
			fmt.Sprintf("Could not load %s: %v", opts.configPath, err),
			[]string{"Regenerate a default configuration:\n  planrun init --force"},
		)
	}
	if opts.outputDir != "" {
		cfg.OutputDir = opts.outputDir
	}
	if opts.redisURL != "" {
		cfg.Blackboard.RedisURL = opts.redisURL
	}
	if opts.name != "" {
		cfg.Blackboard.Instance = opts.name
	}

	timeout, err := cfg.Blackboard.Timeout()
	if err != nil {
		return err
	}

	// Phase 2: Collaborators
	client, target, err := connectBlackboard(ctx, cfg.Blackboard)
	if err != nil {
		return err
	}
	defer client.Close()
	if target.Discovered {
		printer.Info("🔎 Discovered Holt instance '%s' at %s\n", target.Instance, target.RedisURL)
	} else {
		log.Printf("[Planrun] Using instance '%s' at %s", target.Instance, target.RedisURL)
	}

	projectPath := cfg.ProjectPath
	if projectPath == "" {
		projectPath, err = git.NewChecker().ProjectRoot()
		if err != nil {
			return err
		}
	}

	// Phase 3: Run
	collaborators := collab.NewBlackboard(client, timeout)
	_, err = pipeline.Run(ctx, collaborators, collaborators, pipeline.Options{
		Project:     descriptor.MinecraftSkinStudio(),
		ProjectPath: projectPath,
		OutputDir:   cfg.OutputDir,
		OnStage:     printStage,
	})
	return err
}

// connectBlackboard resolves and pings the blackboard the collaborators
// answer on. Every failure is reported with a hint before any call is made.
func connectBlackboard(ctx context.Context, bb *config.BlackboardConfig) (*blackboard.Client, *instance.Target, error) {
	resolveOpts := instance.ResolveOptions{
		RedisURL: bb.RedisURL,
		Name:     bb.Instance,
	}

	if bb.RedisURL == "" {
		cli, err := dockerpkg.NewClient(ctx)
		if err != nil {
			suggestions := []string{"Point planrun at a blackboard directly:\n  planrun --redis-url redis://localhost:6379 --name <instance-name>"}
			if errors.Is(err, dockerpkg.ErrDaemonUnavailable) {
				suggestions = append(suggestions, "Start Docker so the Holt instance for this workspace can be discovered")
			}
			return nil, nil, printer.Error("planning collaborators unavailable", fmt.Sprintf("Error: %v", err), suggestions)
		}
		defer cli.Close()
		resolveOpts.Docker = cli
	}

	target, err := instance.Resolve(ctx, resolveOpts)
	if err != nil {
		return nil, nil, resolutionError(err, bb.Instance)
	}

	redisOpts, err := redis.ParseURL(target.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client, err := blackboard.NewClient(redisOpts, target.Instance)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create blackboard client: %w", err)
	}

	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, nil, printer.ErrorWithContext(
			"planning collaborators unavailable",
			fmt.Sprintf("Could not connect to Redis at %s", target.RedisURL),
			map[string]string{"Instance": target.Instance, "Error": err.Error()},
			[]string{"Check that the Holt instance is running:\n  holt list"},
		)
	}

	return client, target, nil
}

func resolutionError(err error, name string) error {
	switch {
	case errors.Is(err, instance.ErrNoInstance):
		return printer.Error(
			"planning collaborators unavailable",
			"No running Holt instance found for this workspace.",
			[]string{"Start an instance first:\n  holt up"},
		)
	case errors.Is(err, instance.ErrMultipleInstances):
		return printer.Error(
			"multiple instances found",
			"Found multiple running instances for this workspace.",
			[]string{"Specify which instance to use:\n  planrun --name <instance-name>"},
		)
	case name != "":
		return printer.Error(
			"planning collaborators unavailable",
			fmt.Sprintf("Error: %v", err),
			[]string{fmt.Sprintf("Start the instance:\n  holt up --name %s", name)},
		)
	default:
		return printer.Error(
			"planning collaborators unavailable",
			fmt.Sprintf("Error: %v", err),
			[]string{"Check --redis-url and --name, or start an instance with 'holt up'"},
		)
	}
}

// printStage renders pipeline progress.
func printStage(stage pipeline.Stage, detail string) {
	switch stage {
	case pipeline.StageStart:
		printer.Banner("🎯 Starting Minecraft Skin Studio Project Planning...")
	case pipeline.StagePlan:
		printer.Step("Creating Project Plan...\n")
	case pipeline.StageAssignments:
		printer.Info("\n📋 Generating Agent Assignments...\n")
	case pipeline.StageMilestones:
		printer.Info("\n🏁 Creating Development Milestones...\n")
	case pipeline.StageTests:
		printer.Info("\n🧪 Defining Test Requirements...\n")
	case pipeline.StageReview:
		printer.Info("\n🔄 Running Integrated Planning & Review...\n")
	case pipeline.StageReportSaved:
		printer.Println()
		printer.Success("✅ Planning complete! Report saved to: %s\n", detail)
	case pipeline.StageSummarySaved:
		printer.Info("📄 Summary saved to: %s\n", detail)
	}
}
