package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dyluth/planrun/internal/printer"
	"github.com/dyluth/planrun/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testInstance = "default-1"

func execute(t *testing.T, args ...string) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	root := NewRootCommand()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func planningAgents() map[string]testutil.Handler {
	return map[string]testutil.Handler{
		"PlanRequest": testutil.Reply(map[string]any{
			"work_breakdown": []any{"skin editor", "3d preview"},
			"phases": []any{
				map[string]any{"name": "Foundation", "duration": "2 weeks", "deliverables": []any{"Editor shell"}},
			},
		}),
		"AssignWorkRequest": testutil.Reply([]any{
			map[string]any{"assigned_to": "Sasha", "task_description": "Build the pixel editor", "priority": "high"},
		}),
		"MilestonesRequest":       testutil.Reply([]any{map[string]any{"name": "Alpha", "target_date": "2026-11-30"}}),
		"TestRequirementsRequest": testutil.Reply(map[string]any{"unit": []any{"editor tools"}}),
		"PlanReviewRequest":       testutil.Reply(map[string]any{"recommendations": []any{"Ship offline first"}}),
	}
}

func TestRootCommand_RunsPipelineAgainstBlackboard(t *testing.T) {
	mr := testutil.NewMiniRedis(t)
	responder := testutil.StartResponder(t, mr, testInstance, planningAgents())
	dir := t.TempDir()

	err := execute(t, "--redis-url", "redis://"+mr.Addr(), "--name", testInstance, "--output-dir", dir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"PlanRequest", "AssignWorkRequest", "MilestonesRequest", "TestRequirementsRequest", "PlanReviewRequest",
	}, responder.RequestTypes())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var reportPath, summaryPath string
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), "_summary.md"):
			summaryPath = filepath.Join(dir, e.Name())
		case strings.HasSuffix(e.Name(), ".json"):
			reportPath = filepath.Join(dir, e.Name())
		}
	}
	require.NotEmpty(t, reportPath)
	require.NotEmpty(t, summaryPath)
	assert.True(t, strings.HasPrefix(filepath.Base(reportPath), "minecraft_skin_studio_plan_"))

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []any{"Ship offline first"}, decoded["key_recommendations"])

	summary, err := os.ReadFile(summaryPath)
	require.NoError(t, err)
	assert.Contains(t, string(summary), "### Foundation\n**Duration**: 2 weeks\n**Key Deliverables**:\n- Editor shell\n")
	assert.Contains(t, string(summary), "### Sasha\n**Task**: Build the pixel editor\n**Priority**: high\n")
}

func TestRootCommand_ConfigFile(t *testing.T) {
	mr := testutil.NewMiniRedis(t)
	testutil.StartResponder(t, mr, "planning", planningAgents())
	out := filepath.Join(t.TempDir(), "plans")

	cfgPath := filepath.Join(t.TempDir(), "planrun.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`version: "1.0"
output_dir: `+out+`
project_path: /src/skin-studio
blackboard:
  redis_url: redis://`+mr.Addr()+`
  instance: planning
  call_timeout: 20s
`), 0644))

	require.NoError(t, execute(t, "--config", cfgPath))

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "output_dir is created on demand")
}

func TestRootCommand_CollaboratorFailureWritesNothing(t *testing.T) {
	mr := testutil.NewMiniRedis(t)
	agents := planningAgents()
	agents["MilestonesRequest"] = testutil.Fail("milestone agent crashed")
	testutil.StartResponder(t, mr, testInstance, agents)
	dir := t.TempDir()

	err := execute(t, "--redis-url", "redis://"+mr.Addr(), "--output-dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create milestones")
	assert.Contains(t, err.Error(), "milestone agent crashed")
	assert.False(t, printer.IsReported(err), "run failures are printed by main")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRootCommand_ResolutionFailures(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "invalid redis url", args: []string{"--redis-url", "http://localhost:6379"}},
		{name: "invalid instance name", args: []string{"--redis-url", "redis://localhost:6379", "--name", "Bad_Name"}},
		{name: "redis unreachable", args: []string{"--redis-url", "redis://127.0.0.1:1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			err := execute(t, append(tt.args, "--output-dir", dir)...)
			require.Error(t, err)
			assert.True(t, printer.IsReported(err), "resolution failures carry a hint")

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestRootCommand_DockerUnavailableWithoutRedisURL(t *testing.T) {
	t.Setenv("DOCKER_HOST", "unix://"+filepath.Join(t.TempDir(), "docker.sock"))
	dir := t.TempDir()

	err := execute(t, "--output-dir", dir)
	require.Error(t, err)
	assert.True(t, printer.IsReported(err))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRootCommand_ExplicitConfigMustExist(t *testing.T) {
	err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	assert.True(t, printer.IsReported(err))
}

func TestRootCommand_RejectsUnknownFlags(t *testing.T) {
	err := execute(t, "--goal", "ship it")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown flag")
}

func TestRootCommand_RejectsArgs(t *testing.T) {
	err := execute(t, "minecraft")
	assert.Error(t, err)
}

func TestSetVersionInfo(t *testing.T) {
	defer SetVersionInfo("dev", "none", "unknown")

	SetVersionInfo("1.2.3", "abc123", "2026-10-18")
	root := NewRootCommand()
	assert.Equal(t, "1.2.3 (commit: abc123, built: 2026-10-18)", root.Version)
}
