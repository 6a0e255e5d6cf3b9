package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dyluth/planrun/internal/config"
	"github.com/dyluth/planrun/internal/printer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunInit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.DefaultPath)

	require.NoError(t, runInit(dir, false))
	_, err := config.Load(path)
	require.NoError(t, err)

	err = runInit(dir, false)
	require.Error(t, err)
	assert.True(t, printer.IsReported(err))

	require.NoError(t, os.WriteFile(path, []byte("version: \"1.0\"\noutput_dir: edited\n"), 0644))
	require.NoError(t, runInit(dir, true))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.OutputDir)
}

func TestInitCommand_Registered(t *testing.T) {
	cmd, _, err := NewRootCommand().Find([]string{"init"})
	require.NoError(t, err)
	assert.Equal(t, "init", cmd.Name())
	assert.NotNil(t, cmd.Flags().Lookup("force"))
}
