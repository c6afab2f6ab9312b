package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liamoiknine/wolram/internal/models"
)

func TestInitCommandWritesDefaultBattery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battery.yaml")

	var buf bytes.Buffer
	cmd := newInitCommand()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{path})
	require.NoError(t, cmd.Execute())

	assert.FileExists(t, path)
	assert.Contains(t, buf.String(), "Wrote")

	spec, err := models.LoadBatterySpec(path)
	require.NoError(t, err)
	assert.Equal(t, "standard", spec.Name)
	assert.Len(t, spec.Tasks, 6)
}

func TestInitCommandRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battery.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: existing\n"), 0o644))

	cmd := newInitCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommandCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "battery.yaml")

	cmd := newInitCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{path})
	require.NoError(t, cmd.Execute())

	assert.FileExists(t, path)
}
