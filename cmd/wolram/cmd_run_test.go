package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liamoiknine/wolram/internal/models"
	"github.com/liamoiknine/wolram/internal/transcribe"
)

func TestLoadSpecDefault(t *testing.T) {
	spec, err := loadSpec(nil)
	require.NoError(t, err)
	assert.Equal(t, "standard", spec.Name)
	assert.Len(t, spec.Tasks, 6)
}

func TestLoadSpecFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battery.yaml")
	writeTestBattery(t, path, "name: short\ntasks:\n  - type: orientation\n")

	spec, err := loadSpec([]string{path})
	require.NoError(t, err)
	assert.Equal(t, "short", spec.Name)
	require.Len(t, spec.Tasks, 1)
	assert.Equal(t, models.TaskOrientation, spec.Tasks[0].Kind)
}

func TestLoadSpecMissingFile(t *testing.T) {
	_, err := loadSpec([]string{filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
}

func TestOpenStoreMemory(t *testing.T) {
	st, err := openStore("memory", "")
	require.NoError(t, err)
	require.NoError(t, st.Close())
}

func TestOpenStoreBadger(t *testing.T) {
	st, err := openStore("badger", t.TempDir())
	require.NoError(t, err)
	require.NoError(t, st.Close())
}

func TestOpenStoreUnknown(t *testing.T) {
	_, err := openStore("postgres", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store")
}

func TestNewTranscriber(t *testing.T) {
	svc, err := newTranscriber("none")
	require.NoError(t, err)
	assert.IsType(t, transcribe.NopService{}, svc)

	_, err = newTranscriber("openai")
	require.NoError(t, err)

	_, err = newTranscriber("wav2vec")
	require.Error(t, err)
}

func TestRunCommandRejectsUnknownStore(t *testing.T) {
	cmd := newRunCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--store", "postgres"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store")
}
