package runner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarol/batch-image-builder/pkg/cmd"
	"github.com/akarol/batch-image-builder/pkg/runner"
)

func TestAddTaskDeduplicates(t *testing.T) {
	r := runner.New()
	r = r.AddTask(cmd.New("echo").Arg("one"))
	r = r.AddTask(cmd.New("echo").Arg("one"))

	assert.True(t, r.Contains(cmd.New("echo").Arg("one")))
	assert.False(t, r.Contains(cmd.New("echo").Arg("two")))
}

func TestDryRunExecutesNothing(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "marker")

	r := runner.New().DryRun(true)
	r = r.AddTask(cmd.New("touch").Arg(marker))

	require.NoError(t, r.Run())
	assert.NoFileExists(t, marker)
}

func TestRunAbortsOnFirstFailure(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "marker")

	r := runner.New()
	r = r.AddTask(cmd.New("sh").Arg("-c", "exit 1"))
	r = r.AddTask(cmd.New("touch").Arg(marker))

	err := r.Run()
	require.Error(t, err)

	// the failing task aborts the queue, later tasks never run
	_, statErr := os.Stat(marker)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunSequential(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")

	r := runner.New()
	r = r.AddTask(cmd.New("sh").Arg("-c", "echo first >> "+out))
	r = r.AddTask(cmd.New("sh").Arg("-c", "echo second >> "+out))

	require.NoError(t, r.Run())

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(content))
}
