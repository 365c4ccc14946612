package cmd_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarol/batch-image-builder/pkg/cmd"
)

func TestString(t *testing.T) {
	// Arrange
	input := []string{
		cmd.New("docker").Arg("build").Arg("-t", "img:default").String(),
		cmd.New("cmd-only").String(),
		cmd.New("").String(),
	}
	expected := []string{
		"docker build -t img:default",
		"cmd-only",
		"",
	}

	// Assert
	for i, input := range input {
		assert.Equal(t, expected[i], input)
	}
}

func TestRunCapturesOutput(t *testing.T) {
	out, err := cmd.New("echo").Arg("hello", "world").Run()

	require.NoError(t, err)
	assert.Equal(t, "hello world\n", out)
}

func TestRunToolNotFound(t *testing.T) {
	_, err := cmd.New("definitely-not-a-real-tool-0xdeadbeef").Run()

	require.Error(t, err)
	assert.True(t, errors.Is(err, cmd.ErrToolNotFound))
}

func TestRunToolFailedCarriesStderr(t *testing.T) {
	out, err := cmd.New("sh").Arg("-c", "echo oops >&2; exit 3").Run()

	require.Error(t, err)
	assert.True(t, errors.Is(err, cmd.ErrToolFailed))
	assert.Contains(t, out, "oops")
	assert.Contains(t, err.Error(), "oops")
	assert.Contains(t, err.Error(), "exit code 3")
}

func TestRunEmptyCommand(t *testing.T) {
	_, err := cmd.New("").Run()

	require.Error(t, err)
	assert.True(t, errors.Is(err, cmd.ErrToolLaunch))
}
