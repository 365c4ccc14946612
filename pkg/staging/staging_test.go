package staging_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarol/batch-image-builder/pkg/config"
	"github.com/akarol/batch-image-builder/pkg/staging"
)

func stagedConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Service:     "svc",
		ServicePath: t.TempDir(),
		Functions: map[string]config.Function{
			"svc-dev-worker": {Name: "svc-dev-worker", Batch: true},
		},
	}
}

func packageArtifact(t *testing.T, cfg *config.Config, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(cfg.PackageDir(), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.PackageDir(), name), []byte(content), 0o644))
}

func TestPrepare(t *testing.T) {
	cfg := stagedConfig(t)
	packageArtifact(t, cfg, "worker.zip", "zip-bytes")

	tmpDir, err := staging.Prepare(cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.PackageDir(), "tmp"), tmpDir)

	staged, err := os.ReadFile(filepath.Join(tmpDir, "worker.zip"))
	require.NoError(t, err)
	assert.Equal(t, "zip-bytes", string(staged))
}

func TestPrepareIsIdempotent(t *testing.T) {
	cfg := stagedConfig(t)
	packageArtifact(t, cfg, "worker.zip", "zip-bytes")

	first, err := staging.Prepare(cfg)
	require.NoError(t, err)

	// second run overwrites in place and must not fail
	second, err := staging.Prepare(cfg)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	staged, err := os.ReadFile(filepath.Join(second, "worker.zip"))
	require.NoError(t, err)
	assert.Equal(t, "zip-bytes", string(staged))
}

func TestPrepareMissingArtifact(t *testing.T) {
	cfg := stagedConfig(t)

	_, err := staging.Prepare(cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, staging.ErrArtifactMissing))
	assert.Contains(t, err.Error(), "worker.zip")
}

func TestPrepareEmptyFunctionSet(t *testing.T) {
	cfg := stagedConfig(t)
	cfg.Functions = nil

	tmpDir, err := staging.Prepare(cfg)
	require.NoError(t, err)
	assert.DirExists(t, tmpDir)
}
