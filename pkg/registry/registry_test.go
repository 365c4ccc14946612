package registry_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarol/batch-image-builder/pkg/cmd"
	"github.com/akarol/batch-image-builder/pkg/config"
	"github.com/akarol/batch-image-builder/pkg/registry"
)

func TestImageName(t *testing.T) {
	resolver := registry.Resolver{Repository: "123.dkr.ecr.us-east-1.amazonaws.com/svc"}

	assert.Equal(t, "123.dkr.ecr.us-east-1.amazonaws.com/svc:default", resolver.ImageName(""))
	assert.Equal(t, "123.dkr.ecr.us-east-1.amazonaws.com/svc:default", resolver.ImageName("default"))
	assert.Equal(t, "123.dkr.ecr.us-east-1.amazonaws.com/svc:gpu", resolver.ImageName("gpu"))
}

func TestPublishRequiresLoginCommand(t *testing.T) {
	cfg := &config.Config{
		Registry: config.Registry{Repository: "reg/svc"},
	}

	err := registry.NewPublisher(cfg, &config.Flags{}).Publish()
	assert.Error(t, err)
}

func TestPublishDryRun(t *testing.T) {
	cfg := &config.Config{
		Registry: config.Registry{
			Repository: "reg/svc",
			Login:      "docker login -u user -p secret reg",
		},
	}

	// dry run must not spawn anything, so this passes without docker installed
	err := registry.NewPublisher(cfg, &config.Flags{DryRun: true}).Publish()
	assert.NoError(t, err)
}

func TestPublishAbortsOnLoginFailure(t *testing.T) {
	cfg := &config.Config{
		Registry: config.Registry{
			Repository: "reg/svc",
			Login:      "false",
		},
	}

	err := registry.NewPublisher(cfg, &config.Flags{}).Publish()
	require.Error(t, err)
	assert.True(t, errors.Is(err, cmd.ErrToolFailed))
}
