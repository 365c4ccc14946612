// Package builder enumerates the batch images to build, synthesizes a
// Dockerfile for each and drives the external docker tool sequentially.
package builder

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/akarol/batch-image-builder/pkg/config"
	"github.com/akarol/batch-image-builder/pkg/dockerfile"
	"github.com/akarol/batch-image-builder/pkg/registry"
	"github.com/akarol/batch-image-builder/pkg/staging"
)

type Orchestrator struct {
	cfg      *config.Config
	flags    *config.Flags
	gen      *dockerfile.Generator
	resolver registry.Resolver
}

func New(cfg *config.Config, flags *config.Flags) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		flags:    flags,
		gen:      dockerfile.New(cfg),
		resolver: registry.Resolver{Repository: cfg.Registry.Repository},
	}
}

// ImageTags lists the images to build: the default image first, then every
// custom Dockerfile tag in sorted order.
func (o *Orchestrator) ImageTags() []string {
	return append([]string{registry.DefaultTag}, o.cfg.CustomTags()...)
}

// BuildAll stages the build context, writes one Dockerfile per image tag and
// builds the images strictly in sequence. The first failure aborts the
// remaining builds; images built before it stay in the local store.
func (o *Orchestrator) BuildAll() error {
	tmpDir, err := staging.Prepare(o.cfg)
	if err != nil {
		return err
	}

	labels := collectOCILabels(o.cfg)

	engine := &DockerBuilder{}
	engine.SetDryRun(!o.flags.Build || o.flags.DryRun)

	for _, tag := range o.ImageTags() {
		log.Info().Str("image", tag).Msg("Generating Dockerfile")

		var content string
		if tag == registry.DefaultTag {
			content, err = o.gen.Default()
		} else {
			content, err = o.gen.Custom(tag)
		}
		if err != nil {
			return err
		}

		path := filepath.Join(tmpDir, tag+".Dockerfile")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return err
		}

		engine.Build(path, o.resolver.ImageName(tag), labels, tmpDir, o.cfg.PackageDir())
	}

	return engine.Run()
}
