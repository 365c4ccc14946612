// Package registry resolves fully qualified image names and publishes built
// tags to the configured repository.
package registry

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/akarol/batch-image-builder/pkg/cmd"
	"github.com/akarol/batch-image-builder/pkg/config"
)

const DefaultTag = "default"

// Resolver produces name:tag references for the configured repository.
type Resolver struct {
	Repository string
}

// ImageName returns "<repository>:<tag>". An empty tag resolves to the
// default image tag.
func (r Resolver) ImageName(tag string) string {
	if tag == "" {
		tag = DefaultTag
	}
	return r.Repository + ":" + tag
}

// Publisher logs in to the registry and pushes every tag of the repository.
type Publisher struct {
	cfg   *config.Config
	flags *config.Flags
}

func NewPublisher(cfg *config.Config, flags *config.Flags) *Publisher {
	return &Publisher{cfg: cfg, flags: flags}
}

// Publish runs the configured login command, then pushes all tags. The login
// output is always captured so credentials never reach inherited streams.
// A login failure aborts before any push is attempted.
func (p *Publisher) Publish() error {
	repository := p.cfg.Registry.Repository

	login := strings.Fields(p.cfg.Registry.Login)
	if len(login) == 0 {
		return fmt.Errorf("registry: no login command configured")
	}

	if p.flags.DryRun {
		// don't log the login args, they carry credentials
		log.Info().Str("cmd", login[0]+" ...").Msg("DRY-RUN: Login")
		log.Info().Str("cmd", "docker push "+repository+" --all-tags").Msg("DRY-RUN: Push")
		return nil
	}

	auth := cmd.New(login[0]).Arg(login[1:]...).
		PreInfo("Logging in to " + repository)
	if _, err := auth.Run(); err != nil {
		return err
	}

	pusher := cmd.New("docker").Arg("push").
		Arg(repository).
		Arg("--all-tags").
		SetVerbose(true).
		PreInfo("Pushing all tags of " + repository)
	_, err := pusher.Run()
	return err
}
