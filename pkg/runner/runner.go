package runner

import (
	"github.com/rs/zerolog/log"

	"github.com/akarol/batch-image-builder/pkg/cmd"
)

// Runner executes queued commands strictly in order, one at a time. Builds
// stay sequential so tool output interleaves deterministically and the shared
// build context is never written concurrently.
type Runner struct {
	tasks  []*cmd.Cmd
	dryRun bool
}

func New() Runner {
	return Runner{
		tasks:  []*cmd.Cmd{},
		dryRun: false,
	}
}

func (r Runner) Contains(task *cmd.Cmd) bool {
	for _, t := range r.tasks {
		if t.Equal(task) {
			return true
		}
	}
	return false
}

func (r Runner) AddTask(task ...*cmd.Cmd) Runner {
	// add only uniq calls
	for _, t := range task {
		if !r.Contains(t) {
			r.tasks = append(r.tasks, t)
		}
	}
	return r
}

func (r Runner) DryRun(flag bool) Runner {
	r.dryRun = flag
	return r
}

// Run executes every task in queue order. The first failure aborts the rest.
func (r Runner) Run() error {
	for _, c := range r.tasks {
		if r.dryRun {
			log.Info().Str("cmd", c.String()).Msg("DRY-RUN: Run")
		} else {
			if _, err := c.Run(); err != nil {
				return err
			}
		}
	}
	return nil
}
