package builder

import (
	"sort"

	"github.com/akarol/batch-image-builder/pkg/cmd"
	"github.com/akarol/batch-image-builder/pkg/runner"
)

// DockerBuilder queues docker build invocations and runs them in order.
type DockerBuilder struct {
	buildTasks runner.Runner
}

func (b *DockerBuilder) SetDryRun(dryRun bool) {
	b.buildTasks = b.buildTasks.DryRun(dryRun)
}

// Build queues one image build. Output is inherited so build logs stream
// live; the working directory is the package dir, matching the relative
// paths the Dockerfile was generated with.
func (b *DockerBuilder) Build(dockerfile, imageName string, labels map[string]string, contextDir, workDir string) {
	build := cmd.New("docker").Arg("build").
		Arg("-f", dockerfile).
		Arg("-t", imageName).
		Arg(labelsToArgs(labels)...).
		Arg(contextDir).
		Dir(workDir).
		SetVerbose(true).
		PreInfo("Building " + imageName)
	b.buildTasks = b.buildTasks.AddTask(build)
}

func (b *DockerBuilder) Run() error {
	return b.buildTasks.Run()
}

func labelsToArgs(labels map[string]string) []string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := []string{}
	for _, k := range keys {
		args = append(args, "--label", k+"="+labels[k])
	}
	return args
}
