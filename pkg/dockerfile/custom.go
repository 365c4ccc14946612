package dockerfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// PlaceholderToken is the marker in a custom template that gets replaced by
// the generated per-function build steps.
const PlaceholderToken = "###PLACEHOLDER-FOR-GENERATED-CONTENT###"

// Custom loads the user-supplied template configured for tag and substitutes
// the placeholder token with generated copy/unzip/shim steps for every batch
// function, followed by one instruction staging everything under
// /var/task/<service>/.
//
// The token is replaced exactly once. A template without the token is
// returned unmodified: no functions end up in that image. That is a known
// hazard of the template contract, not detected ahead of time.
func (g *Generator) Custom(tag string) (string, error) {
	path := g.cfg.Batch.Dockerfiles[tag]
	if !filepath.IsAbs(path) {
		path = filepath.Join(g.cfg.ServicePath, path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Error().Err(err).Str("template", path).Msg("Failed to read")
		return "", fmt.Errorf("%w: %s: %v", ErrTemplateUnreadable, path, err)
	}

	var steps strings.Builder
	for _, fn := range g.cfg.BatchFunctions() {
		archive := fn.ArtifactName()
		target := strings.TrimSuffix(archive, ".zip")
		module := fn.HandlerModule()

		steps.WriteString("COPY " + archive + " /tmp\n")
		steps.WriteString("RUN cd /tmp && unzip -q -o " + archive + " -d " + target + " && rm " + archive + "\n")
		steps.WriteString("RUN echo '" + Shim(fn.HandlerExport()) + "' >> /tmp/" + target + "/" + module + ".js\n")
	}
	steps.WriteString("RUN cp -R /tmp /var/task/" + g.cfg.Service + "/\n")

	return strings.Replace(string(raw), PlaceholderToken, steps.String(), 1), nil
}
