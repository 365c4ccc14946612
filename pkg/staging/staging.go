// Package staging assembles the build context directory: every batch
// function's packaged archive is copied next to the generated Dockerfiles so
// their relative COPY instructions resolve.
package staging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/akarol/batch-image-builder/pkg/config"
)

var (
	// ErrArtifactMissing means a batch function's packaged archive was not
	// found in the package directory. The packaging step has to run first.
	ErrArtifactMissing = errors.New("function artifact missing")
)

// Prepare creates the package dir and its tmp build-context subdirectory if
// absent, then copies every batch function archive into the build context.
// Repeat invocations overwrite existing files and never fail on directories
// that already exist. Nothing is cleaned up afterwards, that is the caller's
// call.
func Prepare(cfg *config.Config) (string, error) {
	packageDir := cfg.PackageDir()
	tmpDir := filepath.Join(packageDir, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return "", err
	}

	for _, fn := range cfg.BatchFunctions() {
		artifact := fn.ArtifactName()
		src := filepath.Join(packageDir, artifact)
		dst := filepath.Join(tmpDir, artifact)

		log.Debug().Str("artifact", artifact).Str("function", fn.Name).Msg("Staging")
		if err := copyFile(src, dst); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("%w: %s (package %s before building)", ErrArtifactMissing, src, fn.Name)
			}
			return "", err
		}
	}

	return tmpDir, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
