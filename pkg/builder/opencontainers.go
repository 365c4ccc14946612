package builder

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	git "github.com/go-git/go-git/v5"

	"github.com/akarol/batch-image-builder/pkg/config"
)

// Follow:
// https://github.com/opencontainers/image-spec/blob/main/annotations.md
func collectOCILabels(cfg *config.Config) map[string]string {
	labels := map[string]string{
		"org.opencontainers.image.title":   cfg.Service,
		"org.opencontainers.image.created": time.Now().Format(time.RFC3339),
	}

	originURL, hexsha, branch, err := readGitRepo(cfg.ServicePath)
	if err != nil {
		log.Warn().Err(err).Msg("Not being able to read git repo metadata, or not a git repo. Skipping.")
	} else {
		if originURL != "" {
			labels["org.opencontainers.image.source"] = originURL
		}
		if hexsha != "" {
			labels["org.opencontainers.image.revision"] = hexsha
		}
		if branch != "" {
			labels["org.opencontainers.image.branch"] = branch
		}
	}

	log.Debug().Interface("labels", labels).Msg("Adding OCI")
	return labels
}

func readGitRepo(path string) (originURL string, commitHex string, branchName string, err error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		if err == git.ErrRepositoryNotExists {
			// Return nothing if it's not a Git repository
			return "", "", "", nil
		}
		return "", "", "", fmt.Errorf("failed to open repository: %w", err)
	}

	remotes, err := repo.Remotes()
	if err != nil {
		return "", "", "", fmt.Errorf("failed to list remotes: %w", err)
	}
	for _, remote := range remotes {
		if remote.Config().Name == "origin" {
			if len(remote.Config().URLs) > 0 {
				originURL = remote.Config().URLs[0]
			}
			break
		}
	}

	head, err := repo.Head()
	if err != nil {
		return originURL, "", "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	commitHex = head.Hash().String()

	if head.Name().IsBranch() {
		branchName = head.Name().Short()
	}
	// detached HEAD leaves branchName empty

	return originURL, commitHex, branchName, nil
}
