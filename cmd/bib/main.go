package main

import (
	"fmt"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/akarol/batch-image-builder/pkg/builder"
	"github.com/akarol/batch-image-builder/pkg/config"
	"github.com/akarol/batch-image-builder/pkg/registry"
	"github.com/akarol/batch-image-builder/pkg/util"
)

var BuildVersion string // Will be set dynamically at build time.
var appName string = "bib"
var flags config.Flags

var cmd = &cobra.Command{
	Use:   appName,
	Short: "Builds and pushes container images for serverless batch functions.",
	Long: `A CLI tool that generates Dockerfiles for a service's batch functions,
builds the images and pushes all tags to the configured registry.

One default image is always produced; additional images come from custom
Dockerfile templates declared in the configuration.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config file requirement if --version is provided
		if flags.PrintVersion {
			return nil
		}
		if flags.BuildFile == "" {
			return fmt.Errorf("the --config flag is required")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		initLogger(flags.Verbose)

		// If version flag is provided, show the version and exit.
		if flags.PrintVersion {
			fmt.Printf("%s version: %s\n", appName, BuildVersion)
			return
		}

		if flags.Push {
			log.Warn().Msg("Images will be pushed after building.")
		}

		log.Info().Str("config", flags.BuildFile).Msg("Loading")
		cfg, err := config.Load(flags.BuildFile)
		util.FailOnError(err, "Loading configuration failed")
		util.FailOnError(cfg.Validate(), "Invalid configuration")
		log.Debug().Interface("config", cfg).Msg("Loaded")

		orchestrator := builder.New(cfg, &flags)
		util.FailOnError(orchestrator.BuildAll(), "Building images failed, check error above. Exiting.")

		if flags.Push {
			publisher := registry.NewPublisher(cfg, &flags)
			util.FailOnError(publisher.Publish(), "Pushing images failed, check error above. Exiting.")
		}
	},
}

func init() {
	if BuildVersion == "" {
		BuildVersion = "development" // Fallback if not set during build
	}

	cmd.PersistentFlags().StringVarP(&flags.BuildFile, "config", "c", "", "Path to the configuration file (required)")

	cmd.Flags().BoolVarP(&flags.Build, "build", "b", false, "Build Docker images after generating Dockerfiles")
	cmd.Flags().BoolVarP(&flags.Push, "push", "p", false, "Push all image tags after building")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Print actions but don't execute them")
	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Increase verbosity of output")
	cmd.Flags().BoolVarP(&flags.PrintVersion, "version", "V", false, "Display the application version and exit")
}

func main() {
	if err := cmd.Execute(); err != nil {
		util.FailOnError(err)
	}
}

func initLogger(verbose bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        colorable.NewColorableStdout(),
		TimeFormat: time.Kitchen,
	})
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
