package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Config is the project description consumed by the builder. It mirrors the
// relevant subset of a serverless service definition: the service name, the
// provider runtime, the function registry and the batch image settings.
type Config struct {
	Service   string              `yaml:"service"`
	Provider  Provider            `yaml:"provider"`
	Registry  Registry            `yaml:"registry"`
	Batch     Batch               `yaml:"batch"`
	Functions map[string]Function `yaml:"functions"`

	// ServicePath is the directory holding the config file. All relative
	// paths (custom Dockerfile templates, package dir) resolve against it.
	ServicePath string `yaml:"-"`
}

type Provider struct {
	Runtime string `yaml:"runtime"`
}

type Registry struct {
	Repository string `yaml:"repository"`
	Login      string `yaml:"login"`
}

type Batch struct {
	BaseImage     string            `yaml:"baseImage"`
	ExtraCommands []string          `yaml:"extraCommands"`
	Dockerfiles   map[string]string `yaml:"dockerfiles"`
}

type Function struct {
	Name    string `yaml:"-"`
	Handler string `yaml:"handler"`
	Batch   bool   `yaml:"batch"`
}

func Load(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		log.Error().Err(err).Msg("Error loading config")
		return nil, err
	}
	defer file.Close()

	var cfg Config
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		log.Error().Err(err).Msg("Decoding YAML " + filename + " failed! Check syntax and try again")
		return nil, err
	}

	abs, err := filepath.Abs(filename)
	if err != nil {
		return nil, err
	}
	cfg.ServicePath = filepath.Dir(abs)

	// map keys are the function names
	for name, fn := range cfg.Functions {
		fn.Name = name
		cfg.Functions[name] = fn
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Service == "" {
		return fmt.Errorf("config: 'service' is required")
	}
	if c.Registry.Repository == "" {
		return fmt.Errorf("config: 'registry.repository' is required")
	}
	if c.Batch.BaseImage == "" {
		return fmt.Errorf("config: 'batch.baseImage' is required")
	}
	if c.Provider.Runtime == "" {
		return fmt.Errorf("config: 'provider.runtime' is required")
	}
	return nil
}

// PackageDir is where the packaging step leaves function archives and where
// the build context is staged.
func (c *Config) PackageDir() string {
	return filepath.Join(c.ServicePath, ".serverless")
}

// BatchFunctions returns the functions marked for batch image inclusion,
// sorted by name so generated output is stable across runs.
func (c *Config) BatchFunctions() []Function {
	var functions []Function
	for _, fn := range c.Functions {
		if fn.Batch {
			functions = append(functions, fn)
		}
	}
	sort.Slice(functions, func(i, j int) bool {
		return functions[i].Name < functions[j].Name
	})
	return functions
}

// CustomTags returns the custom Dockerfile tags in sorted order.
func (c *Config) CustomTags() []string {
	tags := make([]string, 0, len(c.Batch.Dockerfiles))
	for tag := range c.Batch.Dockerfiles {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// ArtifactName derives the packaged archive name from the function name.
// Function names follow the service-stage-function convention enforced by the
// naming layer upstream, so the last dash-delimited segment is the bare
// function name. If that convention changes, artifact lookup breaks with it.
func (f Function) ArtifactName() string {
	segments := strings.Split(f.Name, "-")
	return segments[len(segments)-1] + ".zip"
}

// HandlerModule returns the module path part of a "module.exportName"
// handler reference.
func (f Function) HandlerModule() string {
	if i := strings.LastIndex(f.Handler, "."); i >= 0 {
		return f.Handler[:i]
	}
	return f.Handler
}

// HandlerExport returns the exported function name part of the handler
// reference.
func (f Function) HandlerExport() string {
	if i := strings.LastIndex(f.Handler, "."); i >= 0 {
		return f.Handler[i+1:]
	}
	return f.Handler
}
