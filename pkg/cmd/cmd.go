package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
)

type Cmd struct {
	cmd      string
	args     []string
	dir      string
	verbose  bool
	preText  string
	postText string
	output   string
}

func New(c string) *Cmd {
	return &Cmd{
		cmd:      c,
		verbose:  false,
		preText:  "",
		postText: "",
	}
}

func (c *Cmd) Equal(cmd *Cmd) bool {
	return c.String() == cmd.String()
}

func (c *Cmd) Arg(args ...string) *Cmd {
	c.args = append(c.args, args...)
	return c
}

// Dir sets the working directory for the process.
func (c *Cmd) Dir(dir string) *Cmd {
	c.dir = dir
	return c
}

// SetVerbose switches the command to inherit the parent's stdout/stderr
// instead of capturing them, so tool output streams live.
func (c *Cmd) SetVerbose(verbosity bool) *Cmd {
	c.verbose = verbosity
	return c
}

func (c *Cmd) PreInfo(msg string) *Cmd {
	c.preText = msg
	return c
}

func (c *Cmd) PostInfo(msg string) *Cmd {
	c.postText = msg
	return c
}

// Run executes the command and blocks until it finishes. A single attempt,
// no retries, no timeout: a hung tool blocks the caller. Returns the
// captured output when not verbose.
func (c *Cmd) Run() (string, error) {
	if c.cmd == "" {
		return "", fmt.Errorf("%w: command not set", ErrToolLaunch)
	}
	if c.preText != "" {
		log.Info().Msg(c.preText)
	}

	cmd := exec.Command(c.cmd, c.args...)
	cmd.Dir = c.dir

	// pipe the commands output to the applications
	var b bytes.Buffer
	if c.verbose {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	} else {
		cmd.Stdout = &b
		cmd.Stderr = &b
	}

	log.Debug().Str("cmd", c.cmd).Interface("args", c.args).Str("dir", c.dir).Msg("Running")
	err := cmd.Run()
	c.output = b.String()

	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.Is(err, exec.ErrNotFound):
			log.Error().Str("cmd", c.cmd).Msg("Executable not found on PATH")
			return "", fmt.Errorf("%w: %s", ErrToolNotFound, c.cmd)
		case errors.As(err, &exitErr):
			log.Error().Err(err).Str("cmd", c.cmd).Interface("args", c.args).Msg("Could not run command")
			if c.output != "" {
				log.Error().Msg(c.output)
			}
			return c.output, fmt.Errorf("%w: %s (exit code %d): %s",
				ErrToolFailed, c.String(), exitErr.ExitCode(), strings.TrimSpace(c.output))
		default:
			return "", fmt.Errorf("%w: %s: %v", ErrToolLaunch, c.cmd, err)
		}
	}

	if c.postText != "" {
		log.Info().Msg(c.postText)
	}
	return c.output, nil
}

func (c *Cmd) String() string {
	return strings.Trim(fmt.Sprintf("%s %s", c.cmd, strings.Join(c.args, " ")), " ")
}
