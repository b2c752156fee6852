// Package shared holds the context passed to all CLI commands.
package shared

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-ports/dirctx/internal/config"
	"github.com/go-ports/dirctx/internal/operation"
	"github.com/go-ports/dirctx/internal/service"
)

// Output formats accepted by --format.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidFormats lists the accepted --format values.
var ValidFormats = []string{FormatJSON, FormatYAML}

// Context carries global CLI state (flags set on the root command).
type Context struct {
	// ConfigPath overrides the config file.
	// When empty, resolution falls through to CONTEXT_CONFIG → $XDG_CONFIG_HOME → $HOME.
	ConfigPath string
	// WorkingDir overrides the directory lookups start from (default: process cwd).
	WorkingDir string
	Format     string
	Strict     bool
	Verbose    bool

	Fs    afero.Fs
	Env   config.Env
	Getwd func() (string, error)
}

// NewContext returns a Context bound to the real filesystem and environment.
func NewContext() *Context {
	return &Context{
		Format: FormatJSON,
		Fs:     afero.NewOsFs(),
		Env:    config.OSEnv{},
		Getwd:  os.Getwd,
	}
}

// Locations resolves the config path and working directory from flags and
// the environment.
func (c *Context) Locations() (config.Locations, error) {
	return config.Resolve(c.ConfigPath, c.WorkingDir, c.Env, c.Getwd)
}

// Service returns a service for configPath honoring --strict.
func (c *Context) Service(configPath string) (*service.Service, error) {
	var opts []service.Option
	if c.Strict {
		opts = append(opts, service.WithStrict())
	}
	return service.New(c.Fs, configPath, opts...)
}

// Run parses tokens into an operation, applies it, and prints the result.
func (c *Context) Run(cmd *cobra.Command, tokens []string) error {
	op, err := operation.Parse(tokens)
	if err != nil {
		return err
	}
	loc, err := c.Locations()
	if err != nil {
		return err
	}
	svc, err := c.Service(loc.ConfigPath)
	if err != nil {
		return err
	}
	res, err := svc.Apply(op, loc.WorkingDir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch op.Kind {
	case operation.ShowConfigPath:
		fmt.Fprintln(out, res.ConfigPath)
		return nil
	case operation.Add, operation.Remove:
		return nil
	}
	return Render(out, res.Output(), c.Format)
}

// Render writes v as indented JSON, or YAML when format is FormatYAML.
func Render(w io.Writer, v any, format string) error {
	if format == FormatYAML {
		b, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
