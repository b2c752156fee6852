// Package service applies a single context operation: it opens the store at
// the requested directory, runs the operation, and saves when the operation
// mutates. The CLI and the MCP server both go through it.
package service

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/go-ports/dirctx/internal/config"
	"github.com/go-ports/dirctx/internal/operation"
	"github.com/go-ports/dirctx/internal/store"
)

// Service binds operations to one config file.
type Service struct {
	fs         afero.Fs
	configPath string
	strict     bool
}

// Option configures a Service.
type Option func(*Service)

// WithStrict opens stores in strict mode, so unreadable or corrupt config
// files fail the operation instead of reading as empty.
func WithStrict() Option {
	return func(s *Service) { s.strict = true }
}

// New returns a Service backed by configPath on fsys.
func New(fsys afero.Fs, configPath string, opts ...Option) (*Service, error) {
	if configPath == "" {
		return nil, fmt.Errorf("service.New: %w", config.ErrNoConfigPath)
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("service.New: config path: %w", err)
	}
	s := &Service{fs: fsys, configPath: abs}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ConfigPath returns the absolute path of the backing file.
func (s *Service) ConfigPath() string { return s.configPath }

// Open loads the store anchored at workingDir.
func (s *Service) Open(workingDir string) (*store.Store, error) {
	var opts []store.Option
	if s.strict {
		opts = append(opts, store.WithStrict())
	}
	return store.Open(s.fs, s.configPath, workingDir, opts...)
}

// ---------------------------------------------------------------------------
// Apply
// ---------------------------------------------------------------------------

// Result is the outcome of Apply.
type Result struct {
	Op         operation.Operation
	ConfigPath string
	WorkingDir string            // empty for ShowConfigPath
	Values     map[string]string // PrintAll
	Value      *string           // PrintOne; nil when the key is not set
}

// Output returns what gets printed for the result: the visible mapping, the
// resolved value (nil when absent), or the config path. Mutations print nothing.
func (r *Result) Output() any {
	switch r.Op.Kind {
	case operation.PrintAll:
		return r.Values
	case operation.PrintOne:
		if r.Value == nil {
			return nil
		}
		return *r.Value
	case operation.ShowConfigPath:
		return r.ConfigPath
	}
	return nil
}

// Apply runs op from workingDir. Mutations are saved before returning and a
// failed save is returned as an error.
func (s *Service) Apply(op operation.Operation, workingDir string) (*Result, error) {
	res := &Result{Op: op, ConfigPath: s.configPath}
	if op.Kind == operation.ShowConfigPath {
		return res, nil
	}

	st, err := s.Open(workingDir)
	if err != nil {
		return nil, fmt.Errorf("service.Apply: %w", err)
	}
	res.WorkingDir = st.WorkingDir()

	switch op.Kind {
	case operation.PrintAll:
		res.Values = st.GetAll()
	case operation.PrintOne:
		if v, ok := st.Get(op.Key); ok {
			res.Value = &v
		}
	case operation.Add:
		st.Set(op.Key, op.Value)
	case operation.Remove:
		st.Remove(op.Key)
	default:
		return nil, fmt.Errorf("service.Apply: unsupported operation %s", op.Kind)
	}

	if op.Mutates() {
		if err := st.Save(); err != nil {
			return nil, fmt.Errorf("service.Apply: %w", err)
		}
	}

	slog.Debug("applied operation", "op", op.String(), "dir", res.WorkingDir, "config", s.configPath)
	return res, nil
}

// ---------------------------------------------------------------------------
// Init
// ---------------------------------------------------------------------------

// Init creates the config file, and its parent directory, holding no entries.
// An existing file is left alone unless force is set, in which case every
// entry in it is discarded. Reports whether the file was written.
func (s *Service) Init(force bool) (bool, error) {
	_, err := s.fs.Stat(s.configPath)
	switch {
	case err == nil && !force:
		return false, nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("service.Init: %w", err)
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.configPath), 0o755); err != nil {
		return false, fmt.Errorf("service.Init: create config dir: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.configPath, store.EmptyDocument, 0o600); err != nil {
		return false, fmt.Errorf("service.Init: %w", err)
	}
	return true, nil
}
