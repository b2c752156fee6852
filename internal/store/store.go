// Package store implements the directory-scoped key-value store.
//
// Values are attached to directories. A lookup starts at the store's working
// directory and walks up through its ancestors to the filesystem root; the
// nearest directory that defines a key wins.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// ErrCorrupt is returned by Open in strict mode when the config file exists
// but does not hold a valid document.
var ErrCorrupt = errors.New("config file is not valid")

// Option configures Open.
type Option func(*options)

type options struct {
	strict bool
}

// WithStrict makes Open report unreadable or unparsable config files instead
// of falling back to an empty store. A missing file is never an error.
func WithStrict() Option {
	return func(o *options) { o.strict = true }
}

// Store holds every directory's key-value mapping along with the file it was
// loaded from and the directory lookups are anchored at.
type Store struct {
	fs         afero.Fs
	data       map[string]map[string]string
	configPath string
	workingDir string
}

// Open loads the store backed by configPath, anchored at workingDir.
// Both paths are made absolute here and never re-normalized afterwards.
//
// A missing config file yields an empty store. Unless WithStrict is given, a
// file that cannot be read or parsed is logged and also yields an empty store.
func Open(fsys afero.Fs, configPath, workingDir string, opts ...Option) (*Store, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cfgPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("store.Open: config path: %w", err)
	}
	wd, err := filepath.Abs(workingDir)
	if err != nil {
		return nil, fmt.Errorf("store.Open: working directory: %w", err)
	}

	s := &Store{
		fs:         fsys,
		data:       make(map[string]map[string]string),
		configPath: cfgPath,
		workingDir: wd,
	}
	if err := s.load(o.strict); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load(strict bool) error {
	raw, err := afero.ReadFile(s.fs, s.configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		if strict {
			return fmt.Errorf("store.Open: read %s: %w", s.configPath, err)
		}
		slog.Warn("ignoring unreadable config file", "path", s.configPath, "err", err)
		return nil
	}

	data, err := decode(raw)
	if err != nil {
		if strict {
			return fmt.Errorf("store.Open: %s: %w", s.configPath, err)
		}
		slog.Warn("ignoring unparsable config file", "path", s.configPath, "err", err)
		return nil
	}
	s.data = data
	return nil
}

// ConfigPath returns the absolute path of the backing file.
func (s *Store) ConfigPath() string { return s.configPath }

// WorkingDir returns the absolute directory lookups start from.
func (s *Store) WorkingDir() string { return s.workingDir }

// Paths returns the directories holding at least one key, sorted.
func (s *Store) Paths() []string {
	paths := make([]string, 0, len(s.data))
	for p, m := range s.data {
		if len(m) > 0 {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}

// ---------------------------------------------------------------------------
// Lookup
// ---------------------------------------------------------------------------

// Get returns the value of key defined nearest to the working directory.
func (s *Store) Get(key string) (string, bool) {
	dir := s.workingDir
	for {
		if v, ok := s.data[dir][key]; ok {
			return v, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// GetAll returns every key visible from the working directory. Mappings are
// overlaid from the root down, so nearer directories shadow farther ones.
// The returned map is a copy.
func (s *Store) GetAll() map[string]string {
	result := make(map[string]string)
	chain := ancestors(s.workingDir)
	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range s.data[chain[i]] {
			result[k] = v
		}
	}
	return result
}

// ancestors lists dir and each of its parents, nearest first, ending at the root.
func ancestors(dir string) []string {
	chain := []string{dir}
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			return chain
		}
		chain = append(chain, parent)
		dir = parent
	}
}

// ---------------------------------------------------------------------------
// Mutation
// ---------------------------------------------------------------------------

// Set stores key=value on the working directory itself. Nothing is written
// to disk until Save.
func (s *Store) Set(key, value string) {
	m, ok := s.data[s.workingDir]
	if !ok {
		m = make(map[string]string)
		s.data[s.workingDir] = m
	}
	m[key] = value
}

// Remove deletes key from the working directory's own mapping. Values
// inherited from ancestors are untouched; removing an absent key is a no-op.
func (s *Store) Remove(key string) {
	m, ok := s.data[s.workingDir]
	if !ok {
		return
	}
	delete(m, key)
	if len(m) == 0 {
		delete(s.data, s.workingDir)
	}
}

// Save writes every directory's mapping to the config file, creating the
// file if needed. The parent directory must already exist.
func (s *Store) Save() error {
	b, err := encode(s.data)
	if err != nil {
		return fmt.Errorf("store.Save: encode: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.configPath, b, 0o600); err != nil {
		return fmt.Errorf("store.Save: %w", err)
	}
	return nil
}
