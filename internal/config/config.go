// Package config resolves where the context store lives and which directory
// lookups are anchored at.
//
// Resolution never touches the process environment directly: callers pass an
// Env, so the same rules can be exercised with a fixed snapshot in tests.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNoConfigPath means no flag or environment variable named a config file.
	ErrNoConfigPath = errors.New("unable to find config file")
	// ErrNoWorkingDir means no directory was given and the process one is unknown.
	ErrNoWorkingDir = errors.New("unable to get current directory")
)

// Environment variables consulted, in priority order.
const (
	EnvConfig        = "CONTEXT_CONFIG"
	EnvXDGConfigHome = "XDG_CONFIG_HOME"
	EnvHome          = "HOME"
)

// Sources reported alongside a resolved config path.
const (
	SourceFlag = "flag"
	SourceEnv  = "env"
	SourceXDG  = "xdg"
	SourceHome = "home"
)

const (
	appDirName     = "context"
	configFileName = "context_config.json"
)

// ---------------------------------------------------------------------------
// Environment
// ---------------------------------------------------------------------------

// Env is a read-only view of environment variables.
type Env interface {
	LookupEnv(key string) (string, bool)
}

// OSEnv reads the real process environment.
type OSEnv struct{}

// LookupEnv implements Env.
func (OSEnv) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }

// MapEnv is a fixed environment snapshot.
type MapEnv map[string]string

// LookupEnv implements Env.
func (m MapEnv) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// getenv returns the value of key; empty and unset are treated alike.
func getenv(env Env, key string) string {
	v, _ := env.LookupEnv(key)
	return v
}

// ---------------------------------------------------------------------------
// Resolution
// ---------------------------------------------------------------------------

// Locations is the resolved pair every store operation needs.
type Locations struct {
	ConfigPath   string
	ConfigSource string // one of the Source constants
	WorkingDir   string
}

// Resolve resolves both the config path and the working directory.
func Resolve(configFlag, workingDirFlag string, env Env, getwd func() (string, error)) (Locations, error) {
	path, source, err := ResolveConfigPath(configFlag, env)
	if err != nil {
		return Locations{}, err
	}
	wd, err := ResolveWorkingDir(workingDirFlag, getwd)
	if err != nil {
		return Locations{}, err
	}
	return Locations{ConfigPath: path, ConfigSource: source, WorkingDir: wd}, nil
}

// ResolveConfigPath returns the config file path and the source it came from.
// Priority: explicit flag → CONTEXT_CONFIG → $XDG_CONFIG_HOME/context/context_config.json
// → $HOME/context/context_config.json.
func ResolveConfigPath(explicit string, env Env) (path, source string, err error) {
	if explicit != "" {
		return expandHome(explicit, env), SourceFlag, nil
	}
	if v := getenv(env, EnvConfig); v != "" {
		return expandHome(v, env), SourceEnv, nil
	}
	if v := getenv(env, EnvXDGConfigHome); v != "" {
		return filepath.Join(v, appDirName, configFileName), SourceXDG, nil
	}
	if v := getenv(env, EnvHome); v != "" {
		return filepath.Join(v, appDirName, configFileName), SourceHome, nil
	}
	return "", "", ErrNoConfigPath
}

// ResolveWorkingDir returns explicit when set, otherwise the result of getwd.
func ResolveWorkingDir(explicit string, getwd func() (string, error)) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	wd, err := getwd()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoWorkingDir, err)
	}
	return wd, nil
}

// expandHome replaces a leading ~ with $HOME. Paths are left as-is when HOME
// is unset.
func expandHome(path string, env Env) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home := getenv(env, EnvHome)
	if home == "" {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
