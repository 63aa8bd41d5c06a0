package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces every environment variable.
const EnvPrefix = "TASKLIST"

// envKeys maps environment variable suffixes to config paths.
var envKeys = map[string]string{
	"BACKEND":                  "backend",
	"LIST":                     "list",
	"MALFORMED":                "malformed",
	"LOG_LEVEL":                "log_level",
	"FILE_DIR":                 "file.dir",
	"REDIS_ADDR":               "redis.addr",
	"REDIS_PASSWORD":           "redis.password",
	"REDIS_DB":                 "redis.db",
	"REDIS_PREFIX":             "redis.prefix",
	"SQLITE_PATH":              "sqlite.path",
	"ENCRYPTION_KEY":           "encryption.key",
	"ENCRYPTION_PREVIOUS_KEYS": "encryption.previous_keys",
	"SERVER_PORT":              "server.port",
}

type loader struct {
	file        string
	searchPaths []string
	envFile     string
	environ     func() []string
}

// Option configures Load.
type Option func(*loader)

// WithFile loads exactly this YAML file instead of the search paths.
// The file must exist.
func WithFile(path string) Option {
	return func(l *loader) {
		l.file = path
	}
}

// WithSearchPaths replaces the default search paths. Missing files are skipped and
// later paths override earlier ones.
func WithSearchPaths(paths ...string) Option {
	return func(l *loader) {
		l.searchPaths = paths
	}
}

// WithEnvFile sets the dotenv file (default ".env"). An empty path disables it.
func WithEnvFile(path string) Option {
	return func(l *loader) {
		l.envFile = path
	}
}

// WithEnviron replaces os.Environ as the source of environment variables.
func WithEnviron(environ func() []string) Option {
	return func(l *loader) {
		l.environ = environ
	}
}

// SearchPaths returns the default config locations: the global file in the home
// directory, then the project file in the working directory.
func SearchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, DefaultDir, "config.yaml"))
	}
	return append(paths, filepath.Join(DefaultDir, "config.yaml"))
}

// Load resolves the configuration. Precedence, lowest first: defaults, YAML files,
// the .env file, the process environment.
func Load(opts ...Option) (*Config, error) {
	l := &loader{
		searchPaths: SearchPaths(),
		envFile:     ".env",
		environ:     os.Environ,
	}
	for _, opt := range opts {
		opt(l)
	}

	cfg := Default()

	if l.file != "" {
		if err := mergeFile(cfg, l.file, true); err != nil {
			return nil, err
		}
	} else {
		for _, p := range l.searchPaths {
			if err := mergeFile(cfg, p, false); err != nil {
				return nil, err
			}
		}
	}

	env, err := l.readEnv()
	if err != nil {
		return nil, err
	}
	if err := mergeEnv(cfg, env); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func mergeFile(cfg *Config, path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// readEnv merges the dotenv file under the process environment.
func (l *loader) readEnv() (map[string]string, error) {
	env := map[string]string{}
	if l.envFile != "" {
		values, err := godotenv.Read(l.envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", l.envFile, err)
		}
		for k, v := range values {
			env[k] = v
		}
	}
	for _, kv := range l.environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env, nil
}

// mergeEnv decodes TASKLIST_* variables over cfg. Fields without a variable keep
// their value.
func mergeEnv(cfg *Config, env map[string]string) error {
	tree := map[string]any{}
	for suffix, path := range envKeys {
		v, ok := env[EnvPrefix+"_"+suffix]
		if !ok {
			continue
		}
		setPath(tree, strings.Split(path, "."), v)
	}
	if len(tree) == 0 {
		return nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return fmt.Errorf("failed to build env decoder: %w", err)
	}
	if err := dec.Decode(tree); err != nil {
		return fmt.Errorf("failed to decode %s_* environment: %w", EnvPrefix, err)
	}
	return nil
}

func setPath(tree map[string]any, path []string, value string) {
	for _, p := range path[:len(path)-1] {
		next, ok := tree[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			tree[p] = next
		}
		tree = next
	}
	tree[path[len(path)-1]] = value
}
