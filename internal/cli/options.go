package cli

import (
	"fmt"

	"github.com/aretw0/tasklist/internal/config"
)

// Options are the persistent flags shared by every command.
// Empty values leave the resolved configuration untouched.
type Options struct {
	ConfigPath string
	List       string
	Backend    string
	Debug      bool
}

// Resolve loads the configuration and applies the flags on top.
func (o Options) Resolve() (*config.Config, error) {
	var opts []config.Option
	if o.ConfigPath != "" {
		opts = append(opts, config.WithFile(o.ConfigPath))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return nil, err
	}
	return o.apply(cfg)
}

func (o Options) apply(cfg *config.Config) (*config.Config, error) {
	if o.List != "" {
		cfg.List = o.List
	}
	if o.Backend != "" {
		cfg.Backend = o.Backend
	}
	if o.Debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}
