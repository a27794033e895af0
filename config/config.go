// Package config loads process settings from flags, environment and the
// optional config file through viper.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aiweb/server"
	"github.com/aiweb/transport"

	"github.com/spf13/viper"
)

const EnvPrefix = "AIWEB"

type Conf struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	BlobDir string        `mapstructure:"blob_dir"`
	Secret  string        `mapstructure:"secret"`
	Server  server.Conf   `mapstructure:"server"`
}

// SetDefaults registers every known key so env lookups resolve during
// Unmarshal.
func SetDefaults(v *viper.Viper) {
	srv := server.ServerConfigs()

	v.SetDefault("base_url", "http://localhost:8000")
	v.SetDefault("timeout", transport.DefaultTimeout)
	v.SetDefault("blob_dir", "")
	v.SetDefault("secret", "")
	v.SetDefault("server.addr", srv.Addr)
	v.SetDefault("server.read_timeout", srv.TimeoutRead)
	v.SetDefault("server.write_timeout", srv.TimeoutWrite)
	v.SetDefault("server.idle_timeout", srv.TimeoutIdle)
	v.SetDefault("server.max_upload", srv.MaxUpload)
}

// BindEnv makes AIWEB_BASE_URL, AIWEB_SERVER_ADDR and friends visible.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

func Load(v *viper.Viper) (*Conf, error) {
	SetDefaults(v)

	var c Conf
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Conf) validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("base_url %q must be an absolute URL", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Server.MaxUpload <= 0 {
		return fmt.Errorf("server.max_upload must be positive, got %d", c.Server.MaxUpload)
	}
	return nil
}
