// Package config loads settings from .jast.yaml and JAST_* environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/Alixocracy/jast/internal/mailer"
	"github.com/Alixocracy/jast/internal/store"
	"github.com/Alixocracy/jast/internal/timer"
)

type Config struct {
	// Path is the SQLite file or the diskv directory.
	Path     string
	Backend  string
	LogLevel string
	LogFile  string

	TimerMinutes int
	Mail         mailer.Config
	ServeAddr    string

	// File is the config file that was read, if any.
	File string
}

// Load reads configuration. dir, when set, is searched for .jast.yaml before
// $JAST_CONFIG_PATH and the working directory. A missing file is not an error.
func Load(dir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("path", "")
	v.SetDefault("backend", "sqlite")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("timer.default_minutes", timer.DefaultMinutes)
	v.SetDefault("mail.mode", mailer.ModeResend)
	v.SetDefault("mail.endpoint", "")
	v.SetDefault("mail.resend_api_key", "")
	v.SetDefault("mail.from", mailer.DefaultFrom)
	v.SetDefault("mail.timeout", mailer.DefaultTimeout.String())
	v.SetDefault("serve.addr", "127.0.0.1:8787")

	v.SetConfigName(".jast") // .yaml is implicit
	v.SetEnvPrefix("JAST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("mail.resend_api_key", "RESEND_API_KEY")

	if dir != "" {
		v.AddConfigPath(dir)
	}
	if override := os.Getenv("JAST_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		Backend:      strings.ToLower(v.GetString("backend")),
		LogLevel:     v.GetString("log_level"),
		TimerMinutes: v.GetInt("timer.default_minutes"),
		Mail: mailer.Config{
			Mode:     v.GetString("mail.mode"),
			Endpoint: v.GetString("mail.endpoint"),
			APIKey:   v.GetString("mail.resend_api_key"),
			From:     v.GetString("mail.from"),
			Timeout:  v.GetDuration("mail.timeout"),
		},
		ServeAddr: v.GetString("serve.addr"),
		File:      v.ConfigFileUsed(),
	}
	if cfg.TimerMinutes < 1 {
		cfg.TimerMinutes = timer.DefaultMinutes
	}
	if cfg.Mail.Timeout <= 0 {
		cfg.Mail.Timeout = mailer.DefaultTimeout
	}
	switch cfg.Backend {
	case "sqlite", "diskv":
	default:
		return nil, fmt.Errorf("backend %q: want sqlite or diskv", cfg.Backend)
	}

	var err error
	switch p := v.GetString("path"); {
	case p == "" && cfg.Backend == "sqlite":
		cfg.Path, err = store.DefaultDBPath()
	default:
		cfg.Path, err = resolve(p, "kv")
	}
	if err != nil {
		return nil, fmt.Errorf("resolve store path: %w", err)
	}
	if cfg.LogFile, err = resolve(v.GetString("log_file"), "jast.log"); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolve expands ~ in p, or places name in the jast config directory when
// p is empty.
func resolve(p, name string) (string, error) {
	if p == "" {
		dir, err := Dir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, name), nil
	}
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", p, err)
	}
	return expanded, nil
}

// Dir is the per-user directory for jast data and logs.
func Dir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(cfg, "jast"), nil
}
