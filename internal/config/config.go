// Package config provides layered configuration loading for the noteboard
// service: struct defaults overlaid by NOTEBOARD_-prefixed environment
// variables, decoded through koanf and validated with go-playground/validator.
package config

import (
	"fmt"
	"net"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/Tpepper2001/noteboard/internal/domain"
)

// envPrefix namespaces the service's environment variables.
const envPrefix = "NOTEBOARD_"

// Config holds the merged runtime configuration for the noteboard service.
// Precedence (lowest → highest): defaults → environment.
type Config struct {
	Addr            string             `koanf:"addr" validate:"required,ip_port"`
	Mode            string             `koanf:"mode" validate:"required,oneof=shared secure"`
	BoardPassword   string             `koanf:"board_password" validate:"required_if=Mode shared"`
	Backend         string             `koanf:"backend" validate:"required,oneof=sqlite file redis"`
	DataDir         string             `koanf:"data_dir" validate:"required,safe_dir"`
	RedisURL        string             `koanf:"redis_url" validate:"required_if=Backend redis"`
	MinTTL          time.Duration      `koanf:"min_ttl" validate:"required,gt=0"`
	MaxTTL          time.Duration      `koanf:"max_ttl" validate:"required,gtefield=MinTTL"`
	TTLOptions      []domain.TTLOption `koanf:"ttl_options" validate:"required,min=1"`
	MaxTextBytes    int                `koanf:"max_text_bytes" validate:"gt=0"`
	JanitorInterval time.Duration      `koanf:"janitor_interval" validate:"gt=0"`
}

// DefaultAppConfig is the out-of-the-box behavior: shared mode, the "1234"
// starter password (change it per deployment), and the 1m/5m/1h/24h TTL menu.
var DefaultAppConfig = Config{
	Addr:          ":8080",
	Mode:          "shared",
	BoardPassword: "1234",
	Backend:       "sqlite",
	DataDir:       "./data",
	MinTTL:        time.Minute,
	MaxTTL:        24 * time.Hour,
	TTLOptions: []domain.TTLOption{
		{Duration: time.Minute, Label: "1m"},
		{Duration: 5 * time.Minute, Label: "5m"},
		{Duration: time.Hour, Label: "1h"},
		{Duration: 24 * time.Hour, Label: "24h"},
	},
	MaxTextBytes:    4 << 10, // 4 KiB
	JanitorInterval: time.Second,
}

// Loader steps are package variables so tests can inject failures.
var (
	defaultLoader = func(k *koanf.Koanf) error {
		return k.Load(structs.Provider(DefaultAppConfig, "koanf"), nil)
	}
	envLoader = func(k *koanf.Koanf) error {
		return k.Load(env.Provider(".", env.Opt{
			Prefix: envPrefix,
			TransformFunc: func(key, value string) (string, any) {
				return strings.ToLower(strings.TrimPrefix(key, envPrefix)), value
			},
		}), nil)
	}
	registerValidators = func(v *validator.Validate) error {
		if err := v.RegisterValidation("ip_port", validIPPort); err != nil {
			return err
		}
		return v.RegisterValidation("safe_dir", validDataDir)
	}
)

// Load builds, decodes, and validates the effective configuration.
func Load() (*Config, error) {
	k := koanf.New(".")
	if err := defaultLoader(k); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
				StringToTTLOptions(),
			),
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	v := validator.New()
	if err := registerValidators(v); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}
	if err := v.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	for _, opt := range cfg.TTLOptions {
		if !domain.IsTTLValid(opt.Duration, cfg.MinTTL, cfg.MaxTTL) {
			return nil, fmt.Errorf("ttl option %q outside [%v, %v]", opt.Label, cfg.MinTTL, cfg.MaxTTL)
		}
	}
	return &cfg, nil
}

// SQLitePath returns the database file location inside the data directory.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "noteboard.db")
}

// validIPPort accepts "ip:port" (or ":port") with a numeric port in
// [1, 65535]. Hostnames are rejected on purpose: listen addresses bind to
// interfaces, not names.
func validIPPort(fl validator.FieldLevel) bool {
	host, port, err := net.SplitHostPort(fl.Field().String())
	if err != nil {
		return false
	}
	p, err := strconv.Atoi(port)
	if err != nil || p < 1 || p > 65535 {
		return false
	}
	if host == "" {
		return true
	}
	return net.ParseIP(host) != nil
}

// validDataDir rejects empty, root, bare-dot, and traversal-bearing paths.
func validDataDir(fl validator.FieldLevel) bool {
	p := fl.Field().String()
	if p == "" {
		return false
	}
	clean := filepath.Clean(p)
	if clean == "." || clean == "/" {
		return false
	}
	for _, seg := range strings.Split(filepath.ToSlash(clean), "/") {
		if seg == ".." {
			return false
		}
	}
	return true
}
