package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// initConfig sets up the config loader with defaults, env binding, and an
// optional config file.
func initConfig(configPath string) (*viper.Viper, error) {
	v := viper.New()

	setDefaults(v)
	bindEnv(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return v, nil
}

// setDefaults configures all default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("routeros.port", 8728)
	v.SetDefault("routeros.idle_timeout", "10s")

	v.SetDefault("webhook.host", "0.0.0.0")
	v.SetDefault("webhook.port", 8888)

	v.SetDefault("domain.include", []string{})
	v.SetDefault("domain.exclude", []string{})
	v.SetDefault("domain.regex_include", "")
	v.SetDefault("domain.regex_exclude", "")

	v.SetDefault("logging.level", "INFO")
	v.SetDefault("logging.structured", false)
	v.SetDefault("logging.structured_format", "json")
}

// bindEnv wires each config key to the specific environment variable name
// the device dial parameters and the controller documentation already use,
// rather than a single uniform prefix.
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("routeros.host", "ROUTEROS_HOST")
	_ = v.BindEnv("routeros.username", "ROUTEROS_USERNAME")
	_ = v.BindEnv("routeros.password", "ROUTEROS_PASSWORD")
	_ = v.BindEnv("routeros.port", "ROUTEROS_PORT")
	_ = v.BindEnv("routeros.idle_timeout", "ROUTEROS_IDLE_TIMEOUT")

	_ = v.BindEnv("webhook.host", "WEBHOOK_HOST")
	_ = v.BindEnv("webhook.port", "WEBHOOK_PORT")

	_ = v.BindEnv("domain.include", "EXTERNAL_DNS_DOMAIN_FILTER")
	_ = v.BindEnv("domain.exclude", "EXTERNAL_DNS_EXCLUDE_DOMAINS")
	_ = v.BindEnv("domain.regex_include", "EXTERNAL_DNS_REGEX_DOMAIN_FILTER")
	_ = v.BindEnv("domain.regex_exclude", "EXTERNAL_DNS_REGEX_DOMAIN_EXCLUSION")

	_ = v.BindEnv("logging.level", "EXTERNAL_DNS_LOG_LEVEL")
}

// loadFromSource loads configuration from file and environment.
func loadFromSource(configPath string) (*Config, error) {
	v, err := initConfig(configPath)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}

	loadRouterOSConfig(v, cfg)
	loadWebhookConfig(v, cfg)
	loadDomainConfig(v, cfg)
	loadLoggingConfig(v, cfg)

	if err := normalizeConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadRouterOSConfig(v *viper.Viper, cfg *Config) {
	cfg.RouterOS.Host = v.GetString("routeros.host")
	cfg.RouterOS.Username = v.GetString("routeros.username")
	cfg.RouterOS.Password = v.GetString("routeros.password")
	cfg.RouterOS.Port = v.GetInt("routeros.port")
	cfg.RouterOS.IdleTimeout = v.GetDuration("routeros.idle_timeout")
}

func loadWebhookConfig(v *viper.Viper, cfg *Config) {
	cfg.Webhook.Host = v.GetString("webhook.host")
	cfg.Webhook.Port = v.GetInt("webhook.port")
}

func loadDomainConfig(v *viper.Viper, cfg *Config) {
	cfg.Domain.Include = getStringSliceOrSplit(v, "domain.include")
	cfg.Domain.Exclude = getStringSliceOrSplit(v, "domain.exclude")
	cfg.Domain.RegexInclude = v.GetString("domain.regex_include")
	cfg.Domain.RegexExclude = v.GetString("domain.regex_exclude")
}

func loadLoggingConfig(v *viper.Viper, cfg *Config) {
	cfg.Logging.Level = strings.ToUpper(v.GetString("logging.level"))
	cfg.Logging.Structured = v.GetBool("logging.structured")
	cfg.Logging.StructuredFormat = v.GetString("logging.structured_format")
}

// getStringSliceOrSplit handles both slice and comma-separated string values.
func getStringSliceOrSplit(v *viper.Viper, key string) []string {
	if s, ok := v.Get(key).(string); ok && s != "" {
		parts := strings.Split(s, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				result = append(result, p)
			}
		}
		return result
	}
	if slice := v.GetStringSlice(key); len(slice) > 0 {
		result := make([]string, 0, len(slice))
		for _, s := range slice {
			s = strings.TrimSpace(s)
			if s != "" {
				result = append(result, s)
			}
		}
		return result
	}
	return nil
}

// normalizeConfig validates and normalizes the configuration. The three
// device credentials are required and both ports must lie in 1..65535;
// everything else falls back to a default rather than failing, matching a
// webhook that should come up even with a loose domain filter.
func normalizeConfig(cfg *Config) error {
	if cfg.RouterOS.Host == "" {
		return errors.New("routeros.host is required (ROUTEROS_HOST)")
	}
	if cfg.RouterOS.Username == "" {
		return errors.New("routeros.username is required (ROUTEROS_USERNAME)")
	}
	if cfg.RouterOS.Password == "" {
		return errors.New("routeros.password is required (ROUTEROS_PASSWORD)")
	}
	if cfg.RouterOS.Port <= 0 || cfg.RouterOS.Port > 65535 {
		return errors.New("routeros.port must be 1..65535")
	}
	if cfg.RouterOS.IdleTimeout <= 0 {
		cfg.RouterOS.IdleTimeout = 10 * time.Second
	}

	if cfg.Webhook.Host == "" {
		cfg.Webhook.Host = "0.0.0.0"
	}
	if cfg.Webhook.Port <= 0 || cfg.Webhook.Port > 65535 {
		return errors.New("webhook.port must be 1..65535")
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	if cfg.Logging.StructuredFormat == "" {
		cfg.Logging.StructuredFormat = "json"
	}

	return nil
}
