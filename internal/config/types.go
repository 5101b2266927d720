// Package config provides configuration loading and validation for the
// webhook using Viper.
//
// Configuration is loaded with the following priority (highest to lowest):
//  1. Command-line flags (not handled here, see cmd/routeros-dns-webhook/main.go)
//  2. Environment variables
//  3. YAML config file (if specified with --config)
//  4. Hardcoded defaults
//
// Unlike a single-prefix layout, environment variables here are bound
// individually to the names the device dial parameters and the external-dns
// controller documentation already use:
//
//	ROUTEROS_HOST, ROUTEROS_USERNAME, ROUTEROS_PASSWORD, ROUTEROS_PORT, ROUTEROS_IDLE_TIMEOUT
//	EXTERNAL_DNS_DOMAIN_FILTER, EXTERNAL_DNS_EXCLUDE_DOMAINS
//	EXTERNAL_DNS_REGEX_DOMAIN_FILTER, EXTERNAL_DNS_REGEX_DOMAIN_EXCLUSION
//	EXTERNAL_DNS_LOG_LEVEL
//	WEBHOOK_HOST, WEBHOOK_PORT
//
// All configuration is validated during Load() to ensure correctness early.
package config

import (
	"os"
	"strings"
	"time"
)

// RouterOSConfig holds the dial and authentication parameters used to reach
// the device.
type RouterOSConfig struct {
	Host        string        `yaml:"host"         mapstructure:"host"`
	Username    string        `yaml:"username"     mapstructure:"username"`
	Password    string        `yaml:"password"     mapstructure:"password"`
	Port        int           `yaml:"port"         mapstructure:"port"`
	IdleTimeout time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
}

// WebhookConfig holds the HTTP listen address the webhook server binds to.
type WebhookConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

// DomainConfig carries the domain-filter source strings the controller
// configured us with, handed back verbatim from Provider.GetDomainFilter.
type DomainConfig struct {
	Include      []string `yaml:"include"       mapstructure:"include"`
	Exclude      []string `yaml:"exclude"       mapstructure:"exclude"`
	RegexInclude string   `yaml:"regex_include" mapstructure:"regex_include"`
	RegexExclude string   `yaml:"regex_exclude" mapstructure:"regex_exclude"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level            string `yaml:"level"             mapstructure:"level"`
	Structured       bool   `yaml:"structured"        mapstructure:"structured"`
	StructuredFormat string `yaml:"structured_format" mapstructure:"structured_format"`
}

// Config is the root configuration structure.
type Config struct {
	RouterOS RouterOSConfig `yaml:"routeros" mapstructure:"routeros"`
	Webhook  WebhookConfig  `yaml:"webhook"  mapstructure:"webhook"`
	Domain   DomainConfig   `yaml:"domain"   mapstructure:"domain"`
	Logging  LoggingConfig  `yaml:"logging"  mapstructure:"logging"`
}

// ResolveConfigPath determines the config file path from flag or environment.
func ResolveConfigPath(flagValue string) string {
	if strings.TrimSpace(flagValue) != "" {
		return flagValue
	}
	if v := strings.TrimSpace(os.Getenv("WEBHOOK_CONFIG")); v != "" {
		return v
	}
	return ""
}

// Load loads configuration from an optional YAML file with environment
// variable overrides. This is the main entry point for loading
// configuration.
func Load(path string) (*Config, error) {
	return loadFromSource(path)
}
