package config

import (
	"bytes"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

// Load reads the optional YAML config file, then applies environment
// overrides. An empty path means "no file": defaults plus overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		data = []byte(os.ExpandEnv(string(data)))

		v := viper.New()
		v.SetConfigType("yaml")
		if err := v.ReadConfig(bytes.NewBuffer(data)); err != nil {
			return nil, err
		}
		if err := v.Unmarshal(&cfg); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(&cfg)
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if hasAnyEnv(probeEnvKeys()) {
		var pc ProbesConfig
		if err := envconfig.Process("", &pc); err == nil {
			applyProbeOverrides(cfg, pc)
		}
	}
	if hasAnyEnv(hostingEnvKeys()) {
		var hc HostingConfig
		if err := envconfig.Process("", &hc); err == nil {
			applyHostingOverrides(cfg, hc)
		}
	}
	if hasAnyEnv(notifyEnvKeys()) {
		var nc NotifyConfig
		if err := envconfig.Process("", &nc); err == nil {
			applyNotifyOverrides(cfg, nc)
		}
	}
	if hasAnyEnv(logEnvKeys()) {
		var lc LogConfig
		if err := envconfig.Process("", &lc); err == nil {
			applyLogOverrides(cfg, lc)
		}
	}
}

func applyProbeOverrides(cfg *Config, pc ProbesConfig) {
	if envNonEmpty("PROBE_TIMEOUT") {
		cfg.Probes.Timeout = pc.Timeout
	}
	if envNonEmpty("PROBE_AI_TIMEOUT") {
		cfg.Probes.AITimeout = pc.AITimeout
	}
	if envNonEmpty("OPENAI_MODEL") {
		cfg.Probes.Model = pc.Model
	}
	if envNonEmpty("SUPABASE_TABLE") {
		cfg.Probes.Table = pc.Table
	}
}

func applyHostingOverrides(cfg *Config, hc HostingConfig) {
	if envNonEmpty("NETLIFY_BIN") {
		cfg.Hosting.Bin = hc.Bin
	}
	if envNonEmpty("NETLIFY_DISABLE") {
		cfg.Hosting.Disable = hc.Disable
	}
	if envNonEmpty("PROD_CHECK_ENV_FILE") {
		cfg.Hosting.EnvFile = hc.EnvFile
	}
}

func applyNotifyOverrides(cfg *Config, nc NotifyConfig) {
	if envNonEmpty("NOTIFY_WEBHOOK_URL") {
		cfg.Notify.WebhookURL = nc.WebhookURL
	}
	if envNonEmpty("NOTIFY_TIMEOUT") {
		cfg.Notify.Timeout = nc.Timeout
	}
}

func applyLogOverrides(cfg *Config, lc LogConfig) {
	if envNonEmpty("LOG_LEVEL") {
		cfg.Log.Level = lc.Level
	}
	if envNonEmpty("LOG_FORMAT") {
		cfg.Log.Format = lc.Format
	}
}

func probeEnvKeys() []string {
	return []string{"PROBE_TIMEOUT", "PROBE_AI_TIMEOUT", "OPENAI_MODEL", "SUPABASE_TABLE"}
}

func hostingEnvKeys() []string {
	return []string{"NETLIFY_BIN", "NETLIFY_DISABLE", "PROD_CHECK_ENV_FILE"}
}

func notifyEnvKeys() []string {
	return []string{"NOTIFY_WEBHOOK_URL", "NOTIFY_TIMEOUT"}
}

func logEnvKeys() []string {
	return []string{"LOG_LEVEL", "LOG_FORMAT"}
}

func hasAnyEnv(keys []string) bool {
	for _, key := range keys {
		if envNonEmpty(key) {
			return true
		}
	}
	return false
}

func envNonEmpty(key string) bool {
	val, ok := os.LookupEnv(key)
	if !ok {
		return false
	}
	return strings.TrimSpace(val) != ""
}
