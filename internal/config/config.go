package config

import "time"

type Config struct {
	Probes  ProbesConfig  `yaml:"probes" mapstructure:"probes"`
	Hosting HostingConfig `yaml:"hosting" mapstructure:"hosting"`
	Notify  NotifyConfig  `yaml:"notify" mapstructure:"notify"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

type ProbesConfig struct {
	// Timeout bounds each non-AI probe; AITimeout bounds the completion
	// probe, which is regularly slower. Zero disables the bound.
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout" envconfig:"PROBE_TIMEOUT"`
	AITimeout time.Duration `yaml:"ai_timeout" mapstructure:"ai_timeout" envconfig:"PROBE_AI_TIMEOUT"`
	Model     string        `yaml:"model" mapstructure:"model" envconfig:"OPENAI_MODEL"`
	Table     string        `yaml:"table" mapstructure:"table" envconfig:"SUPABASE_TABLE"`
}

type HostingConfig struct {
	Bin     string `yaml:"bin" mapstructure:"bin" envconfig:"NETLIFY_BIN"`
	Disable bool   `yaml:"disable" mapstructure:"disable" envconfig:"NETLIFY_DISABLE"`
	EnvFile string `yaml:"env_file" mapstructure:"env_file" envconfig:"PROD_CHECK_ENV_FILE"`
}

type NotifyConfig struct {
	WebhookURL string        `yaml:"webhook_url" mapstructure:"webhook_url" envconfig:"NOTIFY_WEBHOOK_URL"`
	Timeout    time.Duration `yaml:"timeout" mapstructure:"timeout" envconfig:"NOTIFY_TIMEOUT"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level" envconfig:"LOG_LEVEL"`
	Format string `yaml:"format" mapstructure:"format" envconfig:"LOG_FORMAT"`
}

func DefaultConfig() Config {
	return Config{
		Probes: ProbesConfig{
			Timeout:   10 * time.Second,
			AITimeout: 30 * time.Second,
			Model:     "gpt-4o-mini",
			Table:     "health_checks",
		},
		Hosting: HostingConfig{
			Bin:     "netlify",
			EnvFile: ".env.production",
		},
		Notify: NotifyConfig{
			Timeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
