package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/viper"

	"github.com/driftguard/driftguard/internal/errors"
)

// Environment describes one known deployment environment
type Environment struct {
	// WorkDir is the directory holding the environment's declared
	// configuration, where the provisioning tool runs.
	WorkDir string `mapstructure:"work_dir"`
	// Region overrides the global default region for this environment
	Region string `mapstructure:"region"`
}

// Notifications holds the optional channel endpoints. An empty value
// disables the channel.
type Notifications struct {
	SlackWebhookURL  string `mapstructure:"slack_webhook_url"`
	GitHubToken      string `mapstructure:"github_token"`
	GitHubRepository string `mapstructure:"github_repository"`
}

// Config is the immutable run configuration. It is constructed once at
// process start and passed down through each pipeline stage; components
// never read environment variables mid-pipeline.
type Config struct {
	Environments  map[string]Environment `mapstructure:"environments"`
	DefaultRegion string                 `mapstructure:"default_region"`
	OutputDir     string                 `mapstructure:"output_dir"`
	TerraformBin  string                 `mapstructure:"terraform_bin"`
	AWSProfile    string                 `mapstructure:"aws_profile"`
	// SecurityTypes are extra resource types treated as security-sensitive
	// on top of the built-in registry. The built-ins cannot be removed.
	SecurityTypes []string      `mapstructure:"security_types"`
	Notifications Notifications `mapstructure:"notifications"`
	LogLevel      string        `mapstructure:"log_level"`
	NoColor       bool          `mapstructure:"no_color"`
}

// Load builds the configuration from file, environment and defaults.
// cfgFile may be empty, in which case the default search path is used.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".driftguard"))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// missing config file is fine, defaults apply
	}

	// Channel endpoints and overrides come from the conventional env vars
	bindEnv(v, "output_dir", "DRIFTGUARD_OUTPUT_DIR")
	bindEnv(v, "aws_profile", "AWS_PROFILE")
	bindEnv(v, "notifications.slack_webhook_url", "SLACK_WEBHOOK_URL")
	bindEnv(v, "notifications.github_token", "GITHUB_TOKEN")
	bindEnv(v, "notifications.github_repository", "GITHUB_REPOSITORY")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("default_region", "eu-west-1")
	v.SetDefault("output_dir", "drift-reports")
	v.SetDefault("terraform_bin", "terraform")
	v.SetDefault("log_level", "info")
	v.SetDefault("environments", map[string]Environment{
		"dev":        {WorkDir: "environments/dev"},
		"staging":    {WorkDir: "environments/staging"},
		"production": {WorkDir: "environments/production"},
	})
}

func bindEnv(v *viper.Viper, key, envVar string) {
	if val := os.Getenv(envVar); val != "" {
		v.Set(key, val)
	}
}

// ResolveEnvironment validates the requested environment against the closed
// set of known environments and returns its definition. Unknown names fail
// before any external call is made.
func (c *Config) ResolveEnvironment(name string) (Environment, error) {
	env, ok := c.Environments[name]
	if !ok {
		return Environment{}, errors.New(errors.ErrorTypeConfiguration, errors.StageConfig,
			fmt.Sprintf("unknown environment %q (known: %s)", name, c.environmentNames())).
			WithSolutions(
				"check the environment argument for typos",
				"declare the environment under 'environments' in the config file",
			)
	}
	return env, nil
}

// RegionFor returns the effective region for an environment: an explicit
// argument wins, then the environment's own region, then the global default.
func (c *Config) RegionFor(name, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env, ok := c.Environments[name]; ok && env.Region != "" {
		return env.Region
	}
	return c.DefaultRegion
}

func (c *Config) environmentNames() string {
	names := make([]string, 0, len(c.Environments))
	for name := range c.Environments {
		names = append(names, name)
	}
	sort.Strings(names)
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}
