package config

import "github.com/spf13/viper"

type Config struct {
	Root       string       `mapstructure:"root"`
	Compose    string       `mapstructure:"compose"`
	Proxy      string       `mapstructure:"proxy"`
	EnvExample string       `mapstructure:"env_example"`
	Source     SourceConfig `mapstructure:"source"`
	Report     ReportConfig `mapstructure:"report"`
}

type SourceConfig struct {
	Dirs     []string        `mapstructure:"dirs"`
	Patterns []PatternConfig `mapstructure:"patterns"`
}

// PatternConfig declares a custom env-reference recognizer in the
// config file, for ecosystems the built-ins do not cover.
type PatternConfig struct {
	Name       string   `mapstructure:"name"`
	Ecosystem  string   `mapstructure:"ecosystem"`
	Extensions []string `mapstructure:"extensions"`
	Pattern    string   `mapstructure:"pattern"`
}

type ReportConfig struct {
	Format string `mapstructure:"format"` // text, json
	Output string `mapstructure:"output"` // file path, empty for stdout
}

func Load() (*Config, error) {
	cfg := &Config{
		Root:       ".",
		Compose:    "",
		EnvExample: ".env.example",
	}
	cfg.Report.Format = "text"

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
