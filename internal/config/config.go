package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr         string        `yaml:"addr"`
	DatabasePath string        `yaml:"database_path"`
	SeedPath     string        `yaml:"seed_path"`
	APITimeout   time.Duration `yaml:"timeout"`
}

// LoadConfig builds the config from defaults and environment, then applies
// the optional YAML file on top.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:         getEnv("CARELINK_ADDR", ":8080"),
		DatabasePath: getEnv("CARELINK_DATABASE_PATH", "carelink.db"),
		SeedPath:     getEnv("CARELINK_SEED_PATH", ""),
		APITimeout:   15 * time.Second,
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
