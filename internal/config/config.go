package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
	S3       S3Config       `yaml:"s3"`
}

type PipelineConfig struct {
	// MaxLineBytes caps a single input line; longer lines fail that line
	// only, not the run.
	MaxLineBytes int `yaml:"max_line_bytes"`
	// Workers is the number of sources processed concurrently. 1 means
	// strictly sequential, source by source.
	Workers int `yaml:"workers"`
}

type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	Prefix    string `yaml:"prefix"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    *bool  `yaml:"use_ssl"`
}

// Enabled reports whether an upload target is configured at all.
func (s S3Config) Enabled() bool { return s.Bucket != "" }

// Load reads the yaml config at path, applies defaults, and validates.
// An empty path yields the defaults; credentials in the environment
// (AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY) override file values.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, err
		}
	}

	if cfg.Pipeline.MaxLineBytes <= 0 {
		cfg.Pipeline.MaxLineBytes = 1024 * 1024
	}
	if cfg.Pipeline.Workers <= 0 {
		cfg.Pipeline.Workers = 1
	}

	if v := os.Getenv("AWS_ACCESS_KEY_ID"); v != "" {
		cfg.S3.AccessKey = v
	}
	if v := os.Getenv("AWS_SECRET_ACCESS_KEY"); v != "" {
		cfg.S3.SecretKey = v
	}

	if cfg.S3.Enabled() {
		if cfg.S3.Endpoint == "" && cfg.S3.Region == "" {
			return Config{}, fmt.Errorf("s3.region or s3.endpoint is required when s3.bucket is set")
		}
		if cfg.S3.AccessKey == "" || cfg.S3.SecretKey == "" {
			return Config{}, fmt.Errorf("s3 credentials are required when s3.bucket is set")
		}
		if cfg.S3.Endpoint == "" {
			cfg.S3.Endpoint = fmt.Sprintf("s3.%s.amazonaws.com", cfg.S3.Region)
		}
		if cfg.S3.UseSSL == nil {
			v := true
			cfg.S3.UseSSL = &v
		}
	}

	return cfg, nil
}
