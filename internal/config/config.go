package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	ServerAddr string
	LogLevel   string
	LogFormat  string

	// Texts are the documents to benchmark: local paths or s3://<key>
	// references into S3Bucket.
	Texts       []string
	RealPattern string
	FakePattern string
	Repetitions int

	HashBase    int64
	HashModulus int64

	AWSRegion     string
	S3Bucket      string
	PostgresDSN   string
	MigrationsDir string
}

func Load() (*Config, error) {
	viper.SetEnvPrefix("TEXTBENCH")
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_ADDR", ":8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "console")
	viper.SetDefault("TEXTS", "стаття 1.txt,стаття 2.txt")
	viper.SetDefault("REAL_PATTERN", "сума оптимальних рішень")
	viper.SetDefault("FAKE_PATTERN", "орвпанкоіроавл")
	viper.SetDefault("REPETITIONS", 1000)
	viper.SetDefault("HASH_BASE", 256)
	viper.SetDefault("HASH_MODULUS", 101)
	viper.SetDefault("MIGRATIONS_DIR", "migrations")

	cfg := &Config{
		ServerAddr: viper.GetString("SERVER_ADDR"),
		LogLevel:   viper.GetString("LOG_LEVEL"),
		LogFormat:  viper.GetString("LOG_FORMAT"),

		Texts:       splitList(viper.GetString("TEXTS")),
		RealPattern: viper.GetString("REAL_PATTERN"),
		FakePattern: viper.GetString("FAKE_PATTERN"),
		Repetitions: viper.GetInt("REPETITIONS"),

		HashBase:    viper.GetInt64("HASH_BASE"),
		HashModulus: viper.GetInt64("HASH_MODULUS"),

		AWSRegion:     viper.GetString("AWS_REGION"),
		S3Bucket:      viper.GetString("S3_BUCKET"),
		PostgresDSN:   viper.GetString("POSTGRES_DSN"),
		MigrationsDir: viper.GetString("MIGRATIONS_DIR"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Repetitions <= 0:
		return fmt.Errorf("REPETITIONS must be positive, got %d", c.Repetitions)
	case c.HashBase <= 0:
		return fmt.Errorf("HASH_BASE must be positive, got %d", c.HashBase)
	case c.HashModulus <= 0:
		return fmt.Errorf("HASH_MODULUS must be positive, got %d", c.HashModulus)
	case c.RealPattern == "" || c.FakePattern == "":
		return fmt.Errorf("REAL_PATTERN and FAKE_PATTERN must be set")
	}
	return nil
}

// splitList splits a comma-separated value, dropping blanks. File names may
// contain spaces, so whitespace is not a separator.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
