// Package config holds the settings of the tinypng command: logging, decode
// limits and S3 access. Values start from Default, are overlaid by TINYPNG_*
// environment variables in FromEnv, and are finally overridden by flags.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
)

// DefaultMaxPixels matches tinypng.DefaultMaxPixels.
const DefaultMaxPixels = 1 << 28

// Config is the complete tinypng command configuration.
type Config struct {
	LogLevel zerolog.Level
	Decode   DecodeConfig
	S3       S3Config
}

// DecodeConfig holds the limits and options applied to every decode.
type DecodeConfig struct {
	MaxPixels      uint64
	MaxChunkLength uint32
	ExactPaeth     bool
}

// S3Config describes how to reach S3 for s3:// sources.
type S3Config struct {
	Region    string
	Endpoint  string // empty means the AWS default for Region
	AccessKey string
	Secret    string
	PathStyle bool
}

// HasStaticCredentials reports whether both halves of a key pair are set.
func (c S3Config) HasStaticCredentials() bool {
	return c.AccessKey != "" && c.Secret != ""
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		LogLevel: zerolog.InfoLevel,
		Decode: DecodeConfig{
			MaxPixels: DefaultMaxPixels,
		},
		S3: S3Config{
			Region: "us-east-1",
		},
	}
}

// Environment variables read by FromEnv.
const (
	EnvLogLevel       = "TINYPNG_LOG_LEVEL"
	EnvMaxPixels      = "TINYPNG_MAX_PIXELS"
	EnvMaxChunkLength = "TINYPNG_MAX_CHUNK_LENGTH"
	EnvExactPaeth     = "TINYPNG_EXACT_PAETH"
	EnvS3Region       = "TINYPNG_S3_REGION"
	EnvS3Endpoint     = "TINYPNG_S3_ENDPOINT"
	EnvS3AccessKey    = "TINYPNG_S3_ACCESS_KEY"
	EnvS3Secret       = "TINYPNG_S3_SECRET"
	EnvS3PathStyle    = "TINYPNG_S3_PATH_STYLE"
)

// FromEnv returns Default overlaid with the TINYPNG_* environment.
func FromEnv() (Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup is FromEnv with a custom variable source.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvLogLevel); ok {
		level, err := zerolog.ParseLevel(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = level
	}
	if v, ok := lookup(EnvMaxPixels); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvMaxPixels, err)
		}
		cfg.Decode.MaxPixels = n
	}
	if v, ok := lookup(EnvMaxChunkLength); ok {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvMaxChunkLength, err)
		}
		cfg.Decode.MaxChunkLength = uint32(n)
	}
	if v, ok := lookup(EnvExactPaeth); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvExactPaeth, err)
		}
		cfg.Decode.ExactPaeth = b
	}

	if v, ok := lookup(EnvS3Region); ok {
		cfg.S3.Region = v
	}
	if v, ok := lookup(EnvS3Endpoint); ok {
		cfg.S3.Endpoint = v
	}
	if v, ok := lookup(EnvS3AccessKey); ok {
		cfg.S3.AccessKey = v
	}
	if v, ok := lookup(EnvS3Secret); ok {
		cfg.S3.Secret = v
	}
	if v, ok := lookup(EnvS3PathStyle); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvS3PathStyle, err)
		}
		cfg.S3.PathStyle = b
	}

	return cfg, nil
}
