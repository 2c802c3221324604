package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/noriah/gpufft/internal/log"
)

// DefaultPath is read by Load when no path is given and the file exists.
const DefaultPath = "gpufft.yaml"

// Load builds a Config from the defaults, then the YAML file at path, then
// GPUFFT_* environment variables, and sanitizes the result. An empty path
// reads DefaultPath if present and otherwise skips the file.
func Load(path string) (Config, error) {
	cfg := NewZeroConfig()

	if path == "" {
		if _, err := os.Stat(DefaultPath); err == nil {
			path = DefaultPath
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrap(err, "failed to read config file")
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrap(err, "failed to parse config file")
		}

		log.Debugf("config: loaded %s", path)
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.Sanitize(); err != nil {
		return Config{}, errors.Wrap(err, "invalid configuration")
	}

	return cfg, nil
}

func (cfg *Config) applyEnv() error {
	strs := []struct {
		key string
		dst *string
	}{
		{"GPUFFT_ENGINE", &cfg.Engine},
		{"GPUFFT_LIBRARY", &cfg.Library},
		{"GPUFFT_LOG_LEVEL", &cfg.LogLevel},
		{"GPUFFT_WINDOW", &cfg.Spectrum.Window},
	}

	for _, s := range strs {
		if val, ok := os.LookupEnv(s.key); ok {
			*s.dst = val
			log.Debugf("config: %s=%s from env", s.key, val)
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"GPUFFT_MEMORY_LIMIT", &cfg.MemoryLimit},
		{"GPUFFT_TRIALS", &cfg.Bench.Trials},
		{"GPUFFT_FRAME_SIZE", &cfg.Spectrum.FrameSize},
	}

	for _, i := range ints {
		val, ok := os.LookupEnv(i.key)
		if !ok {
			continue
		}

		n, err := strconv.Atoi(val)
		if err != nil {
			return errors.Wrapf(err, "bad %s", i.key)
		}

		*i.dst = n
		log.Debugf("config: %s=%d from env", i.key, n)
	}

	return nil
}
