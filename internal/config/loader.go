package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/yyyoichi/logomark"
	"gopkg.in/yaml.v3"
)

// envVarPattern matches ${VAR_NAME} patterns.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Loader reads a YAML configuration file.
type Loader struct {
	configPath string
}

func NewLoaderWithPath(configPath string) *Loader {
	return &Loader{configPath: configPath}
}

func (l *Loader) ConfigPath() string {
	return l.configPath
}

// Load reads the file on top of the defaults, expands ${VAR} references and
// applies LOGOMARK_* environment overrides. A missing file yields the
// defaults with overrides.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()
	if l.configPath != "" {
		data, err := os.ReadFile(l.configPath)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("LOGOMARK_MODE"); v != "" {
		cfg.Mode = v
	}
	if v := os.Getenv("LOGOMARK_ANCHOR"); v != "" {
		cfg.Watermark.Anchor = logomark.Anchor(v)
	}
	floats := []struct {
		key string
		dst *float64
	}{
		{"LOGOMARK_QUALITY", &cfg.Watermark.Quality},
		{"LOGOMARK_LOGO_WIDTH", &cfg.Watermark.LogoWidthPercent},
	}
	for _, f := range floats {
		v := os.Getenv(f.key)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = n
	}
	if v := os.Getenv("LOGOMARK_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LOGOMARK_WORKERS: %w", err)
		}
		cfg.Workers = n
	}
	return nil
}

// expandEnvVars replaces ${VAR_NAME} with environment variable values.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		return os.Getenv(varName)
	})
}
