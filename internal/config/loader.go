package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// maxUpwardSearchLevels limits how far up the directory tree the config
// file search goes.
const maxUpwardSearchLevels = 10

// Load reads configuration in precedence order: env vars over config file
// over defaults. cfgFile may be empty, in which case sqltint.yaml is
// searched upward from the current directory; running without any config
// file is not an error.
func Load(cfgFile string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if cfgFile == "" {
		if cwd, err := os.Getwd(); err == nil {
			cfgFile = findConfigUpward(cwd)
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", cfgFile, err)
		}
	}

	// SQLTINT_NO_COLOR=1 -> no_color, SQLTINT_HIGHLIGHT_COLUMNS -> highlight.columns
	if err := k.Load(env.Provider("SQLTINT_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "SQLTINT_"))
		if rest, ok := strings.CutPrefix(key, "highlight_"); ok {
			return "highlight." + rest
		}
		return key
	}), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	for _, conn := range cfg.Connections {
		conn.DSN = expandEnvVars(conn.DSN)
		if conn.Path != "" && cfgFile != "" && !filepath.IsAbs(conn.Path) {
			conn.Path = filepath.Join(filepath.Dir(cfgFile), conn.Path)
		}
	}

	return &cfg, nil
}

// findConfigUpward searches startDir and its parents for a config file.
func findConfigUpward(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars expands ${VAR} patterns so DSNs can reference credentials
// without storing them in the file.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if val := os.Getenv(match[2 : len(match)-1]); val != "" {
			return val
		}
		return match
	})
}
