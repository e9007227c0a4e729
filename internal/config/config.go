// Package config loads and stores commando's YAML settings through viper.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

const (
	appName = "commando"
)

// Config mirrors config.yaml.
type Config struct {
	// Template is a path to an editor template replacing the built-in one.
	Template        string            `mapstructure:"template,omitempty"`
	StrictTemplates bool              `mapstructure:"strict_templates,omitempty"`
	// ExpandMessages renders -m, -F and --stdin text as a template.
	ExpandMessages  bool              `mapstructure:"expand_messages,omitempty"`
	Editor          string            `mapstructure:"editor,omitempty"`
	AutoAdd         bool              `mapstructure:"auto_add,omitempty"`
	AutoPush        bool              `mapstructure:"auto_push,omitempty"`
	NoVerify        bool              `mapstructure:"no_verify,omitempty"`
	SignOff         bool              `mapstructure:"sign_off,omitempty"`
	Types           map[string]string `mapstructure:"types,omitempty"`
}

// keys that Set accepts, with whether the value is a bool.
var keys = map[string]bool{
	"template":         false,
	"strict_templates": true,
	"expand_messages":  true,
	"editor":           false,
	"auto_add":         true,
	"auto_push":        true,
	"no_verify":        true,
	"sign_off":         true,
}

func GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(configDir, appName), nil
}

func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

func resolve(configPath string) (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return GetConfigPath()
}

func newViper(configPath string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(appName)
	v.AutomaticEnv()
	for k := range keys {
		v.SetDefault(k, zero(k))
	}
	return v
}

func zero(key string) any {
	if keys[key] {
		return false
	}
	return ""
}

// Load reads configPath, or the default location when it is empty. A
// missing file yields the defaults; COMMANDO_* environment variables
// override file values.
func Load(configPath string) (*Config, error) {
	configPath, err := resolve(configPath)
	if err != nil {
		return nil, err
	}

	v := newViper(configPath)
	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

const defaultConfig = `# commando configuration

# Path to an editor template; empty uses the built-in one.
template: ""
# Fail when a template references an undefined variable.
strict_templates: false
# Treat -m, -F and --stdin text as a template too; by default it is literal.
expand_messages: false
# Editor command; empty falls back to GIT_EDITOR, VISUAL, EDITOR.
editor: ""
auto_add: false
auto_push: false
no_verify: false
sign_off: false

# Extra commit types, name: description.
types: {}
`

// Init writes a commented default config to configPath.
func Init(configPath string) (string, error) {
	configPath, err := resolve(configPath)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists at %s", configPath)
	}

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return configPath, nil
}

// Save writes cfg to configPath, replacing the file.
func Save(configPath string, cfg *Config) error {
	configPath, err := resolve(configPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.Set("template", cfg.Template)
	v.Set("strict_templates", cfg.StrictTemplates)
	v.Set("expand_messages", cfg.ExpandMessages)
	v.Set("editor", cfg.Editor)
	v.Set("auto_add", cfg.AutoAdd)
	v.Set("auto_push", cfg.AutoPush)
	v.Set("no_verify", cfg.NoVerify)
	v.Set("sign_off", cfg.SignOff)
	v.Set("types", cfg.Types)

	if err := v.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Show returns the effective settings as sorted "key: value" lines and
// the path they were read from.
func Show(configPath string) ([]string, string, error) {
	configPath, err := resolve(configPath)
	if err != nil {
		return nil, "", err
	}
	v := newViper(configPath)
	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return nil, "", fmt.Errorf("failed to read config: %w", err)
	}

	all := v.AllSettings()
	names := make([]string, 0, len(all))
	for k := range all {
		names = append(names, k)
	}
	sort.Strings(names)
	lines := make([]string, len(names))
	for i, k := range names {
		lines[i] = fmt.Sprintf("%s: %v", k, all[k])
	}
	return lines, configPath, nil
}

// Set updates one key in the config file, creating the file if needed.
// Boolean keys accept the forms strconv.ParseBool does; types.NAME sets a
// custom commit type description.
func Set(configPath, key, value string) error {
	configPath, err := resolve(configPath)
	if err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return fmt.Errorf("failed to read config: %w", err)
	}

	isBool, known := keys[key]
	switch {
	case known && isBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s expects true or false, got %q", key, value)
		}
		v.Set(key, b)
	case known:
		v.Set(key, value)
	case strings.HasPrefix(key, "types.") && len(key) > len("types."):
		v.Set(key, value)
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := v.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
