package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/klmitch/requiem/validation"
)

// Defaulter is implemented by config structs that can fill in defaults.
type Defaulter interface {
	ApplyDefaults()
}

// Validator is implemented by config structs that can validate themselves.
type Validator interface {
	Validate() error
}

// LoaderConfig controls how configuration is located and loaded.
type LoaderConfig struct {
	// ConfigFile is an explicit path to a YAML config file. When empty,
	// standard locations are searched.
	ConfigFile string
	// EnvFile is an explicit path to a .env file. When empty, ./.env is
	// used if present.
	EnvFile string
	// EnvPrefix namespaces environment variable overrides, e.g. a prefix
	// of "MYAPI" maps MYAPI_BASE_URL onto the base_url key.
	EnvPrefix string
}

// Load reads configuration into out, a pointer to a mapstructure-tagged
// struct. Precedence, lowest to highest: config file, .env file,
// process environment. After decoding, ApplyDefaults and Validate are
// invoked when implemented, and `validate` struct tags are enforced.
func Load(out any, opts LoaderConfig) error {
	envFile := opts.EnvFile
	if envFile == "" && exists(".env") {
		envFile = ".env"
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("config: load env file %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if opts.EnvPrefix != "" {
		v.SetEnvPrefix(opts.EnvPrefix)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configFile := opts.ConfigFile
	if configFile == "" {
		configFile = findConfigFile()
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("config: decode: %w", err)
	}

	if d, ok := out.(Defaulter); ok {
		d.ApplyDefaults()
	}
	if err := validation.Validate(out); err != nil {
		return err
	}
	if val, ok := out.(Validator); ok {
		if err := val.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// findConfigFile searches for config.yml in standard locations.
func findConfigFile() string {
	searchPaths := []string{
		"./config/config.yml",
		"./config.yml",
		"./config.yaml",
	}
	for _, path := range searchPaths {
		if exists(path) {
			return path
		}
	}
	return ""
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
