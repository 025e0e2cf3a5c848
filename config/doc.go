// Package config loads client configuration from YAML files and the
// environment into tagged structs, applying defaults and validation.
//
//	var cfg requiem.Config
//	if err := config.Load(&cfg, config.LoaderConfig{EnvPrefix: "MYAPI"}); err != nil {
//	    ...
//	}
package config
