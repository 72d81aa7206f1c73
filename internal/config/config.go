package config

import (
	"fmt"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/at-ishikawa/lexicon/internal/dictionary/freedictionary"
)

const ThemeSystem = "system"

type Config struct {
	Lookup  LookupConfig  `mapstructure:"lookup"`
	Display DisplayConfig `mapstructure:"display"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
}

type LookupConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type DisplayConfig struct {
	// Theme is light, dark, or system to follow the terminal background.
	Theme string `mapstructure:"theme" validate:"theme"`
	Font  string `mapstructure:"font" validate:"font"`
}

type ServerConfig struct {
	Address       string `mapstructure:"address" validate:"required"`
	AllowedOrigin string `mapstructure:"allowed_origin"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/lexicon")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("lookup.base_url", freedictionary.DefaultBaseURL)
	v.SetDefault("lookup.timeout", 10*time.Second)
	v.SetDefault("display.theme", ThemeSystem)
	v.SetDefault("display.font", "sans")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.allowed_origin", "http://localhost:3000")
	v.SetDefault("log.level", "info")

	envs := map[string]string{
		"lookup.base_url": "LEXICON_BASE_URL",
		"lookup.timeout":  "LEXICON_TIMEOUT",
		"display.theme":   "LEXICON_THEME",
		"display.font":    "LEXICON_FONT",
		"server.address":  "LEXICON_SERVER_ADDRESS",
		"log.level":       "LEXICON_LOG_LEVEL",
	}
	for key, env := range envs {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, fmt.Errorf("loader.validator.Struct > %w", err)
		}
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
