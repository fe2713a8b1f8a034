// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads conversion settings from defaults, an optional YAML
// config file, PAGEDEX_* environment variables and bound command flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"

	"github.com/pdiddy/pagedex/pkg/types"
)

// Config keys.
const (
	KeyEntities     = "entities"
	KeyMarker       = "marker"
	KeyBaseOffset   = "base_offset"
	KeyBackend      = "backend"
	KeyFormat       = "format"
	KeySummaryWords = "summary_words"
	KeyTitleMaxLen  = "title_max_len"
	KeyUniqueSlugs  = "unique_slugs"
	KeyDB           = "db"
)

const (
	configName = "pagedex"
	envPrefix  = "PAGEDEX"
)

// DefaultEntities is the race list of the source document, in page order.
var DefaultEntities = []string{
	"Гномы", "Люди", "Дроу", "Зверолюды", "Демоны",
	"Эльфы", "Хоббиты", "Лотары", "Орки", "Циклопы",
	"Огры", "Нордиры", "Ринка", "Саури", "Тролли",
}

// DefaultMarker heads the trait section of every page in the source document
// ("Racial Bonuses and Drawbacks").
const DefaultMarker = "Расовые бонусы и недостатки"

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyEntities, DefaultEntities)
	v.SetDefault(KeyMarker, DefaultMarker)
	v.SetDefault(KeyBaseOffset, 2)
	v.SetDefault(KeyBackend, string(types.BackendNative))
	v.SetDefault(KeyFormat, string(types.FormatJSON))
	v.SetDefault(KeySummaryWords, 40)
	v.SetDefault(KeyTitleMaxLen, 40)
	v.SetDefault(KeyUniqueSlugs, true)
	v.SetDefault(KeyDB, "")
}

// ReadFile points v at cfgFile, or at pagedex.yaml in the working directory
// or ~/.config/pagedex/ when cfgFile is empty, and reads it. A missing
// default config file is not an error. It returns the file used, if any.
func ReadFile(v *viper.Viper, cfgFile string) (string, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return types.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks that cfg can drive a conversion.
func Validate(cfg types.Config) error {
	return validation.Errors{
		KeyEntities: validation.Validate(cfg.Entities,
			validation.Required.Error("at least one entity name is required"),
			validation.Each(validation.By(notBlank)),
		),
		KeyMarker: validation.Validate(cfg.Marker,
			validation.By(notBlank),
		),
		KeyBackend: validation.Validate(string(cfg.Backend),
			validation.Required,
			validation.In(string(types.BackendNative), string(types.BackendPdftotext)),
		),
		KeyFormat: validation.Validate(string(cfg.Format),
			validation.Required,
			validation.In(string(types.FormatJSON), string(types.FormatYAML)),
		),
		KeySummaryWords: validation.Validate(cfg.SummaryWords, validation.Min(1)),
		KeyTitleMaxLen:  validation.Validate(cfg.TitleMaxLen, validation.Min(1)),
	}.Filter()
}

func notBlank(value any) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("must not be blank")
	}
	return nil
}
