package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

//**********************************************************
// config
//**********************************************************

func ReadConfig(file string) (Config, error) {
	var config Config
	data, err := os.ReadFile(file)
	if err != nil {
		return config, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if len(config.Output.Formats) == 0 {
		config.Output.Formats = []OutputFormat{JSON}
	}
	if err := validator.New().Struct(config); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

type Config struct {
	LogLevel string `yaml:"log-level" validate:"oneof=debug info warn error"`
	Build    struct {
		Source        SourceOptions `yaml:"source"`
		FilterPolygon string        `yaml:"filter-polygon"`
	} `yaml:"build"`
	Output OutputOptions `yaml:"output"`
}

type SourceOptions struct {
	GTFS string `yaml:"gtfs" validate:"required"`
}

type OutputOptions struct {
	Path    string         `yaml:"path" validate:"required"`
	Formats []OutputFormat `yaml:"formats" validate:"dive,lte=2"`
}

func (self Config) Level() slog.Level {
	switch self.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

//**********************************************************
// enums
//**********************************************************

type OutputFormat byte

const (
	JSON   OutputFormat = 0
	BINARY OutputFormat = 1
	SQLITE OutputFormat = 2
)

func (self OutputFormat) String() string {
	switch self {
	case JSON:
		return "json"
	case BINARY:
		return "binary"
	case SQLITE:
		return "sqlite"
	default:
		panic("unknown output format")
	}
}
func (self OutputFormat) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *OutputFormat) UnmarshalYAML(value *yaml.Node) error {
	typ, err := OutputFormatFromString(value.Value)
	if err != nil {
		return err
	}
	*self = typ
	return nil
}

func OutputFormatFromString(s string) (OutputFormat, error) {
	switch s {
	case "json":
		return JSON, nil
	case "binary":
		return BINARY, nil
	case "sqlite":
		return SQLITE, nil
	default:
		return JSON, errors.New("unknown output format: " + s)
	}
}
