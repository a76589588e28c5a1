// Package config resolves the representer settings of the failmsg CLI.
//
// Settings come from, in increasing precedence: built-in defaults, a config
// file (~/.failmsg/config.yaml or config.toml), FAILMSG_* environment variables
// and command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"failmsg/pkg/errx"
	"failmsg/pkg/represent"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Environment variables read by FromEnv.
const (
	EnvQuoting      = "FAILMSG_QUOTING"
	EnvMaxElements  = "FAILMSG_MAX_ELEMENTS"
	EnvMaxLineWidth = "FAILMSG_MAX_LINE_WIDTH"
	EnvMaxDepth     = "FAILMSG_MAX_DEPTH"
	EnvMaxLength    = "FAILMSG_MAX_LENGTH"
)

const configDir = ".failmsg"

// Format is a config file format.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	}
	return "unknown"
}

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return FormatYAML, errx.Config(fmt.Sprintf("unsupported config file extension %q", filepath.Ext(path))).
		WithContext("path", path)
}

// Settings is one layer of configuration. Zero fields are unset and leave the
// lower layer in place.
type Settings struct {
	Quoting      string `yaml:"quoting,omitempty" toml:"quoting,omitempty"`
	MaxElements  int    `yaml:"max_elements,omitempty" toml:"max_elements,omitempty"`
	MaxLineWidth int    `yaml:"max_line_width,omitempty" toml:"max_line_width,omitempty"`
	MaxDepth     int    `yaml:"max_depth,omitempty" toml:"max_depth,omitempty"`
	MaxLength    int    `yaml:"max_length,omitempty" toml:"max_length,omitempty"`
}

// Config is the resolved configuration.
type Config struct {
	Quoting      represent.Quoting
	MaxElements  int
	MaxLineWidth int
	MaxDepth     int
	MaxLength    int
	// Source is the config file that was read, if any.
	Source string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Quoting:      represent.QuoteDouble,
		MaxElements:  represent.DefaultMaxElements,
		MaxLineWidth: represent.DefaultMaxLineWidth,
		MaxDepth:     represent.DefaultMaxDepth,
		MaxLength:    represent.DefaultMaxLength,
	}
}

// Representer builds a Representer from c using reg for type-specific
// renderers (nil uses represent.DefaultRegistry).
func (c Config) Representer(reg *represent.Registry) (*represent.Representer, error) {
	if reg == nil {
		reg = represent.DefaultRegistry()
	}
	return represent.New(
		represent.WithQuoting(c.Quoting),
		represent.WithMaxElements(c.MaxElements),
		represent.WithMaxLineWidth(c.MaxLineWidth),
		represent.WithMaxDepth(c.MaxDepth),
		represent.WithMaxLength(c.MaxLength),
		represent.WithRegistry(reg),
	)
}

// userHomeDir is a seam for tests.
var userHomeDir = os.UserHomeDir

// DefaultPath returns the config file in the user's home directory: the YAML
// file when present, else the TOML file when present, else the YAML path.
func DefaultPath() (string, error) {
	home, err := userHomeDir()
	if err != nil {
		return "", errx.WrapConfig("failed to get home directory", err)
	}
	yamlPath := filepath.Join(home, configDir, "config.yaml")
	tomlPath := filepath.Join(home, configDir, "config.toml")
	if _, err := os.Stat(yamlPath); err != nil {
		if _, err := os.Stat(tomlPath); err == nil {
			return tomlPath, nil
		}
	}
	return yamlPath, nil
}

// LoadFile reads a config file. A missing file yields (nil, nil).
func LoadFile(path string) (*Settings, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	// #nosec G304 -- path is the user's own config file.
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, errx.WrapConfig(fmt.Sprintf("failed to read config: %v", err), err).
			WithContext("path", path)
	}

	var s Settings
	switch format {
	case FormatTOML:
		_, err = toml.Decode(string(data), &s)
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&s)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	}
	if err != nil {
		return nil, errx.WrapConfig(fmt.Sprintf("failed to parse config: %v", err), err).
			WithContext("path", path).
			WithContext("format", format.String())
	}
	return &s, nil
}

// Save writes s to path in the format of its extension.
func Save(path string, s *Settings) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	switch format {
	case FormatTOML:
		err = toml.NewEncoder(&buf).Encode(s)
	default:
		err = yaml.NewEncoder(&buf).Encode(s)
	}
	if err != nil {
		return errx.WrapConfig("failed to encode config", err).WithContext("path", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return errx.WrapConfig("failed to create config directory", err).WithContext("path", path)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return errx.WrapConfig("failed to write config", err).WithContext("path", path)
	}
	return nil
}

// FromEnv reads the FAILMSG_* variables through lookup.
func FromEnv(lookup func(string) (string, bool)) (*Settings, error) {
	var s Settings
	if v, ok := lookup(EnvQuoting); ok {
		s.Quoting = strings.TrimSpace(v)
	}
	ints := []struct {
		key string
		dst *int
	}{
		{EnvMaxElements, &s.MaxElements},
		{EnvMaxLineWidth, &s.MaxLineWidth},
		{EnvMaxDepth, &s.MaxDepth},
		{EnvMaxLength, &s.MaxLength},
	}
	for _, field := range ints {
		v, ok := lookup(field.key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, errx.WrapConfig(fmt.Sprintf("%s must be an integer, got %q", field.key, v), err).
				WithContext("env", field.key)
		}
		*field.dst = n
	}
	return &s, nil
}

// Resolve merges defaults, the config file at path (DefaultPath when empty),
// the environment and flags, in that order of precedence.
func Resolve(path string, flags *Settings) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}
	file, err := LoadFile(path)
	if err != nil {
		return Config{}, err
	}
	if file != nil {
		cfg.Source = path
	}

	env, err := FromEnv(os.LookupEnv)
	if err != nil {
		return Config{}, err
	}

	for _, layer := range []*Settings{file, env, flags} {
		if err := cfg.apply(layer); err != nil {
			return Config{}, err
		}
	}
	if _, err := cfg.Representer(nil); err != nil {
		return Config{}, errx.WrapConfig(fmt.Sprintf("invalid configuration: %v", err), err)
	}
	return cfg, nil
}

func (c *Config) apply(s *Settings) error {
	if s == nil {
		return nil
	}
	if s.Quoting != "" {
		q, err := represent.ParseQuoting(s.Quoting)
		if err != nil {
			return errx.WrapConfig(fmt.Sprintf("invalid quoting %q", s.Quoting), err).
				WithContext("quoting", s.Quoting)
		}
		c.Quoting = q
	}
	if s.MaxElements != 0 {
		c.MaxElements = s.MaxElements
	}
	if s.MaxLineWidth != 0 {
		c.MaxLineWidth = s.MaxLineWidth
	}
	if s.MaxDepth != 0 {
		c.MaxDepth = s.MaxDepth
	}
	if s.MaxLength != 0 {
		c.MaxLength = s.MaxLength
	}
	return nil
}
