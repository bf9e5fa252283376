package glitch

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk form of an effect configuration:
//
//	effect: particles
//	count: 120
//	color: "rgba(0,255,200,0.8)"
//	mouseInteraction: true
type Config struct {
	Effect  Family `yaml:"effect"`
	Options `yaml:",inline"`
}

// ParseError reports a configuration file that could not be decoded.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse config: %s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("parse config: %s: %v", e.Path, e.Err)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ErrUnknownEffect is returned for an effect name that is not a Family.
var ErrUnknownEffect = errors.New("unknown effect")

// ParseFamily resolves an effect name.
func ParseFamily(name string) (Family, error) {
	for _, f := range Families {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownEffect, name)
}

// ParseConfig decodes YAML configuration data. path is only used in errors.
// Option values are not validated here; Normalize clamps them at mount time.
func ParseConfig(path string, data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Path: path, Line: yamlLine(err), Err: err}
	}
	if cfg.Effect != "" {
		if _, err := ParseFamily(string(cfg.Effect)); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
	}
	return &cfg, nil
}

// LoadConfig reads and decodes a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return ParseConfig(path, data)
}

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

func yamlLine(err error) int {
	m := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(m) != 2 {
		return 0
	}
	line, convErr := strconv.Atoi(m[1])
	if convErr != nil {
		return 0
	}
	return line
}
