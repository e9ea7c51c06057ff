// Package config loads the vcf command line tool settings from TOML files.
package config

//go:generate go tool errtrace -w .

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"braces.dev/errtrace"
	"github.com/pelletier/go-toml/v2"

	"github.com/ghettovoice/govcard/internal/errorutil"
)

// ErrInvalidConfig is returned when a configuration file cannot be parsed or holds unsupported values.
const ErrInvalidConfig errorutil.Error = "invalid config"

const (
	// DefaultPath is the user configuration file location.
	DefaultPath = "~/.config/vcf/config.toml"
	// ProjectFile is the configuration file looked up in the working directory.
	ProjectFile = "vcf.toml"
)

// Output contains rendering and export settings.
type Output struct {
	Version string `toml:"version"`
	Format  string `toml:"format"`
}

// Input contains source decoding settings.
type Input struct {
	Charset string `toml:"charset"`
}

// Logging contains log output settings.
type Logging struct {
	Level string `toml:"level"`
	Dev   bool   `toml:"dev"`
}

// Config is the root configuration.
type Config struct {
	Output  Output  `toml:"output"`
	Input   Input   `toml:"input"`
	Logging Logging `toml:"logging"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Output:  Output{Version: "4.0", Format: FormatJSON},
		Input:   Input{Charset: "utf-8"},
		Logging: Logging{Level: "info"},
	}
}

// Load locates, parses, and validates a configuration file.
//
// An explicit path wins, otherwise [DefaultPath] and then [ProjectFile] are tried.
// A missing file is not an error: the defaults are returned along with the resolved
// path and exists == false.
func Load(path string) (cfg *Config, resolved string, exists bool, err error) {
	c := Default()

	resolved, exists, err = resolvePath(path)
	if err != nil {
		return nil, "", false, errtrace.Wrap(err)
	}

	if exists {
		data, err := os.ReadFile(resolved)
		if err != nil {
			return nil, "", false, errtrace.Wrap(err)
		}
		if err := Decode(data, &c); err != nil {
			return nil, "", false, errtrace.Wrap(err)
		}
	}

	c.normalize()
	if err := c.Validate(); err != nil {
		return nil, "", false, errtrace.Wrap(err)
	}
	return &c, resolved, exists, nil
}

// Decode parses TOML data over cfg. Unknown keys are rejected.
func Decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidConfig, "line %d column %d: %v", row, col, derr))
		}
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidConfig, err))
	}
	return nil
}

// Encode renders cfg as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return buf.Bytes(), nil
}

func resolvePath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, errtrace.Wrap(err)
		}
		return errtrace.Wrap3(stat(expanded))
	}

	defaultPath, err := ExpandPath(DefaultPath)
	if err != nil {
		return "", false, errtrace.Wrap(err)
	}
	if p, ok, err := stat(defaultPath); err != nil || ok {
		return p, ok, errtrace.Wrap(err)
	}

	projectPath, err := filepath.Abs(ProjectFile)
	if err != nil {
		return "", false, errtrace.Wrap(err)
	}
	if p, ok, err := stat(projectPath); err != nil || ok {
		return p, ok, errtrace.Wrap(err)
	}
	return defaultPath, false, nil
}

func stat(path string) (string, bool, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return path, false, nil
	case err != nil:
		return "", false, errtrace.Wrap(err)
	case info.IsDir():
		return "", false, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidConfig, "%s is a directory", path))
	default:
		return path, true, nil
	}
}

// ExpandPath expands a leading ~ to the user home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return filepath.Clean(path), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/")), nil
}
