package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/govcard/internal/config"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("os.WriteFile() error = %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
[output]
version = "3.0"
format = "YAML"

[input]
charset = "ISO-8859-1"

[logging]
level = "debug"
dev = true
`)

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("config.Load() error = %v, want nil", err)
	}
	if resolved != path || !exists {
		t.Errorf("config.Load() = (%q, %v), want (%q, true)", resolved, exists, path)
	}
	want := &config.Config{
		Output:  config.Output{Version: "3.0", Format: config.FormatYAML},
		Input:   config.Input{Charset: "ISO-8859-1"},
		Logging: config.Logging{Level: "debug", Dev: true},
	}
	if diff := cmp.Diff(cfg, want); diff != "" {
		t.Errorf("config.Load() = %+v, want %+v\ndiff (-got +want):\n%v", cfg, want, diff)
	}
}

func TestLoad_Missing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "none.toml")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("config.Load() error = %v, want nil", err)
	}
	if resolved != path || exists {
		t.Errorf("config.Load() = (%q, %v), want (%q, false)", resolved, exists, path)
	}
	want := config.Default()
	if diff := cmp.Diff(*cfg, want); diff != "" {
		t.Errorf("config.Load() = %+v, want defaults\ndiff (-got +want):\n%v", cfg, diff)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		data    string
		wantMsg []string
	}{
		{"syntax", "[output\nversion = 1", []string{"invalid config"}},
		{"unknown key", "[output]\ncolor = true", []string{"invalid config"}},
		{"version", "[output]\nversion = \"5.0\"", []string{"output.version"}},
		{
			"several",
			"[output]\nformat = \"xml\"\n[input]\ncharset = \"x-unknown\"\n[logging]\nlevel = \"loud\"",
			[]string{"config validation failed", "output.format", "input.charset", "logging.level"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			_, _, _, err := config.Load(writeConfig(t, c.data))
			if !errors.Is(err, config.ErrInvalidConfig) {
				t.Fatalf("config.Load() error = %v, want %v", err, config.ErrInvalidConfig)
			}
			for _, msg := range c.wantMsg {
				if !strings.Contains(err.Error(), msg) {
					t.Errorf("config.Load() error = %q, want it to contain %q", err, msg)
				}
			}
		})
	}
}

func TestConfig_Encode(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("cfg.Encode() error = %v, want nil", err)
	}

	var got config.Config
	if err := config.Decode(data, &got); err != nil {
		t.Fatalf("config.Decode() error = %v, want nil", err)
	}
	if diff := cmp.Diff(got, cfg); diff != "" {
		t.Errorf("config.Decode(cfg.Encode()) = %+v, want %+v\ndiff (-got +want):\n%v", got, cfg, diff)
	}
}

func TestExpandPath(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	cases := []struct {
		in, want string
	}{
		{"~", home},
		{"~/vcf/config.toml", filepath.Join(home, "vcf", "config.toml")},
		{"/etc/vcf.toml", "/etc/vcf.toml"},
		{"rel/../vcf.toml", "vcf.toml"},
	}
	for _, c := range cases {
		got, err := config.ExpandPath(c.in)
		if err != nil {
			t.Errorf("config.ExpandPath(%q) error = %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("config.ExpandPath(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
