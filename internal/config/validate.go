package config

import (
	"slices"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/govcard/internal/errorutil"
	"github.com/ghettovoice/govcard/internal/log"
	"github.com/ghettovoice/govcard/vcard"
)

// Supported export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCBOR = "cbor"
)

// Versions lists vCard versions accepted as output version.
var Versions = []string{"2.1", "3.0", "4.0"}

// Formats lists supported export formats.
var Formats = []string{FormatJSON, FormatYAML, FormatCBOR}

func (c *Config) normalize() {
	c.Output.Version = strings.TrimSpace(c.Output.Version)
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	c.Input.Charset = strings.TrimSpace(c.Input.Charset)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
}

// Validate ensures the configuration is usable.
// All problems are reported at once.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains(Versions, c.Output.Version) {
		errs = append(errs, errorutil.NewWrapperError(ErrInvalidConfig,
			"output.version %q is not one of %s", c.Output.Version, strings.Join(Versions, ", ")))
	}
	if !slices.Contains(Formats, c.Output.Format) {
		errs = append(errs, errorutil.NewWrapperError(ErrInvalidConfig,
			"output.format %q is not one of %s", c.Output.Format, strings.Join(Formats, ", ")))
	}
	if _, err := vcard.LookupCharset(c.Input.Charset); err != nil {
		errs = append(errs, errorutil.NewWrapperError(ErrInvalidConfig, "input.charset: %v", err))
	}
	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, errorutil.NewWrapperError(ErrInvalidConfig, "logging.level: %v", err))
	}
	return errtrace.Wrap(errorutil.JoinPrefix("config validation failed", errs...))
}
