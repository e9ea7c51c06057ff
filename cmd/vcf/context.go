package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/govcard/internal/config"
	"github.com/ghettovoice/govcard/internal/log"
	"github.com/ghettovoice/govcard/vcard"
)

type commandContext struct {
	configFlag   string
	charsetFlag  string
	logLevelFlag string
	devFlag      bool

	config     *config.Config
	configPath string
	logger     *slog.Logger
}

func newCommandContext() *commandContext {
	return &commandContext{logger: log.Noop}
}

// setup loads the configuration and builds the logger, flags override the file values.
func (c *commandContext) setup(cmd *cobra.Command) error {
	cfg, path, exists, err := config.Load(strings.TrimSpace(c.configFlag))
	if err != nil {
		return errtrace.Wrap(err)
	}
	if c.charsetFlag != "" {
		cfg.Input.Charset = c.charsetFlag
	}
	if c.logLevelFlag != "" {
		cfg.Logging.Level = c.logLevelFlag
	}
	if c.devFlag {
		cfg.Logging.Dev = true
	}

	lvl, err := log.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return errtrace.Wrap(err)
	}
	c.logger = log.New(cmd.ErrOrStderr(), &log.Options{Level: lvl, Dev: cfg.Logging.Dev})
	c.config, c.configPath = cfg, path
	c.logger.Debug("configuration loaded", "path", path, "exists", exists)
	return nil
}

func (c *commandContext) cfg() *config.Config {
	if c.config == nil {
		cfg := config.Default()
		c.config = &cfg
	}
	return c.config
}

func (c *commandContext) parseOptions(source string) vcard.ParseOptions {
	return vcard.ParseOptions{
		Source:   source,
		Observer: vcard.NewLogObserver(c.logger),
		Logger:   c.logger,
	}
}

// readCards parses every named file, or stdin when there are none or the name is "-".
func (c *commandContext) readCards(cmd *cobra.Command, paths []string, opts vcard.ParseOptions) ([]*vcard.Card, error) {
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	var cards []*vcard.Card
	for _, path := range paths {
		var (
			cs  []*vcard.Card
			err error
		)
		if path == "-" {
			cs, err = c.readStdin(cmd.InOrStdin(), opts)
		} else {
			opts.Source = path
			cs, _, err = vcard.ReadFile(path, &vcard.ReadOptions{ParseOptions: opts, Charset: c.cfg().Input.Charset})
		}
		if err != nil {
			return nil, errtrace.Errorf("read %s: %w", path, err)
		}
		c.logger.Info("vcards read", "source", path, "count", len(cs))
		cards = append(cards, cs...)
	}
	return cards, nil
}

func (c *commandContext) readStdin(r io.Reader, opts vcard.ParseOptions) ([]*vcard.Card, error) {
	enc, err := vcard.LookupCharset(c.cfg().Input.Charset)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	opts.Source = "<stdin>"
	return errtrace.Wrap2(vcard.ParseReader(enc.NewDecoder().Reader(r), &opts))
}

// createOutput opens the output file, or returns stdout when path is empty or "-".
func createOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errtrace.Wrap(err)
	}
	return f, f.Close, nil
}
