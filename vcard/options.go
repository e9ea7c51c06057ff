package vcard

import (
	"log/slog"

	"github.com/ghettovoice/govcard/internal/log"
)

//go:generate go tool mockgen -package vcardmock -destination ../internal/testutil/vcardmock/observer.go github.com/ghettovoice/govcard/vcard Observer

// Observer is notified about every item and card constructed by the parser,
// before filters are applied.
type Observer interface {
	ObserveItem(it *Item)
	ObserveCard(c *Card)
}

type noopObserver struct{}

func (noopObserver) ObserveItem(*Item) {}

func (noopObserver) ObserveCard(*Card) {}

type logObserver struct {
	log *slog.Logger
}

// NewLogObserver returns an [Observer] that logs every constructed item and card at debug level.
func NewLogObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = log.Noop
	}
	return logObserver{logger}
}

func (o logObserver) ObserveItem(it *Item) { o.log.Debug("vcard item constructed", "item", it) }

func (o logObserver) ObserveCard(c *Card) { o.log.Debug("vcard constructed", "card", c) }

// ParseOptions configures parsing. A nil *ParseOptions is valid and means defaults.
type ParseOptions struct {
	// Source is a diagnostic identifier of the input, e.g. a file path.
	Source string
	// CardFilter rejects whole cards when it returns false.
	CardFilter func(c *Card) bool
	// ItemFilter rejects single items when it returns false.
	ItemFilter func(it *Item) bool
	// Observer is notified about every constructed item and card.
	// If nil, no-op observer is used.
	Observer Observer
	// Logger is the logger used by the parser.
	// If nil, the [log.Noop] is used.
	Logger *slog.Logger
}

func (o *ParseOptions) source() string {
	if o == nil {
		return ""
	}
	return o.Source
}

func (o *ParseOptions) observer() Observer {
	if o == nil || o.Observer == nil {
		return noopObserver{}
	}
	return o.Observer
}

func (o *ParseOptions) log() *slog.Logger {
	if o == nil || o.Logger == nil {
		return log.Noop
	}
	return o.Logger
}

func (o *ParseOptions) acceptItem(it *Item) bool {
	return o == nil || o.ItemFilter == nil || o.ItemFilter(it)
}

func (o *ParseOptions) acceptCard(c *Card) bool {
	return o == nil || o.CardFilter == nil || o.CardFilter(c)
}
