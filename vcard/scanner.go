package vcard

import (
	"context"
	"iter"
	"log/slog"

	"braces.dev/errtrace"
	"github.com/qmuntal/stateless"

	"github.com/ghettovoice/govcard/internal/log"
	"github.com/ghettovoice/govcard/internal/util"
)

type scanState string

const (
	scanIdle   scanState = "idle"
	scanRecord scanState = "record"
)

type scanTrigger string

const (
	trigBegin scanTrigger = "begin"
	trigEnd   scanTrigger = "end"
	trigLine  scanTrigger = "line"
)

const (
	lineBegin = PropBegin + ":VCARD"
	lineEnd   = PropEnd + ":VCARD"
)

// recordScanner groups logical lines into cards bounded by BEGIN:VCARD/END:VCARD.
//
// Lines outside of a record are buffered too, so a dangling END:VCARD still
// produces a card. A record left open at the end of input is dropped.
type recordScanner struct {
	fsm   *stateless.StateMachine
	opts  *ParseOptions
	buf   []string
	cards []*Card
}

func newRecordScanner(opts *ParseOptions) *recordScanner {
	s := &recordScanner{opts: opts}

	s.fsm = stateless.NewStateMachine(scanIdle)
	s.fsm.Configure(scanIdle).
		OnEntryFrom(trigEnd, s.finalize).
		Permit(trigBegin, scanRecord).
		InternalTransition(trigLine, s.bufferLine).
		InternalTransition(trigEnd, s.finalize)
	s.fsm.Configure(scanRecord).
		OnEntryFrom(trigBegin, s.reset).
		PermitReentry(trigBegin).
		InternalTransition(trigLine, s.bufferLine).
		Permit(trigEnd, scanIdle)
	return s
}

func (s *recordScanner) reset(context.Context, ...any) error {
	s.buf = s.buf[:0]
	return nil
}

func (s *recordScanner) bufferLine(_ context.Context, args ...any) error {
	s.buf = append(s.buf, args[0].(string)) //nolint:forcetypeassert
	return nil
}

func (s *recordScanner) finalize(context.Context, ...any) error {
	c := NewCard(s.buf, s.opts)
	s.buf = s.buf[:0]
	if !s.opts.acceptCard(c) {
		s.opts.log().Debug("vcard rejected by filter", "card", c)
		return nil
	}
	s.cards = append(s.cards, c)
	return nil
}

// feed pushes a single logical line into the state machine.
func (s *recordScanner) feed(line string) error {
	switch {
	case util.EqFold(line, lineBegin):
		return errtrace.Wrap(s.fsm.Fire(trigBegin))
	case util.EqFold(line, lineEnd):
		return errtrace.Wrap(s.fsm.Fire(trigEnd))
	default:
		return errtrace.Wrap(s.fsm.Fire(trigLine, line))
	}
}

// scan consumes all lines and returns the completed cards.
func (s *recordScanner) scan(lines iter.Seq2[string, error]) ([]*Card, error) {
	for line, err := range lines {
		if err != nil {
			return s.cards, errtrace.Wrap(err)
		}
		if err := s.feed(line); err != nil {
			return s.cards, errtrace.Wrap(err)
		}
	}
	if state, _ := s.fsm.State(context.Background()); state == scanRecord && len(s.buf) > 0 {
		s.opts.log().LogAttrs(context.Background(), slog.LevelDebug, "unterminated vcard dropped",
			slog.String("source", s.opts.source()),
			slog.Int("lines", len(s.buf)),
			slog.Any("card", log.CalcValue(func() any { return NewCard(s.buf, nil) })),
		)
	}
	return s.cards, nil
}
