// Package iclog records accepted IC messages for moderation.
package iclog

import (
	"context"
	"errors"
	"time"
)

// Event is one accepted IC message.
type Event struct {
	Time      time.Time
	Character string // character folder
	ShowName  string
	OOCName   string
	IPID      string
	AreaID    int
	AreaName  string
	Message   string
}

// Speaker returns the character and showname the way moderators read them.
func (e Event) Speaker() string {
	if e.ShowName == "" {
		return e.Character
	}
	return e.Character + " " + e.ShowName
}

// Sink receives IC log events.
type Sink interface {
	LogIC(ctx context.Context, ev Event) error
}

// MultiSink fans an event out to several sinks. Every sink is called even
// when an earlier one fails.
type MultiSink []Sink

// LogIC implements Sink.
func (m MultiSink) LogIC(ctx context.Context, ev Event) error {
	var errs []error
	for _, s := range m {
		if err := s.LogIC(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard drops every event.
var Discard Sink = discard{}

type discard struct{}

func (discard) LogIC(context.Context, Event) error { return nil }
