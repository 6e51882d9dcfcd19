// Package engine implements the committee scheduling and SLA deadline
// calculations: back-propagated stage deadlines for funding-request events,
// advisory capacity checking, candidate-date suggestion and committee
// recommendation scoring.
//
// An Engine is a pure function of the configuration snapshot it is built
// from: it performs no I/O, holds no mutable state, and is safe to use from
// any number of goroutines. Callers construct a fresh Engine per consistent
// snapshot read.
package engine

import (
	"github.com/example/committee-scheduler/internal/calendar"
	"github.com/example/committee-scheduler/internal/domain"
)

// Engine evaluates scheduling and deadline operations against an immutable
// configuration snapshot.
type Engine struct {
	snapshot domain.Snapshot
	cal      *calendar.WorkCalendar
}

// New builds an Engine for the snapshot. It fails with
// calendar.ErrEmptyCalendar when the snapshot configures no working
// weekdays.
func New(snapshot domain.Snapshot) (*Engine, error) {
	cal, err := snapshot.Calendar()
	if err != nil {
		return nil, err
	}
	return &Engine{snapshot: snapshot, cal: cal}, nil
}

// Calendar exposes the engine's work calendar for callers that need raw
// business-day arithmetic alongside engine decisions.
func (e *Engine) Calendar() *calendar.WorkCalendar {
	return e.cal
}
