// Copyright 2026 swaralipi04. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//Package engine runs the monte carlo performance analyses of a wind plant dataset
package engine

import (
	"fmt"
	"math/rand"
	"time"
)

//Version is the version of the analysis engine reported by the service
const Version = "0.9.0"

//hoursPerYear is the number of hours in an average year
const hoursPerYear = 8766.0

//Logger is the logging interface needed by the engine
type Logger interface {
	//Info logs info level messages
	Info(l ...interface{})
	//Warn logs warning level messages
	Warn(l ...interface{})
}

//nopLogger discards everything logged to it
type nopLogger struct{}

//Info implements Logger
func (nopLogger) Info(l ...interface{}) {}

//Warn implements Logger
func (nopLogger) Warn(l ...interface{}) {}

//FailureError is the error reported when an analysis can't produce a result out of the given data
type FailureError struct {
	//Analysis is the name of the analysis that failed
	Analysis string
	//Reason describes the failure
	Reason string
}

//Error returns the string representation of the error
func (f FailureError) Error() string {
	return fmt.Sprintf("%s analysis failed: %s", f.Analysis, f.Reason)
}

//Resolution is the period length the aep analysis aggregates the records at
type Resolution string

//Following constants have the supported aggregation resolutions
const (
	//ResolutionMonthStart aggregates by calendar month labelled at the month start
	ResolutionMonthStart Resolution = "MS"
	//ResolutionMonthEnd aggregates by calendar month labelled at the month end
	ResolutionMonthEnd Resolution = "ME"
	//ResolutionDay aggregates by calendar day
	ResolutionDay Resolution = "D"
	//ResolutionHour aggregates by the hour
	ResolutionHour Resolution = "h"
)

//IsValid returns true if the resolution is one of the supported ones
func (r Resolution) IsValid() bool {
	switch r {
	case ResolutionMonthStart, ResolutionMonthEnd, ResolutionDay, ResolutionHour:
		return true
	}
	return false
}

//truncate returns the start of the period the given time falls into
func (r Resolution) truncate(t time.Time) time.Time {
	t = t.UTC()
	switch r {
	case ResolutionMonthStart, ResolutionMonthEnd:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	case ResolutionDay:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, time.UTC)
	}
}

//hours returns the length of the period starting at the given time in hours
func (r Resolution) hours(period time.Time) float64 {
	switch r {
	case ResolutionMonthStart, ResolutionMonthEnd:
		return float64(daysIn(period)) * 24
	case ResolutionDay:
		return 24
	default:
		return 1
	}
}

//periodsPerYear returns the number of periods in an average year
func (r Resolution) periodsPerYear() float64 {
	switch r {
	case ResolutionMonthStart, ResolutionMonthEnd:
		return 12
	case ResolutionDay:
		return 365.25
	default:
		return hoursPerYear
	}
}

//Engine runs the analyses
type Engine struct {
	log    Logger
	seed   int64
	seeded bool
}

//Option configures the engine
type Option func(*Engine)

//WithLogger sets the logger used by the engine
func WithLogger(l Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

//WithSeed pins the random source of every analysis run for reproducible results
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
		e.seeded = true
	}
}

//New returns an engine ready to run the analyses
func New(opts ...Option) *Engine {
	e := &Engine{log: nopLogger{}}
	for _, o := range opts {
		o(e)
	}
	return e
}

//Version returns the version of the engine
func (e *Engine) Version() string {
	return Version
}

//rng returns the random source for one analysis run
func (e *Engine) rng() *rand.Rand {
	if e.seeded {
		return rand.New(rand.NewSource(e.seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
