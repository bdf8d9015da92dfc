//
//  Copyright 2012 Dmitry Kolesnikov, All Rights Reserved
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.
//

package snowflaked

import (
	"sync/atomic"
	"time"
)

// Clock is global default instance of wall clock
var Clock Chronos = NewClock()

// Wall clock type, the default one
type clock struct {
	ticker func() uint64
}

func (clock clock) Now() uint64 { return clock.ticker() }

// Creates instance of wall clock
func NewClock(opts ...ClockOption) Chronos {
	clock := &clock{}
	defopt := []ClockOption{WithClockUnix()}

	for _, opt := range append(defopt, opts...) {
		opt(clock)
	}
	return clock
}

// ClockOption of default wall clock behavior.
type ClockOption func(*clock)

// WithClock configures a custom millisecond generator function
func WithClock(ticker func() uint64) ClockOption {
	return func(clock *clock) {
		clock.ticker = ticker
	}
}

// WithClockUnix configures unix timestamp time.Now().UnixMilli() as generator function
func WithClockUnix() ClockOption {
	return func(clock *clock) {
		clock.ticker = unixtime
	}
}

func unixtime() uint64 {
	return uint64(time.Now().UnixMilli())
}

// ClockMock is manually driven clock, safe for concurrent use
type ClockMock struct {
	ms atomic.Uint64
}

// Create mock instance of wall clock, frozen at given millisecond
func NewClockMock(ms uint64) *ClockMock {
	c := &ClockMock{}
	c.ms.Store(ms)
	return c
}

func (c *ClockMock) Now() uint64 { return c.ms.Load() }

// Set moves clock to the given millisecond, backward moves are allowed
func (c *ClockMock) Set(ms uint64) { c.ms.Store(ms) }

// Advance moves clock forward
func (c *ClockMock) Advance(ms uint64) { c.ms.Add(ms) }
