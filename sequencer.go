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
	"fmt"
	"sync"
	"time"
)

// Default retry budget while waiting for the next millisecond after the
// sequence is exhausted.
const (
	DefaultRetryAttempts = 64
	DefaultRetryBackoff  = 250 * time.Microsecond
)

/*
Sequencer produces unique identifiers for fixed machine id and epoch.
Identifiers are strictly increasing within single instance of Sequencer
under arbitrary concurrent calls.

The clock regression is fatal for the call: Generate fails with
ErrClockRegression and leaves the state untouched. The sequence exhaustion
within single millisecond makes the call to wait for the next one, the wait
is bounded by retry budget, ErrSequenceExhausted is returned if the clock
does not advance.
*/
type Sequencer struct {
	config  Config
	clock   Chronos
	retries int
	backoff time.Duration

	// last and seq are updated as a single unit under mu
	mu   sync.Mutex
	last uint64
	seq  uint16
	// false until first identifier is issued
	used bool
}

// SequencerOption configures Sequencer
type SequencerOption func(*Sequencer)

// WithChronos configures the clock used by sequencer
func WithChronos(clock Chronos) SequencerOption {
	return func(s *Sequencer) {
		s.clock = clock
	}
}

// WithRetry configures retry budget used on sequence exhaustion
func WithRetry(attempts int, backoff time.Duration) SequencerOption {
	return func(s *Sequencer) {
		s.retries = attempts
		s.backoff = backoff
	}
}

// NewSequencer creates sequencer for given config
func NewSequencer(config Config, opts ...SequencerOption) (*Sequencer, error) {
	s := &Sequencer{
		config:  config,
		clock:   Clock,
		retries: DefaultRetryAttempts,
		backoff: DefaultRetryBackoff,
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := config.validate(s.clock); err != nil {
		return nil, err
	}

	return s, nil
}

// Config returns configuration of the sequencer
func (s *Sequencer) Config() Config { return s.config }

// Generate returns next unique identifier
func (s *Sequencer) Generate() (ID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.offset()
	if err != nil {
		return 0, err
	}

	switch {
	case !s.used || t > s.last:
		s.commit(t, 0)
	case t == s.last:
		if s.seq < MaxSequence {
			s.commit(t, s.seq+1)
			break
		}

		t, err = s.waitNext()
		if err != nil {
			return 0, err
		}
		s.commit(t, 0)
	default:
		return 0, &ClockRegressionError{Last: s.last + s.config.EpochMs, Now: t + s.config.EpochMs}
	}

	return mkID(s.last, s.config.MachineID, s.seq), nil
}

func (s *Sequencer) commit(t uint64, seq uint16) {
	s.last, s.seq, s.used = t, seq, true
}

// offset returns milliseconds since the configured epoch
func (s *Sequencer) offset() (uint64, error) {
	now := s.clock.Now()
	if now < s.config.EpochMs {
		return 0, fmt.Errorf("%w: clock %d ms precedes epoch %d ms", ErrTimestampOverflow, now, s.config.EpochMs)
	}

	t := now - s.config.EpochMs
	if t > MaxTimestamp {
		return 0, fmt.Errorf("%w: offset %d ms exceeds %d bits", ErrTimestampOverflow, t, TimestampBits)
	}

	return t, nil
}

// waitNext spins until clock moves beyond the last millisecond, the caller
// holds the lock.
func (s *Sequencer) waitNext() (uint64, error) {
	for i := 0; i < s.retries; i++ {
		time.Sleep(s.backoff)

		t, err := s.offset()
		if err != nil {
			return 0, err
		}

		switch {
		case t > s.last:
			return t, nil
		case t < s.last:
			return 0, &ClockRegressionError{Last: s.last + s.config.EpochMs, Now: t + s.config.EpochMs}
		}
	}

	return 0, fmt.Errorf("%w: %d identifiers issued at %d ms, clock did not advance after %d attempts",
		ErrSequenceExhausted, MaxSequence+1, s.last+s.config.EpochMs, s.retries)
}
