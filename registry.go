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
	"os"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Logger is used by registries that are not configured with own logger.
// The library is silent by default.
var Logger = zerolog.Nop()

// ProcessState is immutable snapshot of generator published by the process.
// It is replaced as a whole, never updated field by field.
type ProcessState struct {
	config    Config
	sequencer *Sequencer
	pid       int
}

// Config adopted by the process
func (s *ProcessState) Config() Config { return s.config }

// Sequencer owned by the process
func (s *ProcessState) Sequencer() *Sequencer { return s.sequencer }

// Pid of the process that created the state
func (s *ProcessState) Pid() int { return s.pid }

// status of the slot as seen by the calling process
type slotStatus int

const (
	slotEmpty slotStatus = iota
	// state is created by the calling process
	slotReady
	// state is inherited from the parent process
	slotForeign
)

/*
Registry owns at most one ProcessState. The first successful initialization
wins, concurrent candidates are discarded. The state inherited by forked
process is transparently rebuilt with the same config and a fresh sequencer.
*/
type Registry struct {
	slot    atomic.Pointer[ProcessState]
	pid     func() int
	seqopts []SequencerOption
	logger  *zerolog.Logger
}

// RegistryOption configures Registry
type RegistryOption func(*Registry)

// WithPid configures the source of process identity
func WithPid(pid func() int) RegistryOption {
	return func(r *Registry) {
		r.pid = pid
	}
}

// WithSequencerOptions configures sequencers built by registry
func WithSequencerOptions(opts ...SequencerOption) RegistryOption {
	return func(r *Registry) {
		r.seqopts = append(r.seqopts, opts...)
	}
}

// WithLogger configures logger of the registry
func WithLogger(logger zerolog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = &logger
	}
}

// NewRegistry creates empty registry
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{pid: os.Getpid}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *Registry) log() *zerolog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return &Logger
}

func (r *Registry) load() (*ProcessState, slotStatus, int) {
	pid := r.pid()
	state := r.slot.Load()

	switch {
	case state == nil:
		return nil, slotEmpty, pid
	case state.pid == pid:
		return state, slotReady, pid
	default:
		return state, slotForeign, pid
	}
}

/*
EnsureInitialized returns the state of calling process, publishing a new one
if the slot is empty or owned by another process. The flag is true if this
call has published the state. The given config is ignored if the process has
already adopted one.
*/
func (r *Registry) EnsureInitialized(config Config) (*ProcessState, bool, error) {
	for {
		state, status, pid := r.load()

		switch status {
		case slotReady:
			return state, false, nil
		case slotEmpty:
			// config is taken from the caller
		case slotForeign:
			config = state.config
		}

		seq, err := NewSequencer(config, r.seqopts...)
		if err != nil {
			return nil, false, err
		}

		candidate := &ProcessState{config: config, sequencer: seq, pid: pid}
		if !r.slot.CompareAndSwap(state, candidate) {
			// another goroutine has published the state, adopt it
			continue
		}

		if status == slotForeign {
			r.log().Warn().
				Int("parent_pid", state.pid).
				Int("pid", pid).
				Uint16("machine_id", config.MachineID).
				Msg("fork detected, generator rebuilt")
		} else {
			r.log().Info().
				Int("pid", pid).
				Uint16("machine_id", config.MachineID).
				Uint64("epoch_ms", config.EpochMs).
				Msg("generator initialized")
		}

		return candidate, true, nil
	}
}

// ValidateConfig fails with ErrConfigMismatch if the state is adopted with
// other machine id or epoch.
func (r *Registry) ValidateConfig(state *ProcessState, config Config) error {
	if state.config != config {
		r.log().Debug().
			Stringer("adopted", state.config).
			Stringer("asserted", config).
			Msg("config mismatch")
		return &ConfigMismatchError{Adopted: state.config, Asserted: config}
	}
	return nil
}

// Init adopts config for the process, returns true if this call has
// published the state. Config of already initialized process is not changed.
func (r *Registry) Init(config Config) (bool, error) {
	state, created, err := r.EnsureInitialized(config)
	if err != nil {
		return false, err
	}

	if !created && state.config != config {
		r.log().Warn().
			Stringer("adopted", state.config).
			Stringer("asserted", config).
			Msg("generator is already initialized, config is ignored")
	}

	return created, nil
}

// Generate initializes the process if needed, asserts the config and
// returns next identifier.
func (r *Registry) Generate(config Config) (ID, error) {
	state, _, err := r.EnsureInitialized(config)
	if err != nil {
		return 0, err
	}

	if err := r.ValidateConfig(state, config); err != nil {
		return 0, err
	}

	return state.sequencer.Generate()
}

// IsInitialized is true iff the state is created by calling process
func (r *Registry) IsInitialized() bool {
	_, status, _ := r.load()

	switch status {
	case slotReady:
		return true
	case slotEmpty, slotForeign:
		return false
	}
	return false
}

// ConfiguredMachineID returns machine id adopted by calling process
func (r *Registry) ConfiguredMachineID() (uint16, bool) {
	state, status, _ := r.load()

	switch status {
	case slotReady:
		return state.config.MachineID, true
	case slotEmpty, slotForeign:
		return 0, false
	}
	return 0, false
}

/*
Config returns configuration known to the process. The config inherited
from parent process is returned as well, it is equal to one the process
adopts on its first Generate.
*/
func (r *Registry) Config() (Config, error) {
	state, status, _ := r.load()

	switch status {
	case slotReady, slotForeign:
		return state.config, nil
	case slotEmpty:
		return Config{}, ErrNotInitialized
	}
	return Config{}, ErrNotInitialized
}

// Parse decomposes identifier, the timestamp is absolute.
func (r *Registry) Parse(id ID) (Parts, error) {
	ms, err := r.TimestampMs(id)
	if err != nil {
		return Parts{}, err
	}

	return Parts{
		TimestampMs: ms,
		MachineID:   id.MachineID(),
		Sequence:    id.Sequence(),
	}, nil
}

// TimestampMs returns absolute timestamp of identifier in milliseconds
// since unix epoch.
func (r *Registry) TimestampMs(id ID) (uint64, error) {
	config, err := r.Config()
	if err != nil {
		return 0, err
	}

	return saturatingAdd(id.Timestamp(), config.EpochMs), nil
}

// Time returns absolute timestamp of identifier
func (r *Registry) Time(id ID) (time.Time, error) {
	ms, err := r.TimestampMs(id)
	if err != nil {
		return time.Time{}, err
	}
	return unixMilli(ms), nil
}

func saturatingAdd(a, b uint64) uint64 {
	if c := a + b; c >= a {
		return c
	}
	return ^uint64(0)
}
