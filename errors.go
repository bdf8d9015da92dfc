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
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned when fraction value exceeds its bit width
	ErrOutOfRange = errors.New("snowflaked: value out of range")

	// ErrConfigMismatch is returned when the call asserts machine id or epoch
	// other than one already adopted by the process.
	ErrConfigMismatch = errors.New("snowflaked: generator already initialized with a different machine id or epoch for this process")

	// ErrNotInitialized is returned by operations that need configuration
	// before any successful Init or Generate.
	ErrNotInitialized = errors.New("snowflaked: generator not initialized")

	// ErrClockRegression is returned when wall clock moves backward.
	ErrClockRegression = errors.New("snowflaked: clock moved backwards")

	// ErrSequenceExhausted is returned when the clock does not advance to
	// the next millisecond within retry budget.
	ErrSequenceExhausted = errors.New("snowflaked: sequence exhausted")

	// ErrTimestampOverflow is returned when the clock is outside of the
	// range representable by the timestamp fraction.
	ErrTimestampOverflow = errors.New("snowflaked: timestamp outside of epoch range")
)

// ConfigMismatchError carries both adopted and asserted configuration.
type ConfigMismatchError struct {
	Adopted  Config
	Asserted Config
}

func (e *ConfigMismatchError) Error() string {
	return fmt.Sprintf("%s: adopted %s, asserted %s", ErrConfigMismatch, e.Adopted, e.Asserted)
}

func (e *ConfigMismatchError) Unwrap() error { return ErrConfigMismatch }

// ClockRegressionError carries the observed and the last issued millisecond.
type ClockRegressionError struct {
	Last uint64
	Now  uint64
}

func (e *ClockRegressionError) Error() string {
	return fmt.Sprintf("%s: last %d ms, now %d ms", ErrClockRegression, e.Last, e.Now)
}

func (e *ClockRegressionError) Unwrap() error { return ErrClockRegression }
