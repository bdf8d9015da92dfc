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
	"math"
	"time"
)

// Chronos is an abstraction of wall clock used by the library.
type Chronos interface {
	// Now returns milliseconds elapsed since unix epoch
	Now() uint64
}

/*
ID is native representation of Snowflake identifier

	     42 bit              10 bit    12 bit
	|------------------------|--------|--------|
	          ⟨𝒕⟩                ⟨𝒎⟩       ⟨𝒔⟩
*/
type ID uint64

// Parts is a decomposition of identifier into its fractions. Unlike ID
// lenses, the timestamp is absolute: the epoch offset is already applied.
type Parts struct {
	TimestampMs uint64 `json:"timestamp_ms"`
	MachineID   uint16 `json:"machine_id"`
	Sequence    uint16 `json:"sequence"`
}

// Time converts the timestamp fraction of parts to time.Time
func (p Parts) Time() time.Time {
	return unixMilli(p.TimestampMs)
}

// unixMilli clamps milliseconds to the range of time.UnixMilli
func unixMilli(ms uint64) time.Time {
	if ms > math.MaxInt64 {
		ms = math.MaxInt64
	}
	return time.UnixMilli(int64(ms))
}
