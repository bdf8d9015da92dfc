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

import "fmt"

// Bit widths of identity fractions. The layout is fixed once identifiers
// are issued, changing it breaks decoding of existing values.
const (
	TimestampBits = 42
	MachineIDBits = 10
	SequenceBits  = 12
)

// Maximum values of identity fractions
const (
	MaxTimestamp = 1<<TimestampBits - 1
	MaxMachineID = 1<<MachineIDBits - 1
	MaxSequence  = 1<<SequenceBits - 1
)

const (
	machineIDShift = SequenceBits
	timestampShift = MachineIDBits + SequenceBits
)

/*
Encode packs ⟨𝒕, 𝒎, 𝒔⟩ into identifier. Timestamp is the offset in
milliseconds since the configured epoch. The function fails with
ErrOutOfRange if any fraction exceeds its bit width, the value is never
truncated.
*/
func Encode(t uint64, m uint16, s uint16) (ID, error) {
	switch {
	case t > MaxTimestamp:
		return 0, fmt.Errorf("%w: timestamp %d exceeds %d bits", ErrOutOfRange, t, TimestampBits)
	case m > MaxMachineID:
		return 0, fmt.Errorf("%w: machine id %d exceeds %d bits", ErrOutOfRange, m, MachineIDBits)
	case s > MaxSequence:
		return 0, fmt.Errorf("%w: sequence %d exceeds %d bits", ErrOutOfRange, s, SequenceBits)
	}

	return mkID(t, m, s), nil
}

// MustEncode is like Encode but panics on out of range fractions.
func MustEncode(t uint64, m uint16, s uint16) ID {
	id, err := Encode(t, m, s)
	if err != nil {
		panic(err)
	}
	return id
}

// fractions are validated by callers
func mkID(t uint64, m uint16, s uint16) ID {
	return ID(t<<timestampShift | uint64(m)<<machineIDShift | uint64(s))
}

// Decode unpacks identifier to ⟨𝒕, 𝒎, 𝒔⟩, it is inverse to Encode.
func Decode(id ID) (t uint64, m uint16, s uint16) {
	return id.Timestamp(), id.MachineID(), id.Sequence()
}

/*******************************************************************************

Lenses of Snowflake identifier

*******************************************************************************/

// Timestamp returns ⟨𝒕⟩ fraction, milliseconds since the configured epoch.
func (id ID) Timestamp() uint64 {
	return uint64(id) >> timestampShift
}

// MachineID returns ⟨𝒎⟩ fraction
func (id ID) MachineID() uint16 {
	return uint16(uint64(id) >> machineIDShift & MaxMachineID)
}

// Sequence returns ⟨𝒔⟩ fraction
func (id ID) Sequence() uint16 {
	return uint16(uint64(id) & MaxSequence)
}

// Before returns true if identifier a is allocated before b
func Before(a, b ID) bool { return a < b }

// After returns true if identifier a is allocated after b
func After(a, b ID) bool { return a > b }
