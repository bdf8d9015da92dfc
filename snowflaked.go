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

import "time"

// Default is process-wide registry used by package level functions
var Default = NewRegistry()

// Init adopts config for the process, see Registry.Init
func Init(config Config) (bool, error) { return Default.Init(config) }

// Generate returns next identifier, see Registry.Generate
func Generate(config Config) (ID, error) { return Default.Generate(config) }

// MustGenerate is like Generate but panics on error
func MustGenerate(config Config) ID {
	id, err := Default.Generate(config)
	if err != nil {
		panic(err)
	}
	return id
}

// Parse decomposes identifier using epoch adopted by the process
func Parse(id ID) (Parts, error) { return Default.Parse(id) }

// TimestampMs returns absolute timestamp of identifier in milliseconds
func TimestampMs(id ID) (uint64, error) { return Default.TimestampMs(id) }

// Time returns absolute timestamp of identifier
func Time(id ID) (time.Time, error) { return Default.Time(id) }

// MachineID returns ⟨𝒎⟩ fraction of identifier
func MachineID(id ID) uint16 { return id.MachineID() }

// Sequence returns ⟨𝒔⟩ fraction of identifier
func Sequence(id ID) uint16 { return id.Sequence() }

// IsInitialized is true iff the process has adopted config
func IsInitialized() bool { return Default.IsInitialized() }

// ConfiguredMachineID returns machine id adopted by the process
func ConfiguredMachineID() (uint16, bool) { return Default.ConfiguredMachineID() }
