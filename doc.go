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

/*
Package snowflaked implements process-wide generation of 64-bit Snowflake
identifiers for Golang applications. The identifier is a triple ⟨𝒕, 𝒎, 𝒔⟩
packed into a single unsigned 64-bit word, it is roughly sortable by creation
time and does not require coordination between generators as long as each
one runs with its own machine id.

# Identity Schema

A fixed size of 64-bit is used to implement identity schema

	     42 bit              10 bit    12 bit
	|------------------------|--------|--------|
	          ⟨𝒕⟩                ⟨𝒎⟩       ⟨𝒔⟩

↣ ⟨𝒕⟩ is 42-bit timestamp with millisecond precision, relative to the
configured epoch. The range covers about 139 years after the epoch.

↣ ⟨𝒎⟩ is 10-bit machine identifier assigned by the application. The library
never allocates it on its own behalf, ConfigFromEnv resolves the value from
environment or derives it from hostname and process id.

↣ ⟨𝒔⟩ is 12-bit monotonic sequence, which prevents collisions when multiple
identifiers are allocated within a single millisecond. The 12-bit value allows
4096 allocations per millisecond on a single generator.

The layout is fixed. Identifiers issued by the library stay decodable by any
later version of it.

# Process state

The package keeps at most one generator per process in the Default registry.
The first successful call of Init or Generate publishes the configuration;
subsequent calls within the same process reuse it and fail with
ErrConfigMismatch if they assert another machine id or epoch. The registry
records the pid of the process that created the state. A child process that
inherits the memory of its parent observes the foreign pid and silently
rebuilds the generator with the inherited configuration, so that parent and
child never share a sequence counter.

Applications that do not need the process-wide singleton construct own
Registry or Sequencer instances and pass them explicitly.

	id, err := snowflaked.Generate(snowflaked.Config{MachineID: 7})
	parts, err := snowflaked.Parse(id)
*/
package snowflaked
