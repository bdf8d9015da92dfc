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
	"hash/fnv"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/cast"
)

// Environment variables consulted by ConfigFromEnv
const (
	EnvMachineID       = "SNOWFLAKED_MACHINE_ID"
	EnvMachineIDLegacy = "MACHINE_ID"
	EnvEpoch           = "SNOWFLAKED_EPOCH"
)

// Config of generator, it is immutable once adopted by the process.
type Config struct {
	// Machine identifier ⟨𝒎⟩, 0 .. MaxMachineID
	MachineID uint16 `json:"machine_id"`
	// Custom epoch in milliseconds since unix epoch, 0 is unix epoch itself
	EpochMs uint64 `json:"epoch_ms"`
}

// WithEpoch returns copy of config with the epoch set to given instant
func (c Config) WithEpoch(t time.Time) Config {
	c.EpochMs = uint64(t.UnixMilli())
	return c
}

// Epoch returns the configured epoch as time.Time
func (c Config) Epoch() time.Time {
	return time.UnixMilli(int64(c.EpochMs))
}

func (c Config) String() string {
	return fmt.Sprintf("{machine_id: %d, epoch_ms: %d}", c.MachineID, c.EpochMs)
}

// Validate checks that machine id fits its fraction and the epoch is not
// in the future of the default Clock.
func (c Config) Validate() error {
	return c.validate(Clock)
}

// the epoch is checked against the clock used to generate identifiers
func (c Config) validate(clock Chronos) error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.MachineID, validation.Max(uint64(MaxMachineID))),
		validation.Field(&c.EpochMs, validation.Max(clock.Now()).Error("must not be in the future")),
	)
}

/*
ConfigFromEnv resolves the configuration from environment.

	SNOWFLAKED_MACHINE_ID, MACHINE_ID - machine id, reduced modulo 1024
	SNOWFLAKED_EPOCH                  - epoch either as milliseconds or RFC3339

The machine id falls back to hash of hostname mixed with process id if
neither variable is defined.
*/
func ConfigFromEnv() (Config, error) {
	var cfg Config

	id, err := machineIDFromEnv()
	if err != nil {
		return cfg, err
	}
	cfg.MachineID = id

	if val, has := os.LookupEnv(EnvEpoch); has && val != "" {
		epoch, err := ParseEpoch(val)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s: %w", EnvEpoch, err)
		}
		cfg.EpochMs = epoch
	}

	return cfg, cfg.Validate()
}

func machineIDFromEnv() (uint16, error) {
	for _, key := range []string{EnvMachineID, EnvMachineIDLegacy} {
		val, has := os.LookupEnv(key)
		if !has || val == "" {
			continue
		}

		id, err := parseDecimal(val)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", key, err)
		}
		return uint16(id % (MaxMachineID + 1)), nil
	}

	return hostMachineID(), nil
}

func hostMachineID() uint16 {
	host, _ := os.Hostname()

	h := fnv.New64a()
	h.Write([]byte(host))

	return uint16((h.Sum64() ^ uint64(os.Getpid())) % (MaxMachineID + 1))
}

// ParseEpoch accepts either integer milliseconds or a date string
func ParseEpoch(val string) (uint64, error) {
	if ms, err := parseDecimal(val); err == nil {
		return ms, nil
	}

	t, err := cast.ToTimeE(val)
	if err != nil {
		return 0, err
	}
	if t.UnixMilli() < 0 {
		return 0, fmt.Errorf("%w: epoch %s precedes unix epoch", ErrOutOfRange, val)
	}
	return uint64(t.UnixMilli()), nil
}

// parseDecimal reads unsigned base 10 integer. Zero padded values are
// decimal, prefixes 0x, 0o, 0b and digit separators are not accepted.
func parseDecimal(val string) (uint64, error) {
	if val == "" || strings.TrimLeft(val, "0123456789") != "" {
		return 0, fmt.Errorf("%q is not a decimal number", val)
	}

	// cast parses with base prefix, leading zeros would turn it to octal
	digits := strings.TrimLeft(val, "0")
	if digits == "" {
		return 0, nil
	}

	return cast.ToUint64E(digits)
}
