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

package snowflaked_test

import (
	"errors"
	"testing"
	"time"

	"github.com/fogfish/it/v2"
	"github.com/fogfish/snowflaked"
)

func TestConfigValidate(t *testing.T) {
	it.Then(t).Should(
		it.Nil(snowflaked.Config{}.Validate()),
		it.Nil(snowflaked.Config{MachineID: snowflaked.MaxMachineID, EpochMs: 1700000000000}.Validate()),
	)

	future := uint64(time.Now().Add(time.Hour).UnixMilli())
	it.Then(t).ShouldNot(
		it.Nil(snowflaked.Config{MachineID: snowflaked.MaxMachineID + 1}.Validate()),
		it.Nil(snowflaked.Config{EpochMs: future}.Validate()),
	)
}

func TestConfigEpoch(t *testing.T) {
	epoch := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := snowflaked.Config{MachineID: 1}.WithEpoch(epoch)

	it.Then(t).Should(
		it.Equal(cfg.EpochMs, 1672531200000),
		it.True(cfg.Epoch().Equal(epoch)),
		it.Equal(cfg.String(), "{machine_id: 1, epoch_ms: 1672531200000}"),
	)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(snowflaked.EnvMachineID, "17")
	t.Setenv(snowflaked.EnvMachineIDLegacy, "18")
	t.Setenv(snowflaked.EnvEpoch, "1672531200000")

	cfg, err := snowflaked.ConfigFromEnv()

	it.Then(t).Should(
		it.Nil(err),
		it.Equal(cfg, snowflaked.Config{MachineID: 17, EpochMs: 1672531200000}),
	)
}

func TestConfigFromEnvDecimal(t *testing.T) {
	spec := map[string]uint16{
		"010":  10,
		"0009": 9,
		"0":    0,
		"000":  0,
		"1023": 1023,
	}

	for val, expect := range spec {
		t.Setenv(snowflaked.EnvMachineID, val)
		t.Setenv(snowflaked.EnvEpoch, "")

		cfg, err := snowflaked.ConfigFromEnv()
		it.Then(t).Should(
			it.Nil(err),
			it.Equal(cfg.MachineID, expect),
		)
	}

	for _, val := range []string{"0x10", "0o10", "0b10", "1_0", "+10", " 10"} {
		t.Setenv(snowflaked.EnvMachineID, val)

		_, err := snowflaked.ConfigFromEnv()
		it.Then(t).ShouldNot(
			it.Nil(err),
		)
	}
}

func TestConfigFromEnvEpochDecimal(t *testing.T) {
	t.Setenv(snowflaked.EnvMachineID, "1")
	t.Setenv(snowflaked.EnvEpoch, "01672531200000")

	cfg, err := snowflaked.ConfigFromEnv()
	it.Then(t).Should(
		it.Nil(err),
		it.Equal(cfg.EpochMs, 1672531200000),
	)

	ms, err := snowflaked.ParseEpoch("010")
	it.Then(t).Should(
		it.Nil(err),
		it.Equal(ms, 10),
	)
}

func TestConfigFromEnvLegacy(t *testing.T) {
	t.Setenv(snowflaked.EnvMachineID, "")
	t.Setenv(snowflaked.EnvMachineIDLegacy, "1030")
	t.Setenv(snowflaked.EnvEpoch, "2023-01-01T00:00:00Z")

	cfg, err := snowflaked.ConfigFromEnv()

	it.Then(t).Should(
		it.Nil(err),
		// reduced modulo 1024
		it.Equal(cfg.MachineID, 6),
		it.Equal(cfg.EpochMs, 1672531200000),
	)
}

func TestConfigFromEnvDefault(t *testing.T) {
	t.Setenv(snowflaked.EnvMachineID, "")
	t.Setenv(snowflaked.EnvMachineIDLegacy, "")
	t.Setenv(snowflaked.EnvEpoch, "")

	a, errA := snowflaked.ConfigFromEnv()
	b, errB := snowflaked.ConfigFromEnv()

	it.Then(t).Should(
		it.Nil(errA),
		it.Nil(errB),
		it.Equal(a, b),
		it.True(a.MachineID <= snowflaked.MaxMachineID),
		it.Equal(a.EpochMs, 0),
	)
}

func TestConfigFromEnvInvalid(t *testing.T) {
	t.Setenv(snowflaked.EnvMachineID, "abc")
	_, err := snowflaked.ConfigFromEnv()
	it.Then(t).ShouldNot(it.Nil(err))

	t.Setenv(snowflaked.EnvMachineID, "1")
	t.Setenv(snowflaked.EnvEpoch, "not a date")
	_, err = snowflaked.ConfigFromEnv()
	it.Then(t).ShouldNot(it.Nil(err))

	t.Setenv(snowflaked.EnvEpoch, "1960-01-01T00:00:00Z")
	_, err = snowflaked.ConfigFromEnv()
	it.Then(t).Should(
		it.True(errors.Is(err, snowflaked.ErrOutOfRange)),
	)
}
