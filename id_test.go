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
	"encoding/json"
	"errors"
	"math"
	"sort"
	"testing"
	"time"

	"github.com/fogfish/it/v2"
	"github.com/fogfish/snowflaked"
)

func TestString(t *testing.T) {
	id := snowflaked.MustEncode(1700000000000, 3, 1)
	val, err := snowflaked.FromString(id.String())

	it.Then(t).Should(
		it.Nil(err),
		it.Equal(val, id),
	)

	_, err = snowflaked.FromString("x123")
	it.Then(t).ShouldNot(
		it.Nil(err),
	)
}

func TestBase64(t *testing.T) {
	for _, id := range []snowflaked.ID{0, 1, 1 << 22, math.MaxUint64, snowflaked.MustEncode(1700000000000, 3, 1)} {
		s := id.Base64()
		val, err := snowflaked.FromBase64(s)

		it.Then(t).Should(
			it.Nil(err),
			it.Equal(len(s), 11),
			it.Equal(val, id),
		)
	}

	for _, s := range []string{"", "...........x", "z..........", "....!......"} {
		_, err := snowflaked.FromBase64(s)
		it.Then(t).ShouldNot(
			it.Nil(err),
		)
	}
}

func TestBase64Sortable(t *testing.T) {
	ids := []snowflaked.ID{
		snowflaked.MustEncode(1, 0, 0),
		snowflaked.MustEncode(1, 0, 1),
		snowflaked.MustEncode(1, 1, 0),
		snowflaked.MustEncode(64, 0, 0),
		snowflaked.MustEncode(snowflaked.MaxTimestamp, 0, 0),
	}

	seq := make([]string, len(ids))
	for i, id := range ids {
		seq[i] = id.Base64()
	}

	it.Then(t).Should(
		it.True(sort.StringsAreSorted(seq)),
	)
}

func TestJSON(t *testing.T) {
	type Struct struct {
		ID snowflaked.ID `json:"id"`
	}

	id := snowflaked.MustEncode(1700000000000, 3, 1)
	b, err := json.Marshal(Struct{ID: id})
	it.Then(t).Should(
		it.Nil(err),
		it.Equal(string(b), `{"id":"`+id.String()+`"}`),
	)

	var a, c Struct
	it.Then(t).Should(
		it.Nil(json.Unmarshal(b, &a)),
		it.Equal(a.ID, id),
		it.Nil(json.Unmarshal([]byte(`{"id":`+id.String()+`}`), &c)),
		it.Equal(c.ID, id),
	)
}

func TestSQL(t *testing.T) {
	id := snowflaked.MustEncode(1700000000000, 3, 1)

	v, err := id.Value()
	it.Then(t).Should(
		it.Nil(err),
		it.Equal(v.(int64), int64(id)),
	)

	for _, src := range []any{int64(id), uint64(id), []byte(id.String()), id.String()} {
		var val snowflaked.ID
		it.Then(t).Should(
			it.Nil(val.Scan(src)),
			it.Equal(val, id),
		)
	}

	var val snowflaked.ID
	it.Then(t).Should(
		it.True(errors.Is(val.Scan(int64(-1)), snowflaked.ErrOutOfRange)),
	)
	it.Then(t).ShouldNot(
		it.Nil(val.Scan(3.14)),
	)

	_, err = snowflaked.ID(math.MaxUint64).Value()
	it.Then(t).Should(
		it.True(errors.Is(err, snowflaked.ErrOutOfRange)),
	)
}

func TestPartsTimeClamp(t *testing.T) {
	p := snowflaked.Parts{TimestampMs: math.MaxUint64}
	q := snowflaked.Parts{TimestampMs: math.MaxInt64 + 1}

	it.Then(t).Should(
		it.True(p.Time().After(time.Unix(0, 0))),
		it.Equal(p.Time().UnixMilli(), math.MaxInt64),
		it.True(q.Time().Equal(p.Time())),
	)
}
