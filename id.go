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
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// String encodes identifier as decimal number
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Base64 encodes identifier to lexicographically sortable string
func (id ID) Base64() string {
	return encode64(id)
}

// FromString decodes identifier from decimal number
func FromString(val string) (ID, error) {
	x, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed snowflake identifier: %w", err)
	}
	return ID(x), nil
}

// FromBase64 decodes identifier from lexicographically sortable string
func FromBase64(val string) (ID, error) {
	return decode64(val)
}

/*******************************************************************************

Codecs

*******************************************************************************/

// MarshalText encodes identifier as decimal number
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText decodes identifier from decimal number
func (id *ID) UnmarshalText(b []byte) (err error) {
	*id, err = FromString(string(b))
	return
}

/*
MarshalJSON encodes identifier as JSON string. 64-bit integers are not safe
for JSON consumers that use double precision floats.
*/
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

// UnmarshalJSON decodes identifier either from JSON string or number
func (id *ID) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var val string
		if err := json.Unmarshal(b, &val); err != nil {
			return err
		}
		return id.UnmarshalText([]byte(val))
	}

	var val uint64
	if err := json.Unmarshal(b, &val); err != nil {
		return err
	}
	*id = ID(val)
	return nil
}

// Value implements driver.Valuer, identifier is stored as BIGINT.
func (id ID) Value() (driver.Value, error) {
	if uint64(id) > math.MaxInt64 {
		return nil, fmt.Errorf("%w: identifier %d does not fit BIGINT", ErrOutOfRange, uint64(id))
	}
	return int64(id), nil
}

// Scan implements sql.Scanner
func (id *ID) Scan(src any) (err error) {
	switch v := src.(type) {
	case int64:
		if v < 0 {
			return fmt.Errorf("%w: negative identifier %d", ErrOutOfRange, v)
		}
		*id = ID(v)
	case uint64:
		*id = ID(v)
	case []byte:
		*id, err = FromString(string(v))
	case string:
		*id, err = FromString(v)
	default:
		err = fmt.Errorf("unable to scan %T into snowflake identifier", src)
	}
	return
}
