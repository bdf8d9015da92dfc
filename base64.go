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

// ordered alphabet, the encoded strings sort in the same order as values
var alphabet = []byte{
	'.', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'A', 'B', 'C', 'D', 'E',
	'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U',
	'V', 'W', 'X', 'Y', 'Z', '_', 'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j',
	'k', 'l', 'm', 'n', 'o', 'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z',
}

// 64 bits are split into 6-bit cells, the leading cell holds 4 bits only
const base64Size = 11

func encode64(id ID) string {
	b := make([]byte, base64Size)
	x := uint64(id)
	for i := base64Size - 1; i >= 0; i-- {
		b[i] = alphabet[x&0x3f]
		x >>= 6
	}
	return string(b)
}

func decode64(s string) (ID, error) {
	if len(s) != base64Size {
		return 0, fmt.Errorf("malformed snowflake identifier: %q", s)
	}

	x := uint64(0)
	for i := 0; i < len(s); i++ {
		c := s[i]
		var v byte
		switch {
		case c == '.':
			v = 0
		case c >= '0' && c <= '9':
			v = c - '0' + 1
		case c >= 'A' && c <= 'Z':
			v = c - 'A' + 11
		case c == '_':
			v = 37
		case c >= 'a' && c <= 'z':
			v = c - 'a' + 38
		default:
			return 0, fmt.Errorf("malformed snowflake identifier: %q", s)
		}

		// leading cell carries 4 bits
		if i == 0 && v > 0x0f {
			return 0, fmt.Errorf("malformed snowflake identifier: %q", s)
		}
		x = x<<6 | uint64(v)
	}

	return ID(x), nil
}
