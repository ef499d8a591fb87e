/**
 * Licensed to the Apache Software Foundation (ASF) under one
 * or more contributor license agreements.  See the NOTICE file
 * distributed with this work for additional information
 * regarding copyright ownership.  The ASF licenses this file
 * to you under the Apache License, Version 2.0 (the
 * "License"); you may not use this file except in compliance
 * with the License.  You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package xuv

import (
	"fmt"
	"os"
	"strings"

	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/util"
)

// Endian selects how each 16-bit word collapses to two bytes.
type Endian int

const (
	ENDIAN_BIG Endian = iota
	ENDIAN_LITTLE
)

const ENV_XUV_ENDIAN = "SECURITYCMD_XUVE"

func (e Endian) String() string {
	if e == ENDIAN_LITTLE {
		return "U16LE"
	}
	return "U16BE"
}

// Parses one of B, BIG, L or LITTLE (case insensitive).
func ParseEndian(s string) (Endian, error) {
	switch strings.ToUpper(s) {
	case "B", "BIG":
		return ENDIAN_BIG, nil
	case "L", "LITTLE":
		return ENDIAN_LITTLE, nil
	default:
		return ENDIAN_BIG, util.FmtKindError(util.ERR_KIND_VALIDATION,
			"Invalid endian \"%s\"; must be one of B, BIG, L or LITTLE", s)
	}
}

// Returns the default endianness: little if SECURITYCMD_XUVE starts with
// L, big otherwise.
func EnvEndian() Endian {
	v := os.Getenv(ENV_XUV_ENDIAN)
	if strings.HasPrefix(strings.ToUpper(v), "L") {
		return ENDIAN_LITTLE
	}
	return ENDIAN_BIG
}

// Flatten returns the words in [first, last] as a contiguous block of
// 2*(last-first+1) bytes.  Absent addresses read as fill in both bytes.
func (img *Image) Flatten(first uint32, last uint32, fill byte,
	e Endian) []byte {

	if last < first {
		panic(fmt.Sprintf("invalid xuv range: 0x%x > 0x%x", first, last))
	}

	block := make([]byte, 2*(uint64(last)-uint64(first)+1))
	for i := range block {
		block[i] = fill
	}

	for addr, val := range img.Data {
		if addr < first || addr > last {
			continue
		}

		off := 2 * (uint64(addr) - uint64(first))
		hi := byte(val >> 8)
		lo := byte(val)
		if e == ENDIAN_BIG {
			block[off] = hi
			block[off+1] = lo
		} else {
			block[off] = lo
			block[off+1] = hi
		}
	}

	return block
}

// Incorporate writes one word per byte pair of b, starting at dest.
func (img *Image) Incorporate(dest uint32, b []byte, e Endian) {
	if len(b)%2 != 0 {
		panic(fmt.Sprintf("odd byte block length %d", len(b)))
	}

	addr := dest
	for i := 0; i < len(b); i += 2 {
		if e == ENDIAN_BIG {
			img.Data[addr] = uint16(b[i])<<8 | uint16(b[i+1])
		} else {
			img.Data[addr] = uint16(b[i+1])<<8 | uint16(b[i])
		}
		addr++
	}
}
