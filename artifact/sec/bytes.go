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

package sec

import (
	"fmt"

	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/util"
)

// Returns a copy of b with the byte order reversed end to end.
func Reverse(b []byte) []byte {
	r := make([]byte, len(b))
	for i, c := range b {
		r[len(b)-1-i] = c
	}
	return r
}

// As Reverse, but zeroes b afterwards.  For key material.
func ReverseAndZero(b []byte) []byte {
	r := Reverse(b)
	Zero(b)
	return r
}

// Returns a copy of b with the two bytes of each 16-bit word swapped.
func ByteSwap16(b []byte) []byte {
	if len(b)%2 != 0 {
		panic(fmt.Sprintf("odd byte count %d", len(b)))
	}

	r := make([]byte, len(b))
	for i := 0; i < len(b); i += 2 {
		r[i] = b[i+1]
		r[i+1] = b[i]
	}
	return r
}

func Xor(a []byte, b []byte) ([]byte, error) {
	if len(a) != len(b) {
		return nil, util.FmtKindError(util.ERR_KIND_KEY_SIZE,
			"XOR operand size mismatch: %d != %d", len(a), len(b))
	}

	r := make([]byte, len(a))
	for i := range a {
		r[i] = a[i] ^ b[i]
	}
	return r, nil
}

// Overwrites key material.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func ivSizeError(size int) error {
	return util.FmtKindError(util.ERR_KIND_KEY_SIZE,
		"Unexpected IV size: %d != %d", size, AES_BLOCK_SIZE)
}
