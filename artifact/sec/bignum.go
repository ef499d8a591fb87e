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
	"encoding/base64"
	"fmt"
	"math/big"
	"strings"

	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/util"
)

// Parses an unsigned hexadecimal string.  The error names the first
// invalid digit.
func HexToBigInt(s string) (*big.Int, error) {
	if s == "" {
		return nil, util.NewKindError(util.ERR_KIND_VALIDATION,
			"Empty hexadecimal string")
	}

	for i := 0; i < len(s); i++ {
		if !isHex(s[i]) {
			return nil, util.FmtKindError(util.ERR_KIND_VALIDATION,
				"Invalid hexadecimal digit '%c' in \"%s\"", s[i], s)
		}
	}

	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, util.FmtKindError(util.ERR_KIND_VALIDATION,
			"Invalid hexadecimal string \"%s\"", s)
	}

	return n, nil
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'f') ||
		(c >= 'A' && c <= 'F')
}

// Decodes base64 per RFC 4648.  Padding is mandatory and the '='
// characters may only occupy the final one or two positions.
func DecodeBase64Strict(s string) ([]byte, error) {
	padding := strings.Count(s, "=")

	switch {
	case len(s) < 4 || len(s)%4 != 0:
		return nil, util.NewKindError(util.ERR_KIND_VALIDATION,
			"Invalid base64 string. Padding is mandatory. "+
				"Length must be a multiple of four.")

	case padding > 2:
		return nil, util.NewKindError(util.ERR_KIND_VALIDATION,
			"Excessive padding in base64 string.")

	case (padding >= 1 && s[len(s)-1] != '=') ||
		(padding >= 2 && s[len(s)-2] != '='):
		return nil, util.NewKindError(util.ERR_KIND_VALIDATION,
			"Invalid padding in base64 string.")
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil || len(data) == 0 {
		text := "no data"
		if err != nil {
			text = err.Error()
		}
		return nil, util.FmtKindError(util.ERR_KIND_VALIDATION,
			"Base64 conversion error: %s", text)
	}

	return data, nil
}

// Returns the XOR of all operands.  Operating on non-negative integers
// this equals the XOR of their big-endian encodings at the widest width.
func XorBigInts(vals ...*big.Int) *big.Int {
	r := new(big.Int)
	for _, v := range vals {
		r.Xor(r, v)
	}
	return r
}

// Keeps the low bits of n.
func MaskBits(n *big.Int, bits uint) *big.Int {
	mask := new(big.Int).Lsh(big.NewInt(1), bits)
	mask.Sub(mask, big.NewInt(1))
	return new(big.Int).And(n, mask)
}

// Serializes n big-endian, left padded with zeros to at least size bytes.
func BigIntToPaddedBytes(n *big.Int, size int) []byte {
	b := n.Bytes()
	if len(b) >= size {
		return b
	}

	padded := make([]byte, size)
	copy(padded[size-len(b):], b)
	return padded
}

// Formats n as uppercase hex without leading zeros.
func BigIntHex(n *big.Int) string {
	return strings.ToUpper(n.Text(16))
}

func mustPositive(n *big.Int) {
	if n.Sign() <= 0 {
		panic(fmt.Sprintf("non-positive modulus %s", n.String()))
	}
}

// Returns (2^16 - m^-1 mod 2^16) mod 2^16, the Montgomery word constant
// for an odd modulus m.
func MontgomeryMDash(m *big.Int) (*big.Int, error) {
	mustPositive(m)

	r := new(big.Int).Lsh(big.NewInt(1), 16)
	inv := new(big.Int).ModInverse(m, r)
	if inv == nil {
		return nil, util.NewKindError(util.ERR_KIND_PRIMITIVE,
			"Modulus has no inverse modulo 2^16")
	}

	mdash := new(big.Int).Sub(r, inv)
	return mdash.Mod(mdash, r), nil
}

// Returns 2^(2*bits) mod m.
func MontgomeryR2ModM(m *big.Int, bits int) *big.Int {
	mustPositive(m)

	r2 := new(big.Int).Lsh(big.NewInt(1), uint(2*bits))
	return r2.Mod(r2, m)
}

// Returns 2^bits - m.
func MontgomeryRModM(m *big.Int, bits int) *big.Int {
	r := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	return r.Sub(r, m)
}
