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
	"encoding/binary"
)

// Cctr encrypts (or decrypts) data with the device's AES counter mode.
//
// The counter register is a zero block whose low four bytes hold
// addr/16, little-endian.  Each keystream block is the AES encryption of
// (counter XOR reverse(iv)); the counter is then incremented as a
// little-endian integer.  The final block may be partial, so the output
// is the same length as the input.
func Cctr(key []byte, iv []byte, data []byte, addr uint32) ([]byte, error) {
	block, err := newAes128(key)
	if err != nil {
		return nil, err
	}
	if len(iv) != AES_BLOCK_SIZE {
		return nil, ivSizeError(len(iv))
	}

	ctr := make([]byte, AES_BLOCK_SIZE)
	binary.LittleEndian.PutUint32(ctr, addr/16)

	in := make([]byte, AES_BLOCK_SIZE)
	ks := make([]byte, AES_BLOCK_SIZE)
	out := make([]byte, len(data))

	for off := 0; off < len(data); off += AES_BLOCK_SIZE {
		for j := 0; j < AES_BLOCK_SIZE; j++ {
			in[j] = ctr[j] ^ iv[AES_BLOCK_SIZE-1-j]
		}
		block.Encrypt(ks, in)

		end := off + AES_BLOCK_SIZE
		if end > len(data) {
			end = len(data)
		}
		for j := off; j < end; j++ {
			out[j] = data[j] ^ ks[j-off]
		}

		incrementLe(ctr)
	}

	return out, nil
}

func incrementLe(ctr []byte) {
	for i := range ctr {
		ctr[i]++
		if ctr[i] != 0 {
			return
		}
	}
}
