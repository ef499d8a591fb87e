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
	"crypto/aes"
	"crypto/cipher"

	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/util"
)

const AES128_KEY_SIZE = 16
const AES_BLOCK_SIZE = aes.BlockSize

func newAes128(key []byte) (cipher.Block, error) {
	if len(key) != AES128_KEY_SIZE {
		return nil, util.FmtKindError(util.ERR_KIND_KEY_SIZE,
			"Unexpected AES key size: %d != %d", len(key), AES128_KEY_SIZE)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, util.FmtKindError(util.ERR_KIND_PRIMITIVE,
			"Error creating AES cipher: %s", err.Error())
	}

	return block, nil
}

// Encrypts a single 16-byte block (AES-128-ECB).
func EncryptBlock(key []byte, in []byte) ([]byte, error) {
	block, err := newAes128(key)
	if err != nil {
		return nil, err
	}

	if len(in) != AES_BLOCK_SIZE {
		return nil, util.FmtKindError(util.ERR_KIND_KEY_SIZE,
			"Unexpected AES block size: %d != %d", len(in), AES_BLOCK_SIZE)
	}

	out := make([]byte, AES_BLOCK_SIZE)
	block.Encrypt(out, in)
	return out, nil
}

// Encrypts data with AES-128-CBC and padding disabled.  data must be a
// whole number of blocks.
func CbcEncrypt(key []byte, iv []byte, data []byte) ([]byte, error) {
	block, err := newAes128(key)
	if err != nil {
		return nil, err
	}

	if len(iv) != AES_BLOCK_SIZE {
		return nil, util.FmtKindError(util.ERR_KIND_KEY_SIZE,
			"Unexpected IV size: %d != %d", len(iv), AES_BLOCK_SIZE)
	}
	if len(data)%AES_BLOCK_SIZE != 0 {
		return nil, util.FmtKindError(util.ERR_KIND_LENGTH,
			"Data length %d is not a multiple of the cipher block size %d",
			len(data), AES_BLOCK_SIZE)
	}

	out := make([]byte, len(data))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, data)
	return out, nil
}

// Computes a CBC-MAC: the last ciphertext block of a zero-IV CBC
// encryption of data.
func CbcMac(key []byte, data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, util.NewKindError(util.ERR_KIND_LENGTH,
			"No data to authenticate")
	}

	ct, err := CbcEncrypt(key, make([]byte, AES_BLOCK_SIZE), data)
	if err != nil {
		return nil, err
	}

	return ct[len(ct)-AES_BLOCK_SIZE:], nil
}
