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

package keyfile

import (
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/artifact/sec"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/util"
)

// AES-128 keys exist in two in-memory byte orders.
//
// A "big-endian" key holds the words' bytes in text order: text
// 00112233... gives key[0]=0x00, key[1]=0x11.  This is the order of
// single-key files (unlock keys, image keys).
//
// A "little-endian" key is the full byte reversal of that order, as
// used for every key of a multi-key file (vendor key data, bundles).
//
// Both directions go through WordsToKey / KeyToWords so the read and
// write paths share one conversion.

// Converts text-order words to big-endian key bytes.
func WordsToKey(words []uint16) []byte {
	key := make([]byte, 2*len(words))
	for i, w := range words {
		key[2*i] = byte(w >> 8)
		key[2*i+1] = byte(w)
	}
	return key
}

// Inverse of WordsToKey.
func KeyToWords(key []byte) []uint16 {
	if len(key)%2 != 0 {
		panic("odd key length")
	}

	words := make([]uint16, len(key)/2)
	for i := range words {
		words[i] = uint16(key[2*i])<<8 | uint16(key[2*i+1])
	}
	return words
}

// Converts text-order words to little-endian key bytes.
func WordsToLeKey(words []uint16) []byte {
	return sec.Reverse(WordsToKey(words))
}

// Inverse of WordsToLeKey.
func LeKeyToWords(key []byte) []uint16 {
	return KeyToWords(sec.Reverse(key))
}

func aes128Record(rec KeyRecord, filename string) error {
	if !rec.Is128() {
		return util.FmtKindError(util.ERR_KIND_KEY_SIZE,
			"Key in key file '%s' is not a 128-bit key", filename)
	}
	return nil
}

func checkAes128Key(key []byte) {
	if len(key) != sec.AES128_KEY_SIZE {
		panic("AES-128 key must be 16 bytes")
	}
}

// Reads a single AES-128 key in big-endian byte order.
func ReadAes128Key(filename string) ([]byte, error) {
	rec, err := ReadKey(filename)
	if err != nil {
		return nil, err
	}
	if err := aes128Record(rec, filename); err != nil {
		return nil, err
	}

	return WordsToKey(rec.Words), nil
}

// Writes a single big-endian AES-128 key.  Inverse of ReadAes128Key.
func WriteAes128Key(key []byte, filename string) error {
	checkAes128Key(key)

	return WriteKeys([]KeyRecord{{Words: KeyToWords(key)}}, filename)
}

// Reads every key of a multi-key file in little-endian byte order.  All
// keys must be 128-bit.
func ReadLeAes128Keys(filename string) ([][]byte, error) {
	recs, err := ReadKeys(filename)
	if err != nil {
		return nil, err
	}

	keys := make([][]byte, len(recs))
	for i, rec := range recs {
		if err := aes128Record(rec, filename); err != nil {
			return nil, err
		}
		keys[i] = WordsToLeKey(rec.Words)
	}

	return keys, nil
}

func FormatLeAes128Keys(keys [][]byte) []byte {
	recs := make([]KeyRecord, len(keys))
	for i, key := range keys {
		checkAes128Key(key)
		recs[i] = KeyRecord{Words: LeKeyToWords(key)}
	}

	return FormatKeys(recs)
}

// Writes little-endian keys as a multi-key file.  Inverse of
// ReadLeAes128Keys.
func WriteLeAes128Keys(keys [][]byte, filename string) error {
	return writeKeyData(FormatLeAes128Keys(keys), len(keys), filename)
}
