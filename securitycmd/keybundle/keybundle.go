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

// Package keybundle wraps an OEM key under the vendor key-encryption key
// and authenticates the result, producing the bundle consumed by the
// device's boot firmware.
package keybundle

import (
	"bytes"
	"crypto/subtle"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/artifact/sec"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/util"
)

const VENDOR_KEY_COUNT = 3
const VENDOR_KEY_COUNT_AR = 5

// Keys supplied by the chip vendor, in file order.
type VendorKeys struct {
	Kek    []byte
	EncKek []byte
	QcomIv []byte

	// Anti-replay only.
	PaKek    []byte
	EncPaKek []byte
}

type Bundle struct {
	AntiReplay bool

	NonceEnc   []byte // Stored reversed.
	NonceMic   []byte
	QcomIv     []byte
	EncKek     []byte
	EncPaKek   []byte
	WrappedKey []byte
	Mic        []byte
	PaKek      []byte
}

func expectedKeyCount(antiReplay bool) int {
	if antiReplay {
		return VENDOR_KEY_COUNT_AR
	}
	return VENDOR_KEY_COUNT
}

// NewVendorKeys assigns the keys read from a vendor file to their roles.
// The count must be 3, or 5 for an anti-replay bundle.
func NewVendorKeys(keys [][]byte, antiReplay bool) (VendorKeys, error) {
	want := expectedKeyCount(antiReplay)
	if len(keys) != want {
		return VendorKeys{}, util.FmtKindError(util.ERR_KIND_COUNT,
			"Expected %d keys in vendor key data, found %d", want, len(keys))
	}
	for i, k := range keys {
		if len(k) != sec.AES128_KEY_SIZE {
			return VendorKeys{}, util.FmtKindError(util.ERR_KIND_KEY_SIZE,
				"Vendor key %d has invalid size %d", i, len(k))
		}
	}

	vk := VendorKeys{
		Kek:    keys[0],
		EncKek: keys[1],
		QcomIv: keys[2],
	}
	if antiReplay {
		vk.PaKek = keys[3]
		vk.EncPaKek = keys[4]
	}

	return vk, nil
}

// Returns the data authenticated by the bundle MIC.
func (b *Bundle) micInput() []byte {
	var parts [][]byte
	if b.AntiReplay {
		parts = [][]byte{b.NonceMic, b.NonceEnc, b.QcomIv, b.EncPaKek,
			b.EncKek, b.WrappedKey}
	} else {
		parts = [][]byte{b.QcomIv, b.NonceMic, b.NonceEnc, b.EncKek,
			b.WrappedKey}
	}

	return bytes.Join(parts, nil)
}

// Computes the bundle MIC.  The MAC key is NonceMic XOR KeK.
func (b *Bundle) computeMic(kek []byte) ([]byte, error) {
	macKey, err := sec.Xor(b.NonceMic, kek)
	if err != nil {
		return nil, err
	}
	defer sec.Zero(macKey)

	return sec.CbcMac(macKey, b.micInput())
}

// Checks the bundle MIC against kek.
func (b *Bundle) Verify(kek []byte) error {
	mic, err := b.computeMic(kek)
	if err != nil {
		return err
	}

	if subtle.ConstantTimeCompare(mic, b.Mic) != 1 {
		return util.NewKindError(util.ERR_KIND_VALIDATION,
			"Key bundle MIC mismatch")
	}
	return nil
}

// Keys returns the bundle fields in the order they are written to file.
func (b *Bundle) Keys() [][]byte {
	if b.AntiReplay {
		return [][]byte{b.NonceEnc, b.NonceMic, b.QcomIv, b.EncPaKek,
			b.EncKek, b.WrappedKey, b.Mic, b.PaKek}
	}

	return [][]byte{b.NonceEnc, b.NonceMic, b.QcomIv, b.EncKek,
		b.WrappedKey, b.Mic}
}

// Wrap encrypts oemKey under the vendor KeK and authenticates the result.
// Nonces are drawn from rnd, or crypto/rand if rnd is nil.  oemKey is
// expected in the byte order it is encrypted in.
func Wrap(oemKey []byte, vk VendorKeys, antiReplay bool,
	rnd io.Reader) (*Bundle, error) {

	if len(oemKey) != sec.AES128_KEY_SIZE {
		return nil, util.FmtKindError(util.ERR_KIND_KEY_SIZE,
			"OEM key has invalid size %d", len(oemKey))
	}
	if antiReplay && (vk.PaKek == nil || vk.EncPaKek == nil) {
		return nil, util.NewKindError(util.ERR_KIND_COUNT,
			"Anti-replay bundle requires PaKeK and EncPaKeK")
	}

	nonceMic, err := sec.Nonce(rnd, sec.AES_BLOCK_SIZE)
	if err != nil {
		return nil, err
	}
	nonceEnc, err := sec.Nonce(rnd, sec.AES_BLOCK_SIZE)
	if err != nil {
		return nil, err
	}

	wrapped, err := sec.Cctr(vk.Kek, nonceEnc, oemKey, 0)
	if err != nil {
		return nil, err
	}

	b := &Bundle{
		AntiReplay: antiReplay,
		NonceEnc:   sec.Reverse(nonceEnc),
		NonceMic:   nonceMic,
		QcomIv:     vk.QcomIv,
		EncKek:     vk.EncKek,
		WrappedKey: wrapped,
	}
	if antiReplay {
		b.EncPaKek = vk.EncPaKek
		b.PaKek = vk.PaKek
	}

	b.Mic, err = b.computeMic(vk.Kek)
	if err != nil {
		return nil, err
	}

	log.Debugf("Created %d-field key bundle", len(b.Keys()))
	return b, nil
}
