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

// Package image applies the cryptographic transforms to XUV images.  Each
// transform flattens the image's full address range into a contiguous
// byte block (gaps read as 0xFF) and returns a new image holding only the
// result.
package image

import (
	"crypto/rsa"

	log "github.com/sirupsen/logrus"

	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/artifact/sec"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/artifact/xuv"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/util"
)

func flatten(img *xuv.Image, e xuv.Endian) ([]byte, uint32, error) {
	first, last, err := img.Span()
	if err != nil {
		return nil, 0, err
	}

	log.Debugf("Flattening XUV image 0x%06X-0x%06X (%s)", first, last, e)
	return img.Flatten(first, last, xuv.XUV_DEFAULT_FILL, e), first, nil
}

// Hash returns an image holding the SHA-256 digest of img as 16 words at
// address 0.
func Hash(img *xuv.Image, e xuv.Endian) (*xuv.Image, error) {
	block, _, err := flatten(img, e)
	if err != nil {
		return nil, err
	}

	out := xuv.NewImage()
	out.Incorporate(0, sec.Sha256(block), e)
	return out, nil
}

// Sign returns an image holding the RSA-PSS (SHA-256) signature of img at
// address 0.
func Sign(img *xuv.Image, key *rsa.PrivateKey,
	e xuv.Endian) (*xuv.Image, error) {

	block, _, err := flatten(img, e)
	if err != nil {
		return nil, err
	}

	sig, err := sec.SignPss(key, block)
	if err != nil {
		return nil, err
	}

	out := xuv.NewImage()
	out.Incorporate(0, sig, e)
	return out, nil
}

// CbcMac returns an image holding the AES-128 CBC-MAC of img at address
// 0.  The image must span a whole number of cipher blocks.
func CbcMac(img *xuv.Image, key []byte, e xuv.Endian) (*xuv.Image, error) {
	first, last, err := img.Span()
	if err != nil {
		return nil, err
	}

	size := 2 * (uint64(last) - uint64(first) + 1)
	if size%sec.AES_BLOCK_SIZE != 0 {
		return nil, util.FmtKindError(util.ERR_KIND_LENGTH,
			"Image size %d bytes is not a multiple of %d bytes",
			size, sec.AES_BLOCK_SIZE)
	}

	block, _, err := flatten(img, e)
	if err != nil {
		return nil, err
	}

	mac, err := sec.CbcMac(key, block)
	if err != nil {
		return nil, err
	}

	out := xuv.NewImage()
	out.Incorporate(0, mac, e)
	return out, nil
}

// Encrypt returns img encrypted with the device counter mode.  addr is
// the image's location in flash and seeds the counter.  The result
// occupies the same addresses as img.
func Encrypt(img *xuv.Image, key []byte, iv []byte, addr uint32,
	e xuv.Endian) (*xuv.Image, error) {

	block, first, err := flatten(img, e)
	if err != nil {
		return nil, err
	}

	ct, err := sec.Cctr(key, iv, block, addr)
	if err != nil {
		return nil, err
	}

	out := xuv.NewImage()
	out.Incorporate(first, ct, e)
	return out, nil
}
