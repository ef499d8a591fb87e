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

package image

import (
	log "github.com/sirupsen/logrus"

	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/artifact/keyfile"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/artifact/sec"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/artifact/xuv"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/securitycmd/emit"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/util"
)

const (
	OP_HASH    = "hash"
	OP_SIGN    = "sign"
	OP_CBCMAC  = "createcbcmac"
	OP_ENCRYPT = "encrypt"
)

// Reads a non-empty image from filename.
func readImage(op string, filename string) (*xuv.Image, error) {
	img, err := xuv.Read(filename)
	if err != nil {
		return nil, util.NewOpError(op, util.STATUS_READ_IMG, err)
	}
	if img.Empty() {
		return nil, util.NewOpError(op, util.STATUS_IMG_EMPTY,
			util.FmtIoError(util.ERR_KIND_LENGTH, filename,
				"No data in XUV file '%s'", filename))
	}
	if _, _, err := img.Span(); err != nil {
		return nil, util.NewOpError(op, util.STATUS_READ_IMG,
			util.FmtIoError(util.ERR_KIND_LENGTH, filename,
				"%s: %s", filename, err.Error()))
	}

	return img, nil
}

func writeImage(op string, img *xuv.Image, filename string) error {
	log.Debugf("Writing %d words to %s", len(img.Data), filename)
	if err := emit.WriteFile(filename, img.Bytes()); err != nil {
		return util.NewOpError(op, util.STATUS_WRITE_IMG, err)
	}
	return nil
}

// Reads a 128-bit AES key in the byte order used by the image transforms.
func readImageKey(op string, filename string) ([]byte, error) {
	key, err := keyfile.ReadAes128Key(filename)
	if err != nil {
		return nil, util.NewOpError(op, util.STATUS_READ_KEY, err)
	}

	return sec.ReverseAndZero(key), nil
}

// HashFile writes the SHA-256 digest of the image in inFile to outFile.
func HashFile(inFile string, outFile string, e xuv.Endian) error {
	img, err := readImage(OP_HASH, inFile)
	if err != nil {
		return err
	}

	out, err := Hash(img, e)
	if err != nil {
		return util.NewOpError(OP_HASH, util.STATUS_PRIMITIVE_FAIL, err)
	}

	return writeImage(OP_HASH, out, outFile)
}

// SignFile writes the RSA-PSS signature of the image in inFile to outFile.
// keyFile holds a PEM-encoded RSA private key.
func SignFile(inFile string, outFile string, keyFile string,
	e xuv.Endian) error {

	img, err := readImage(OP_SIGN, inFile)
	if err != nil {
		return err
	}

	key, err := sec.ReadRsaPrivateKey(keyFile)
	if err != nil {
		return util.NewOpError(OP_SIGN, util.STATUS_READ_KEY, err)
	}

	out, err := Sign(img, key, e)
	if err != nil {
		return util.NewOpError(OP_SIGN, util.STATUS_SIGN_IMG, err)
	}

	return writeImage(OP_SIGN, out, outFile)
}

// CbcMacFile writes the CBC-MAC of the image in inFile to outFile.
func CbcMacFile(inFile string, outFile string, keyFile string,
	e xuv.Endian) error {

	key, err := readImageKey(OP_CBCMAC, keyFile)
	if err != nil {
		return err
	}
	defer sec.Zero(key)

	img, err := readImage(OP_CBCMAC, inFile)
	if err != nil {
		return err
	}

	out, err := CbcMac(img, key, e)
	if err != nil {
		status := util.STATUS_CBCMAC_IMG
		if util.IsKind(err, util.ERR_KIND_LENGTH) {
			status = util.STATUS_IMG_NOT_MULTIPLE
		}
		return util.NewOpError(OP_CBCMAC, status, err)
	}

	return writeImage(OP_CBCMAC, out, outFile)
}

// EncryptFile encrypts the image in inFile for flash address addr and
// writes the result to outFile.
func EncryptFile(inFile string, outFile string, keyFile string,
	ivFile string, addr uint32, e xuv.Endian) error {

	key, err := readImageKey(OP_ENCRYPT, keyFile)
	if err != nil {
		return err
	}
	defer sec.Zero(key)

	iv, err := keyfile.ReadAes128Key(ivFile)
	if err != nil {
		return util.NewOpError(OP_ENCRYPT, util.STATUS_READ_IV, err)
	}

	img, err := readImage(OP_ENCRYPT, inFile)
	if err != nil {
		return err
	}

	out, err := Encrypt(img, key, iv, addr, e)
	if err != nil {
		return util.NewOpError(OP_ENCRYPT, util.STATUS_ENCRYPT_IMG, err)
	}

	return writeImage(OP_ENCRYPT, out, outFile)
}
