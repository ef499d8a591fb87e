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

package keygen

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/artifact/dfukey"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/artifact/sec"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/securitycmd/emit"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/util"
)

const OP_PEM2DFU = "pem2dfukey"

type KeyType int

const (
	KEY_TYPE_PRIVATE KeyType = iota
	KEY_TYPE_PUBLIC
)

func (kt KeyType) String() string {
	if kt == KEY_TYPE_PRIVATE {
		return "private"
	}
	return "public"
}

// Parses a "prv" or "pub" argument, ignoring case.
func ParseKeyType(s string) (KeyType, error) {
	switch strings.ToLower(s) {
	case "prv":
		return KEY_TYPE_PRIVATE, nil
	case "pub":
		return KEY_TYPE_PUBLIC, nil
	default:
		return 0, util.FmtKindError(util.ERR_KIND_VALIDATION,
			"Invalid key type argument \"%s\". Should be one of prv or pub.",
			s)
	}
}

// Maps a PEM read failure to the status that describes it.
func readStatus(err error, kt KeyType) util.Status {
	switch util.ErrorKind(err) {
	case util.ERR_KIND_NOT_FOUND:
		if kt == KEY_TYPE_PRIVATE {
			return util.STATUS_ERR_PRVKEY
		}
		return util.STATUS_ERR_PUBKEY

	case util.ERR_KIND_VALIDATION:
		return util.STATUS_ERR_KEYTYPE

	default:
		return util.STATUS_READ_FAIL
	}
}

// PemToDfu reads an RSA key of type kt from pemFile and returns its DFU
// text encoding.
func PemToDfu(kt KeyType, pemFile string) ([]byte, error) {
	var text []byte

	if kt == KEY_TYPE_PRIVATE {
		key, err := sec.ReadRsaPrivateKey(pemFile)
		if err != nil {
			return nil, util.NewOpError(OP_PEM2DFU, readStatus(err, kt), err)
		}

		text, err = dfukey.EncodePrivate(key)
		if err != nil {
			return nil, util.NewOpError(OP_PEM2DFU, util.STATUS_ERR_KEYTYPE,
				err)
		}
	} else {
		key, err := sec.ReadRsaPublicKey(pemFile)
		if err != nil {
			return nil, util.NewOpError(OP_PEM2DFU, readStatus(err, kt), err)
		}

		text, err = dfukey.EncodePublic(key)
		if err != nil {
			return nil, util.NewOpError(OP_PEM2DFU, util.STATUS_ERR_KEYTYPE,
				err)
		}
	}

	log.Debugf("Converted %s key from %s", kt, pemFile)
	return text, nil
}

// PemToDfuFile converts the key in pemFile and writes it to outFile.
func PemToDfuFile(kt KeyType, pemFile string, outFile string) error {
	text, err := PemToDfu(kt, pemFile)
	if err != nil {
		return err
	}

	write := emit.WriteFile
	if kt == KEY_TYPE_PRIVATE {
		write = emit.WriteSecretFile
	}
	if err := write(outFile, text); err != nil {
		return util.NewOpError(OP_PEM2DFU, util.STATUS_WRITE_FAIL, err)
	}

	return nil
}
