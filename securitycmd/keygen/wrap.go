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
	"bufio"
	"bytes"
	"encoding/hex"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/artifact/keyfile"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/artifact/sec"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/securitycmd/emit"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/util"
)

const (
	OP_WRAPKEYFILE   = "wrapkeyfile"
	OP_UNWRAPKEYFILE = "unwrapkeyfile"
)

// RFC 3394 output for a 128-bit key: the key plus one integrity block.
const WRAPPED_KEY_SIZE = sec.AES128_KEY_SIZE + 8

func FormatWrappedKey(wrapped []byte) []byte {
	return []byte(strings.ToUpper(hex.EncodeToString(wrapped)))
}

// Parses a wrapped key file: a single line of 48 hex digits.  Blank lines
// and lines starting with '#' are ignored.
func ParseWrappedKey(data []byte, name string) ([]byte, error) {
	var wrapped []byte

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if wrapped != nil {
			return nil, util.FmtKindError(util.ERR_KIND_COUNT,
				"Multiple wrapped keys found in file '%s'", name)
		}

		b, err := hex.DecodeString(line)
		if err != nil {
			return nil, util.FmtKindError(util.ERR_KIND_SYNTAX,
				"Invalid entry at line %d of wrapped key file '%s'",
				lineNum, name)
		}
		if len(b) != WRAPPED_KEY_SIZE {
			return nil, util.FmtKindError(util.ERR_KIND_LENGTH,
				"Wrapped key of invalid length at line %d of file '%s'",
				lineNum, name)
		}
		wrapped = b
	}

	if wrapped == nil {
		return nil, util.FmtKindError(util.ERR_KIND_COUNT,
			"No wrapped key present in file '%s'", name)
	}

	return wrapped, nil
}

func ReadWrappedKey(filename string) ([]byte, error) {
	data, err := util.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return ParseWrappedKey(data, filename)
}

// WrapKeyFile wraps the key in inFile under the KEK in kekFile.
func WrapKeyFile(kekFile string, inFile string, outFile string) error {
	kek, err := keyfile.ReadAes128Key(kekFile)
	if err != nil {
		return util.NewOpError(OP_WRAPKEYFILE, util.STATUS_READ_KEY, err)
	}
	defer sec.Zero(kek)

	key, err := keyfile.ReadAes128Key(inFile)
	if err != nil {
		return util.NewOpError(OP_WRAPKEYFILE, util.STATUS_READ_FAIL, err)
	}
	defer sec.Zero(key)

	wrapped, err := sec.WrapKey(kek, key)
	if err != nil {
		return util.NewOpError(OP_WRAPKEYFILE, util.STATUS_ENCRYPT_FAIL, err)
	}

	if err := emit.WriteSecretFile(outFile,
		FormatWrappedKey(wrapped)); err != nil {

		return util.NewOpError(OP_WRAPKEYFILE, util.STATUS_WRITE_FAIL, err)
	}

	log.Debugf("Wrote wrapped key to %s", outFile)
	return nil
}

// UnwrapKeyFile reverses WrapKeyFile.  An integrity failure means the
// KEK is wrong or the file is corrupt.
func UnwrapKeyFile(kekFile string, inFile string, outFile string) error {
	kek, err := keyfile.ReadAes128Key(kekFile)
	if err != nil {
		return util.NewOpError(OP_UNWRAPKEYFILE, util.STATUS_READ_KEY, err)
	}
	defer sec.Zero(kek)

	wrapped, err := ReadWrappedKey(inFile)
	if err != nil {
		return util.NewOpError(OP_UNWRAPKEYFILE, util.STATUS_READ_FAIL, err)
	}

	key, err := sec.UnwrapKey(kek, wrapped)
	if err != nil {
		return util.NewOpError(OP_UNWRAPKEYFILE, util.STATUS_ENCRYPT_FAIL,
			err)
	}
	defer sec.Zero(key)

	if err := keyfile.WriteAes128Key(key, outFile); err != nil {
		return util.NewOpError(OP_UNWRAPKEYFILE, util.STATUS_WRITE_FAIL, err)
	}

	return nil
}
