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

// Package keygen creates and converts standalone key files: the USB debug
// unlock key, RSA key pairs, DFU public keys and RFC 3394 transport
// wrapping of AES keys.
package keygen

import (
	log "github.com/sirupsen/logrus"

	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/artifact/keyfile"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/artifact/sec"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/util"
)

const OP_UNLOCK = "createunlockkey"

// UnlockKey derives the USB debug unlock key: one all-zero block
// encrypted with AES-128-CBC under the byte-reversed key.
func UnlockKey(key []byte) ([]byte, error) {
	rev := sec.Reverse(key)
	defer sec.Zero(rev)

	zero := make([]byte, sec.AES_BLOCK_SIZE)
	return sec.CbcEncrypt(rev, zero, zero)
}

// CreateUnlockKeyFile reads a 128-bit key from inFile and writes the
// derived unlock key to outFile.
func CreateUnlockKeyFile(inFile string, outFile string) error {
	key, err := keyfile.ReadAes128Key(inFile)
	if err != nil {
		return util.NewOpError(OP_UNLOCK, util.STATUS_READ_FAIL, err)
	}
	defer sec.Zero(key)

	unlock, err := UnlockKey(key)
	if err != nil {
		return util.NewOpError(OP_UNLOCK, util.STATUS_ENCRYPT_FAIL, err)
	}

	if err := keyfile.WriteAes128Key(unlock, outFile); err != nil {
		return util.NewOpError(OP_UNLOCK, util.STATUS_WRITE_FAIL, err)
	}

	log.Debugf("Wrote unlock key to %s", outFile)
	return nil
}
