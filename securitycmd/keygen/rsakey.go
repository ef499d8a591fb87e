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
	"io"
	"strings"

	"github.com/spf13/cast"

	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/artifact/sec"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/securitycmd/emit"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/util"
)

const OP_RSAKEY = "creatersakey"

// Parses an RSA key size argument.
func ParseKeySize(s string) (int, error) {
	bits, err := cast.ToIntE(s)
	if err != nil || (bits != 1024 && bits != 2048) {
		return 0, util.FmtKindError(util.ERR_KIND_VALIDATION,
			"Invalid key size \"%s\"; must be 1024 or 2048", s)
	}

	return bits, nil
}

// Parses a public exponent argument: 3, F4 or 65537.
func ParseExponent(s string) (int, error) {
	switch strings.ToUpper(s) {
	case "3":
		return sec.RSA_EXP_3, nil
	case "F4", "65537":
		return sec.RSA_EXP_F4, nil
	default:
		return 0, util.FmtKindError(util.ERR_KIND_VALIDATION,
			"Invalid exponent \"%s\"; must be 3 or F4", s)
	}
}

// CreateRsaKeyFiles generates a key pair and writes the private key to
// prvFile.  The public key is written to pubFile unless it is empty.
func CreateRsaKeyFiles(bits int, exp int, prvFile string, pubFile string,
	rnd io.Reader) error {

	key, err := sec.GenerateRsaKey(rnd, bits, exp)
	if err != nil {
		return util.NewOpError(OP_RSAKEY, util.STATUS_PRIMITIVE_FAIL, err)
	}

	prv, err := sec.MarshalPrivateKeyPem(key)
	if err != nil {
		return util.NewOpError(OP_RSAKEY, util.STATUS_PRIMITIVE_FAIL, err)
	}

	var pub []byte
	if pubFile != "" {
		pub, err = sec.MarshalPublicKeyPem(&key.PublicKey)
		if err != nil {
			return util.NewOpError(OP_RSAKEY, util.STATUS_PRIMITIVE_FAIL, err)
		}
	}

	if err := emit.WriteSecretFile(prvFile, prv); err != nil {
		return util.NewOpError(OP_RSAKEY, util.STATUS_WRITE_FAIL, err)
	}
	if pub != nil {
		if err := emit.WriteFile(pubFile, pub); err != nil {
			return util.NewOpError(OP_RSAKEY, util.STATUS_WRITE_FAIL, err)
		}
	}

	return nil
}
