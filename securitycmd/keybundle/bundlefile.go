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

package keybundle

import (
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/artifact/keyfile"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/artifact/sec"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/securitycmd/emit"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/util"
)

const (
	OP_WRAP    = "wrapkey"
	OP_WRAP_AR = "wrapkeyar"
)

func opName(antiReplay bool) string {
	if antiReplay {
		return OP_WRAP_AR
	}
	return OP_WRAP
}

// Reads the vendor key-data file and checks its key count.
func ReadVendorKeys(filename string, antiReplay bool) (VendorKeys, error) {
	keys, err := keyfile.ReadLeAes128Keys(filename)
	if err != nil {
		return VendorKeys{}, err
	}

	vk, err := NewVendorKeys(keys, antiReplay)
	if err != nil {
		newtErr := util.AsNewtError(err)
		newtErr.Text += " in file '" + filename + "'"
		newtErr.Path = filename
		return VendorKeys{}, newtErr
	}

	return vk, nil
}

// BundleFromKeys rebuilds a bundle from the keys of a bundle file, as
// returned by keyfile.ReadLeAes128Keys.
func BundleFromKeys(keys [][]byte, antiReplay bool) (*Bundle, error) {
	want := len((&Bundle{AntiReplay: antiReplay}).Keys())
	if len(keys) != want {
		return nil, util.FmtKindError(util.ERR_KIND_COUNT,
			"Expected %d keys in key bundle, found %d", want, len(keys))
	}

	b := &Bundle{
		AntiReplay: antiReplay,
		NonceEnc:   keys[0],
		NonceMic:   keys[1],
		QcomIv:     keys[2],
	}
	if antiReplay {
		b.EncPaKek = keys[3]
		b.EncKek = keys[4]
		b.WrappedKey = keys[5]
		b.Mic = keys[6]
		b.PaKek = keys[7]
	} else {
		b.EncKek = keys[3]
		b.WrappedKey = keys[4]
		b.Mic = keys[5]
	}

	return b, nil
}

// CreateFile wraps the OEM key in oemFile using the vendor keys in
// vendorFile and writes the bundle to outFile.  Nothing is written unless
// every step succeeds.
func CreateFile(oemFile string, vendorFile string, outFile string,
	antiReplay bool, rnd io.Reader) error {

	op := opName(antiReplay)

	raw, err := keyfile.ReadAes128Key(oemFile)
	if err != nil {
		return util.NewOpError(op, util.STATUS_READ_KEY, err)
	}
	oemKey := sec.ReverseAndZero(raw)
	defer sec.Zero(oemKey)

	vk, err := ReadVendorKeys(vendorFile, antiReplay)
	if err != nil {
		return util.NewOpError(op, util.STATUS_READ_QCOM, err)
	}

	b, err := Wrap(oemKey, vk, antiReplay, rnd)
	if err != nil {
		return util.NewOpError(op, util.STATUS_PRIMITIVE_FAIL, err)
	}

	log.Debugf("Writing key bundle to %s", outFile)
	data := keyfile.FormatLeAes128Keys(b.Keys())
	if err := emit.WriteSecretFile(outFile, data); err != nil {
		return util.NewOpError(op, util.STATUS_WRITE_BUNDLE, err)
	}

	return nil
}
