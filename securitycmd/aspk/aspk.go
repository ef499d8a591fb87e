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

// Package aspk combines an anti-spoofing private key with a device
// modulus and seed.
package aspk

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/artifact/dfukey"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/artifact/sec"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/securitycmd/emit"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/util"
)

// Width of the modulus taken from a key file.
const ASPK_MODULUS_BITS = 256

type ModulusFormat int

const (
	MODULUS_FORMAT_TEXT ModulusFormat = iota
	MODULUS_FORMAT_PEM
	MODULUS_FORMAT_DFU
)

var modulusFormatNames = map[ModulusFormat]string{
	MODULUS_FORMAT_TEXT: "text",
	MODULUS_FORMAT_PEM:  "pem",
	MODULUS_FORMAT_DFU:  "dfu",
}

func (f ModulusFormat) String() string {
	if name, ok := modulusFormatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// Reads the modulus from src according to format.
func readModulus(src string, format ModulusFormat) (*big.Int, error) {
	switch format {
	case MODULUS_FORMAT_TEXT:
		return sec.HexToBigInt(src)

	case MODULUS_FORMAT_PEM:
		pub, err := sec.ReadRsaPublicKey(src)
		if err != nil {
			return nil, util.FmtIoError(util.ErrorKind(err), src,
				"Failed to read public key: %s", err.Error())
		}
		return sec.MaskBits(pub.N, ASPK_MODULUS_BITS), nil

	case MODULUS_FORMAT_DFU:
		key, err := dfukey.Read(src)
		if err == nil {
			var n *big.Int
			n, err = key.LowModulus(ASPK_MODULUS_BITS / 8)
			if err == nil {
				return n, nil
			}
		}
		return nil, util.FmtIoError(util.ErrorKind(err), src,
			"Failed to read dfu key: %s", err.Error())

	default:
		panic(fmt.Sprintf("invalid modulus format %d", int(format)))
	}
}

// Scramble returns modulus XOR seed XOR aspk.  seedHex is hexadecimal
// and aspkB64 is strict base64.  Every operand is checked; the returned
// error lists all of the problems found.
func Scramble(modulusSrc string, seedHex string, aspkB64 string,
	format ModulusFormat) (*big.Int, error) {

	var errs []error

	modulus, err := readModulus(modulusSrc, format)
	if err != nil {
		errs = append(errs, err)
	}

	seed, err := sec.HexToBigInt(seedHex)
	if err != nil {
		errs = append(errs, err)
	}

	var aspk *big.Int
	if data, err := sec.DecodeBase64Strict(aspkB64); err != nil {
		errs = append(errs, err)
	} else {
		aspk = new(big.Int).SetBytes(data)
	}

	if len(errs) > 0 {
		return nil, combineErrors(errs)
	}

	log.Debugf("Scrambling ASPK with %s modulus", format)
	return sec.XorBigInts(modulus, seed, aspk), nil
}

// Merges several errors into one.  The kind is that of the first.
func combineErrors(errs []error) error {
	if len(errs) == 1 {
		return errs[0]
	}

	texts := make([]string, len(errs))
	for i, err := range errs {
		texts[i] = err.Error()
	}

	newtErr := util.NewKindError(util.ErrorKind(errs[0]),
		strings.Join(texts, "\n"))
	newtErr.Parent = errs[0]
	return newtErr
}

// ScrambleToFile scrambles and writes the result as hexadecimal to
// outFile, or to w followed by a newline when outFile is empty.
func ScrambleToFile(modulusSrc string, seedHex string, aspkB64 string,
	format ModulusFormat, outFile string, w io.Writer) error {

	n, err := Scramble(modulusSrc, seedHex, aspkB64, format)
	if err != nil {
		return err
	}

	text := sec.BigIntHex(n)
	if outFile == "" {
		text += "\n"
	}

	if err := emit.WriteFileOrStream(outFile, w, []byte(text)); err != nil {
		return util.FmtIoError(util.ERR_KIND_IO_WRITE, outFile,
			"Failed to open output file: %s", err.Error())
	}
	return nil
}
