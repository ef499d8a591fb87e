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

// Package dfukey implements the DFU key text format: RSA key material as
// 16-bit words, least significant word first, one '@'-prefixed line per
// field:
//
//	@ exponent words
//	@ modulus words
//	@ M' (one word)
//	@ R^2N mod M words
//	@ R^N mod M words
//
// Any lines before the first '@' are a free-text description.
package dfukey

import (
	"bytes"
	"crypto/rsa"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/artifact/sec"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/util"
)

// Words per field of a 1024-bit key.
const KEY_WIDTH = 64

const DFU_FIELD_COUNT = 5

type Key struct {
	Description string
	Exponent    []uint16
	Modulus     []uint16
	MDash       uint16
	R2NmodM     []uint16
	RNmodM      []uint16
}

// Writes one field: n padded big-endian to max(size, len(n)) bytes,
// rounded up to a whole word, printed least significant word first.
func writeField(w io.Writer, n *big.Int, size int) {
	buf := sec.BigIntToPaddedBytes(n, size)
	if len(buf)%2 != 0 {
		buf = append([]byte{0}, buf...)
	}

	fmt.Fprint(w, "@")
	for i := len(buf); i > 0; i -= 2 {
		fmt.Fprintf(w, " %x", uint16(buf[i-2])<<8|uint16(buf[i-1]))
	}
	fmt.Fprint(w, "\n")
}

func encode(pub *rsa.PublicKey, exp *big.Int) ([]byte, error) {
	size := pub.Size()
	bits := 8 * size
	mod := pub.N

	mdash, err := sec.MontgomeryMDash(mod)
	if err != nil {
		return nil, err
	}

	buf := bytes.Buffer{}
	writeField(&buf, exp, size)
	writeField(&buf, mod, size)
	writeField(&buf, mdash, 2)
	writeField(&buf, sec.MontgomeryR2ModM(mod, bits), size)
	writeField(&buf, sec.MontgomeryRModM(mod, bits), size)

	return buf.Bytes(), nil
}

// Formats the private exponent and modulus constants of key.
func EncodePrivate(key *rsa.PrivateKey) ([]byte, error) {
	return encode(&key.PublicKey, key.D)
}

// Formats the public exponent and modulus constants of key.
func EncodePublic(key *rsa.PublicKey) ([]byte, error) {
	return encode(key, big.NewInt(int64(key.E)))
}

func parseWords(field string, name string) ([]uint16, error) {
	toks := strings.Fields(field)
	words := make([]uint16, len(toks))
	for i, tok := range toks {
		w, err := strconv.ParseUint(tok, 16, 16)
		if err != nil {
			return nil, util.FmtKindError(util.ERR_KIND_SYNTAX,
				"Invalid word \"%s\" in DFU key file '%s'", tok, name)
		}
		words[i] = uint16(w)
	}

	return words, nil
}

// Parses DFU key text.  name is used in error messages only.
func Parse(data []byte, name string) (*Key, error) {
	text := string(data)

	key := &Key{}
	for text != "" && text[0] != '@' {
		line := text
		if idx := strings.IndexByte(text, '\n'); idx >= 0 {
			line = text[:idx+1]
		}
		key.Description += line
		text = text[len(line):]
	}
	if text == "" {
		return nil, util.FmtKindError(util.ERR_KIND_SYNTAX,
			"No key data in DFU key file '%s'", name)
	}

	fields := strings.Split(text[1:], "@")
	if len(fields) != DFU_FIELD_COUNT {
		return nil, util.FmtKindError(util.ERR_KIND_COUNT,
			"DFU key file '%s' has %d fields; expected %d",
			name, len(fields), DFU_FIELD_COUNT)
	}

	words := make([][]uint16, len(fields))
	for i, f := range fields {
		w, err := parseWords(f, name)
		if err != nil {
			return nil, err
		}
		words[i] = w
	}

	width := len(words[1])
	if width == 0 {
		return nil, util.FmtKindError(util.ERR_KIND_LENGTH,
			"Empty modulus in DFU key file '%s'", name)
	}
	for _, i := range []int{0, 3, 4} {
		if len(words[i]) != width {
			return nil, util.FmtKindError(util.ERR_KIND_LENGTH,
				"Field %d of DFU key file '%s' has %d words; expected %d",
				i+1, name, len(words[i]), width)
		}
	}
	if len(words[2]) != 1 {
		return nil, util.FmtKindError(util.ERR_KIND_LENGTH,
			"M' field of DFU key file '%s' must be a single word", name)
	}

	key.Exponent = words[0]
	key.Modulus = words[1]
	key.MDash = words[2][0]
	key.R2NmodM = words[3]
	key.RNmodM = words[4]

	return key, nil
}

func Read(filename string) (*Key, error) {
	data, err := util.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	key, err := Parse(data, filename)
	if err != nil {
		return nil, err
	}

	log.Debugf("Read %d-bit DFU key %s", 16*len(key.Modulus), filename)
	return key, nil
}

// Converts least-significant-first words to an integer.
func WordsToBigInt(words []uint16) *big.Int {
	buf := make([]byte, 2*len(words))
	for i, w := range words {
		off := len(buf) - 2*(i+1)
		buf[off] = byte(w >> 8)
		buf[off+1] = byte(w)
	}

	return new(big.Int).SetBytes(buf)
}

func (key *Key) ModulusInt() *big.Int {
	return WordsToBigInt(key.Modulus)
}

// Returns the integer formed by the low nbytes of the modulus.
func (key *Key) LowModulus(nbytes int) (*big.Int, error) {
	nwords := nbytes / 2
	if nwords > len(key.Modulus) {
		return nil, util.FmtKindError(util.ERR_KIND_LENGTH,
			"DFU key modulus has %d words; need %d",
			len(key.Modulus), nwords)
	}

	return WordsToBigInt(key.Modulus[:nwords]), nil
}

func (key *Key) Write(w io.Writer) error {
	buf := bytes.Buffer{}
	if key.Description != "" {
		buf.WriteString(key.Description)
		if !strings.HasSuffix(key.Description, "\n") {
			buf.WriteString("\n")
		}
	}

	writeWords := func(words []uint16) {
		buf.WriteString("@")
		for _, w := range words {
			fmt.Fprintf(&buf, " %X", w)
		}
		buf.WriteString("\n")
	}
	writeWords(key.Exponent)
	writeWords(key.Modulus)
	writeWords([]uint16{key.MDash})
	writeWords(key.R2NmodM)
	writeWords(key.RNmodM)

	if _, err := io.Copy(w, &buf); err != nil {
		return util.FmtKindError(util.ERR_KIND_IO_WRITE,
			"Error writing DFU key: %s", err.Error())
	}
	return nil
}
