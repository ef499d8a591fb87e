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

// Package keyfile reads and writes the plain-text key file format: one
// key per line as 32 (128-bit) or 16 (64-bit) hex digits, stored as
// big-endian 16-bit words, with '#' comment lines and blank lines
// ignored.  Device-range files may prefix a key with "<decimal id>=".
package keyfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/util"
)

const (
	KEY_WORDS_128 = 8
	KEY_WORDS_VUL = 4

	KEY_DIGITS_128 = KEY_WORDS_128 * 4
	KEY_DIGITS_VUL = KEY_WORDS_VUL * 4
)

type KeyRecord struct {
	Words       []uint16
	DeviceId    uint16
	HasDeviceId bool
}

func (rec KeyRecord) Is128() bool {
	return len(rec.Words) == KEY_WORDS_128
}

func (rec KeyRecord) String() string {
	sb := strings.Builder{}
	if rec.HasDeviceId {
		fmt.Fprintf(&sb, "%d=", rec.DeviceId)
	}
	for _, w := range rec.Words {
		fmt.Fprintf(&sb, "%04X", w)
	}
	return sb.String()
}

type keyParser struct {
	name          string
	allowDeviceId bool
	lineNum       int
}

func (kp *keyParser) lineError(kind util.ErrKind, text string) error {
	return util.FmtKindError(kind, "%s at line %d of key file '%s'",
		text, kp.lineNum, kp.name)
}

func parseKeyHex(s string) ([]uint16, bool) {
	words := make([]uint16, 0, len(s)/4)
	for i := 0; i < len(s); i += 4 {
		chunk := s[i : i+4]
		for j := 0; j < len(chunk); j++ {
			c := chunk[j]
			if !((c >= '0' && c <= '9') ||
				(c >= 'a' && c <= 'f') ||
				(c >= 'A' && c <= 'F')) {

				return nil, false
			}
		}

		w, err := strconv.ParseUint(chunk, 16, 16)
		if err != nil {
			return nil, false
		}
		words = append(words, uint16(w))
	}

	return words, true
}

func (kp *keyParser) parseLine(line string) (KeyRecord, error) {
	rec := KeyRecord{}

	keyStr := line
	if kp.allowDeviceId {
		if idx := strings.IndexByte(line, '='); idx >= 0 {
			idStr := strings.TrimSpace(line[:idx])
			id, err := strconv.ParseUint(idStr, 10, 16)
			if idStr == "" || err != nil {
				return rec, kp.lineError(util.ERR_KIND_SYNTAX,
					"Invalid device id")
			}

			rec.DeviceId = uint16(id)
			rec.HasDeviceId = true
			keyStr = strings.TrimSpace(line[idx+1:])
		}
	}

	if len(keyStr) != KEY_DIGITS_128 && len(keyStr) != KEY_DIGITS_VUL {
		return rec, kp.lineError(util.ERR_KIND_LENGTH,
			"Key of invalid length")
	}

	words, ok := parseKeyHex(keyStr)
	if !ok {
		return rec, kp.lineError(util.ERR_KIND_SYNTAX, "Invalid entry")
	}
	rec.Words = words

	return rec, nil
}

func (kp *keyParser) parse(r io.Reader) ([]KeyRecord, error) {
	recs := []KeyRecord{}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		kp.lineNum++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		rec, err := kp.parseLine(line)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, util.FmtIoError(util.ERR_KIND_IO_READ, kp.name,
			"Can't read file '%s': %s", kp.name, err.Error())
	}

	if len(recs) == 0 {
		return nil, util.FmtKindError(util.ERR_KIND_COUNT,
			"No key present in key file '%s'. "+
				"(File is empty, or just whitespace / comments.)", kp.name)
	}

	return recs, nil
}

// Parses key file text.  name is used in error messages only.
func ParseKeys(r io.Reader, name string) ([]KeyRecord, error) {
	kp := keyParser{name: name}
	return kp.parse(r)
}

// As ParseKeys, but accepts an optional "<decimal id>=" prefix per key.
func ParseDevRangeKeys(r io.Reader, name string) ([]KeyRecord, error) {
	kp := keyParser{name: name, allowDeviceId: true}
	return kp.parse(r)
}

func readKeyFile(filename string, allowDeviceId bool) ([]KeyRecord, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, util.FmtIoError(util.ERR_KIND_IO_READ, filename,
			"Can't open file '%s'", filename)
	}
	defer f.Close()

	kp := keyParser{name: filename, allowDeviceId: allowDeviceId}
	recs, err := kp.parse(f)
	if err != nil {
		return nil, err
	}

	log.Debugf("Read %d key(s) from key file %s", len(recs), filename)
	return recs, nil
}

func ReadKeys(filename string) ([]KeyRecord, error) {
	return readKeyFile(filename, false)
}

func ReadDevRangeKeys(filename string) ([]KeyRecord, error) {
	return readKeyFile(filename, true)
}

// Reads a file that must hold exactly one key.
func ReadKey(filename string) (KeyRecord, error) {
	recs, err := ReadKeys(filename)
	if err != nil {
		return KeyRecord{}, err
	}

	if len(recs) > 1 {
		return KeyRecord{}, util.FmtKindError(util.ERR_KIND_COUNT,
			"Multiple keys found in key file '%s', but only one was expected",
			filename)
	}

	return recs[0], nil
}

// Formats records one per line, separated by a single newline with no
// trailing newline.
func FormatKeys(recs []KeyRecord) []byte {
	lines := make([]string, len(recs))
	for i, rec := range recs {
		lines[i] = rec.String()
	}

	return []byte(strings.Join(lines, "\n"))
}

func writeKeyData(data []byte, count int, filename string) error {
	if err := util.WriteFileAtomic(filename, data, 0600); err != nil {
		return util.FmtIoError(util.ERR_KIND_IO_WRITE, filename,
			"Can't write to file '%s': %s", filename, err.Error())
	}

	log.Debugf("Wrote %d key(s) to key file %s", count, filename)
	return nil
}

func WriteKeys(recs []KeyRecord, filename string) error {
	return writeKeyData(FormatKeys(recs), len(recs), filename)
}
