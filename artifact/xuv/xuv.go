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

// Package xuv implements the XUV sparse memory image: a mapping from word
// address to 16-bit value, with the comment lines of the source text kept
// next to the data line they preceded.
package xuv

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/util"
)

const XUV_DEFAULT_FILL = 0xFF

// Largest address range, in words, that an image may cover when it is
// flattened.
const XUV_MAX_SPAN_WORDS = 1 << 24

type Image struct {
	Data        map[uint32]uint16
	Comments    map[uint32]string
	TailComment string
}

func NewImage() *Image {
	return &Image{
		Data:     map[uint32]uint16{},
		Comments: map[uint32]string{},
	}
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' ||
		c == '\v' || c == '\f'
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'f') ||
		(c >= 'A' && c <= 'F')
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func scanHex(s string, i int) (string, int) {
	start := i
	for i < len(s) && isHexDigit(s[i]) {
		i++
	}
	return s[start:i], i
}

// Parses a single line.  isData is false for comment lines.
func parseLine(line string) (addr uint32, val uint16, isData bool, err error) {
	i := skipSpace(line, 0)
	if i >= len(line) || line[i] != '@' {
		return 0, 0, false, nil
	}
	i++

	addrStr, i := scanHex(line, i)
	if addrStr == "" {
		return 0, 0, true, fmt.Errorf("missing address")
	}
	a, perr := strconv.ParseUint(addrStr, 16, 32)
	if perr != nil {
		return 0, 0, true, fmt.Errorf("address \"%s\" out of range", addrStr)
	}

	if i >= len(line) || !isBlank(line[i]) {
		return 0, 0, true, fmt.Errorf("missing separator after address")
	}
	i = skipSpace(line, i)

	valStr, i := scanHex(line, i)
	if valStr == "" {
		return 0, 0, true, fmt.Errorf("missing value")
	}
	v, perr := strconv.ParseUint(valStr, 16, 16)
	if perr != nil {
		return 0, 0, true, fmt.Errorf("value \"%s\" out of range", valStr)
	}

	if i = skipSpace(line, i); i < len(line) {
		return 0, 0, true, fmt.Errorf("unexpected text \"%s\"", line[i:])
	}

	return uint32(a), uint16(v), true, nil
}

// Parse reads XUV text.  Runs of comment lines are attached to the next
// data address; a run with no following data line becomes the tail
// comment.
func Parse(r io.Reader) (*Image, error) {
	img := NewImage()
	br := bufio.NewReader(r)

	comment := strings.Builder{}
	for lineNum := 1; ; lineNum++ {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, util.FmtKindError(util.ERR_KIND_IO_READ,
				"Error reading XUV data: %s", err.Error())
		}
		if line == "" && err == io.EOF {
			break
		}

		line = strings.TrimSuffix(line, "\n")
		addr, val, isData, perr := parseLine(line)
		if perr != nil {
			return nil, util.FmtKindError(util.ERR_KIND_SYNTAX,
				"Syntax error at line %d: %s", lineNum, perr.Error())
		}

		if isData {
			img.Data[addr] = val
			if comment.Len() > 0 {
				img.Comments[addr] = comment.String()
				comment.Reset()
			}
		} else {
			comment.WriteString(line)
			comment.WriteString("\n")
		}

		if err == io.EOF {
			break
		}
	}

	img.TailComment = comment.String()
	return img, nil
}

func Read(filename string) (*Image, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, util.FmtIoError(util.ERR_KIND_IO_READ, filename,
			"Can't open XUV file '%s': %s", filename, err.Error())
	}
	defer f.Close()

	img, err := Parse(f)
	if err != nil {
		newtErr := util.AsNewtError(err)
		newtErr.Text = fmt.Sprintf("%s in XUV file '%s'",
			newtErr.Text, filename)
		newtErr.Path = filename
		return nil, newtErr
	}

	log.Debugf("Read %d words from XUV file %s", len(img.Data), filename)
	return img, nil
}

// Returns the image's addresses in ascending order.
func (img *Image) Addrs() []uint32 {
	addrs := make([]uint32, 0, len(img.Data))
	for addr := range img.Data {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i int, j int) bool {
		return addrs[i] < addrs[j]
	})

	return addrs
}

func (img *Image) Empty() bool {
	return len(img.Data) == 0
}

// Returns the lowest and highest addresses present in the image.  ok is
// false for an empty image.
func (img *Image) Range() (first uint32, last uint32, ok bool) {
	for addr := range img.Data {
		if !ok || addr < first {
			first = addr
		}
		if !ok || addr > last {
			last = addr
		}
		ok = true
	}

	return first, last, ok
}

// Returns the image's address range, or an error if the image is empty or
// too sparse to flatten.
func (img *Image) Span() (uint32, uint32, error) {
	first, last, ok := img.Range()
	if !ok {
		return 0, 0, util.NewKindError(util.ERR_KIND_LENGTH,
			"No data in XUV image")
	}

	if words := uint64(last) - uint64(first) + 1; words > XUV_MAX_SPAN_WORDS {
		return 0, 0, util.FmtKindError(util.ERR_KIND_LENGTH,
			"XUV image spans 0x%X-0x%X (%d words); limit is %d words",
			first, last, words, XUV_MAX_SPAN_WORDS)
	}

	return first, last, nil
}

func (img *Image) Set(addr uint32, val uint16) {
	img.Data[addr] = val
}

// Writes the image as XUV text.  Comments attached to an address are
// emitted before its data line; comments without data are dropped.
func (img *Image) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)

	for _, addr := range img.Addrs() {
		if c, ok := img.Comments[addr]; ok {
			bw.WriteString(c)
		}
		fmt.Fprintf(bw, "@%06X   %04X\n", addr, img.Data[addr])
	}
	bw.WriteString(img.TailComment)

	if err := bw.Flush(); err != nil {
		return util.FmtKindError(util.ERR_KIND_IO_WRITE,
			"Error writing XUV data: %s", err.Error())
	}
	return nil
}

func (img *Image) Bytes() []byte {
	buf := bytes.Buffer{}
	// Writes to a bytes.Buffer cannot fail.
	img.Write(&buf)
	return buf.Bytes()
}

// Returns a new image holding the words of img in [first, last].
// Comments attached to copied addresses are kept.
func (img *Image) Extract(first uint32, last uint32) *Image {
	sub := NewImage()
	for addr, val := range img.Data {
		if addr >= first && addr <= last {
			sub.Data[addr] = val
			if c, ok := img.Comments[addr]; ok {
				sub.Comments[addr] = c
			}
		}
	}

	return sub
}

// ParseAddr parses a word address given in hex, with or without a 0x
// prefix.
func ParseAddr(s string) (uint32, error) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")

	addr, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return 0, util.FmtKindError(util.ERR_KIND_VALIDATION,
			"Invalid hexadecimal address \"%s\"", s)
	}

	return uint32(addr), nil
}
