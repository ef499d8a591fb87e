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

package aspk

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"io/ioutil"
	"math/big"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/artifact/dfukey"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/artifact/sec"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/util"
)

func TestScrambleText(t *testing.T) {
	// AAAA decodes to three zero bytes.
	n, err := Scramble("F0F0", "0F0F", "AAAA", MODULUS_FORMAT_TEXT)
	if err != nil {
		t.Fatal(err)
	}
	if n.Cmp(big.NewInt(0xFFFF)) != 0 {
		t.Fatalf("unexpected result %s", sec.BigIntHex(n))
	}

	// "AQ==" is 0x01.
	n, err = Scramble("10", "01", "AQ==", MODULUS_FORMAT_TEXT)
	if err != nil {
		t.Fatal(err)
	}
	if n.Cmp(big.NewInt(0x10)) != 0 {
		t.Fatalf("unexpected result %s", sec.BigIntHex(n))
	}
}

func TestScrambleBase64Padding(t *testing.T) {
	tests := []struct {
		aspk string
		ok   bool
	}{
		{"AAAA", true},
		{"AA==", true},
		{"A===", false},
		{"AA=A", false},
		{"AAA", false},
	}

	for _, test := range tests {
		_, err := Scramble("1", "1", test.aspk, MODULUS_FORMAT_TEXT)
		if (err == nil) != test.ok {
			t.Fatalf("%q: unexpected result %v", test.aspk, err)
		}
		if err != nil && !util.IsKind(err, util.ERR_KIND_VALIDATION) {
			t.Fatalf("%q: unexpected kind %s", test.aspk, util.ErrorKind(err))
		}
	}
}

func TestScrambleReportsAllErrors(t *testing.T) {
	_, err := Scramble("XYZ", "", "A===", MODULUS_FORMAT_TEXT)
	if err == nil {
		t.Fatalf("scramble of invalid operands succeeded")
	}

	lines := strings.Split(err.Error(), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 errors, got %d: %s", len(lines), err.Error())
	}
}

func TestScramblePem(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatal(err)
	}
	pemBytes, err := sec.MarshalPublicKeyPem(&key.PublicKey)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "pub.pem")
	if err := ioutil.WriteFile(path, pemBytes, 0600); err != nil {
		t.Fatal(err)
	}

	n, err := Scramble(path, "0", "AAAA", MODULUS_FORMAT_PEM)
	if err != nil {
		t.Fatal(err)
	}
	want := sec.MaskBits(key.N, ASPK_MODULUS_BITS)
	if n.Cmp(want) != 0 {
		t.Fatalf("modulus not masked to %d bits", ASPK_MODULUS_BITS)
	}

	_, err = Scramble(path+".missing", "0", "AAAA", MODULUS_FORMAT_PEM)
	if err == nil || !strings.HasPrefix(err.Error(), "Failed to read public key") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestScrambleDfu(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatal(err)
	}
	text, err := dfukey.EncodePublic(&key.PublicKey)
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "pub.dfu")
	if err := ioutil.WriteFile(path, text, 0600); err != nil {
		t.Fatal(err)
	}

	n, err := Scramble(path, "0", "AAAA", MODULUS_FORMAT_DFU)
	if err != nil {
		t.Fatal(err)
	}
	if n.Cmp(sec.MaskBits(key.N, ASPK_MODULUS_BITS)) != 0 {
		t.Fatalf("dfu modulus does not match key")
	}

	out := filepath.Join(dir, "out.txt")
	if err := ScrambleToFile(path, "0", "AAAA", MODULUS_FORMAT_DFU,
		out, nil); err != nil {

		t.Fatal(err)
	}
	data, err := ioutil.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != sec.BigIntHex(n) {
		t.Fatalf("unexpected file contents %q", data)
	}
}

func TestScrambleToStream(t *testing.T) {
	buf := bytes.Buffer{}
	if err := ScrambleToFile("0", "0", "AAAA", MODULUS_FORMAT_TEXT, "",
		&buf); err != nil {

		t.Fatal(err)
	}
	if buf.String() != "0\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
