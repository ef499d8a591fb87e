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
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/artifact/keyfile"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/artifact/sec"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/util"
)

const zeroKey = "00000000000000000000000000000000\n"

type failReader struct {
	t *testing.T
}

func (r failReader) Read(p []byte) (int, error) {
	r.t.Fatalf("nonce generated before key validation")
	return 0, nil
}

// Returns 0x00, 0x01, ... so nonces are predictable.
func countingReader() *bytes.Reader {
	b := make([]byte, 64)
	for i := range b {
		b[i] = byte(i)
	}
	return bytes.NewReader(b)
}

type testFiles struct {
	oem    string
	vendor string
	out    string
}

func setup(t *testing.T, vendorKeys int) testFiles {
	dir := t.TempDir()
	tf := testFiles{
		oem:    filepath.Join(dir, "oem.txt"),
		vendor: filepath.Join(dir, "qcom.txt"),
		out:    filepath.Join(dir, "bundle.txt"),
	}

	oem := "# OEM key\n000102030405060708090A0B0C0D0E0F\n"
	if err := ioutil.WriteFile(tf.oem, []byte(oem), 0600); err != nil {
		t.Fatal(err)
	}

	vendor := strings.Repeat(zeroKey, vendorKeys)
	if err := ioutil.WriteFile(tf.vendor, []byte(vendor), 0600); err != nil {
		t.Fatal(err)
	}

	return tf
}

func TestWrongVendorKeyCount(t *testing.T) {
	for _, antiReplay := range []bool{false, true} {
		tf := setup(t, 4)

		err := CreateFile(tf.oem, tf.vendor, tf.out, antiReplay,
			failReader{t})
		if util.OpStatus(err) != util.STATUS_READ_QCOM {
			t.Fatalf("unexpected status %s", util.OpStatus(err))
		}
		if !util.IsKind(err, util.ERR_KIND_COUNT) {
			t.Fatalf("unexpected error kind %s", util.ErrorKind(err))
		}
		if _, err := ioutil.ReadFile(tf.out); err == nil {
			t.Fatalf("bundle written despite failure")
		}
	}
}

func TestStandardBundle(t *testing.T) {
	tf := setup(t, 3)

	if err := CreateFile(tf.oem, tf.vendor, tf.out, false,
		countingReader()); err != nil {

		t.Fatal(err)
	}

	data, err := ioutil.ReadFile(tf.out)
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Split(string(data), "\n"); len(lines) != 6 {
		t.Fatalf("expected 6 bundle lines, got %d", len(lines))
	}

	keys, err := keyfile.ReadLeAes128Keys(tf.out)
	if err != nil {
		t.Fatal(err)
	}
	total := 0
	for _, k := range keys {
		total += len(k)
	}
	if total != 96 {
		t.Fatalf("expected 96 bundle bytes, got %d", total)
	}

	b, err := BundleFromKeys(keys, false)
	if err != nil {
		t.Fatal(err)
	}

	rnd := countingReader()
	nonceMic, _ := sec.Nonce(rnd, 16)
	nonceEnc, _ := sec.Nonce(rnd, 16)
	if !bytes.Equal(b.NonceMic, nonceMic) {
		t.Fatalf("NonceMic mismatch: %x", b.NonceMic)
	}
	if !bytes.Equal(b.NonceEnc, sec.Reverse(nonceEnc)) {
		t.Fatalf("NonceEnc not reversed: %x", b.NonceEnc)
	}

	kek := make([]byte, 16)
	if err := b.Verify(kek); err != nil {
		t.Fatal(err)
	}

	// The wrapped key decrypts to the byte-reversed OEM key.
	plain, err := sec.Cctr(kek, nonceEnc, b.WrappedKey, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x0F, 0x0E, 0x0D, 0x0C, 0x0B, 0x0A, 0x09, 0x08,
		0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01, 0x00}
	if !bytes.Equal(plain, want) {
		t.Fatalf("unwrapped key mismatch: %x", plain)
	}
}

func TestBundleDeterministicGivenNonces(t *testing.T) {
	tf := setup(t, 3)
	out2 := tf.out + ".2"

	if err := CreateFile(tf.oem, tf.vendor, tf.out, false,
		countingReader()); err != nil {

		t.Fatal(err)
	}
	if err := CreateFile(tf.oem, tf.vendor, out2, false,
		countingReader()); err != nil {

		t.Fatal(err)
	}

	a, _ := ioutil.ReadFile(tf.out)
	b, _ := ioutil.ReadFile(out2)
	if !bytes.Equal(a, b) {
		t.Fatalf("bundles differ with identical nonces")
	}
}

func TestAntiReplayBundle(t *testing.T) {
	keys := make([][]byte, 5)
	for i := range keys {
		keys[i] = bytes.Repeat([]byte{byte(i + 1)}, 16)
	}
	vk, err := NewVendorKeys(keys, true)
	if err != nil {
		t.Fatal(err)
	}

	oem := make([]byte, 16)
	b, err := Wrap(oem, vk, true, countingReader())
	if err != nil {
		t.Fatal(err)
	}

	fields := b.Keys()
	if len(fields) != 8 {
		t.Fatalf("expected 8 fields, got %d", len(fields))
	}
	if !bytes.Equal(fields[2], vk.QcomIv) ||
		!bytes.Equal(fields[3], vk.EncPaKek) ||
		!bytes.Equal(fields[4], vk.EncKek) ||
		!bytes.Equal(fields[7], vk.PaKek) {

		t.Fatalf("anti-replay fields out of order")
	}
	if err := b.Verify(vk.Kek); err != nil {
		t.Fatal(err)
	}

	// Rebuilding from the written order yields the same MIC.
	rebuilt, err := BundleFromKeys(fields, true)
	if err != nil {
		t.Fatal(err)
	}
	if err := rebuilt.Verify(vk.Kek); err != nil {
		t.Fatal(err)
	}

	// A standard bundle over the same inputs authenticates different data.
	std, err := Wrap(oem, vk, false, countingReader())
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(std.Mic, b.Mic) {
		t.Fatalf("anti-replay MIC equals standard MIC")
	}
}

func TestVerifyDetectsTamper(t *testing.T) {
	vk, err := NewVendorKeys([][]byte{make([]byte, 16), make([]byte, 16),
		make([]byte, 16)}, false)
	if err != nil {
		t.Fatal(err)
	}

	b, err := Wrap(make([]byte, 16), vk, false, countingReader())
	if err != nil {
		t.Fatal(err)
	}
	b.WrappedKey[0] ^= 0x80

	if err := b.Verify(vk.Kek); !util.IsKind(err, util.ERR_KIND_VALIDATION) {
		t.Fatalf("tampered bundle verified: %v", err)
	}
}

func TestShortNonceSource(t *testing.T) {
	tf := setup(t, 3)

	err := CreateFile(tf.oem, tf.vendor, tf.out, false,
		bytes.NewReader(make([]byte, 20)))
	if util.OpStatus(err) != util.STATUS_PRIMITIVE_FAIL {
		t.Fatalf("unexpected status %s", util.OpStatus(err))
	}
}
