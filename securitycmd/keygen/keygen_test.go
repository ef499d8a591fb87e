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
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/artifact/dfukey"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/artifact/keyfile"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/artifact/sec"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/util"
)

const testKey = "000102030405060708090A0B0C0D0E0F\n"

func writeFile(t *testing.T, dir string, name string, contents []byte) string {
	path := filepath.Join(dir, name)
	if err := ioutil.WriteFile(path, contents, 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCreateUnlockKeyFile(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "key.txt", []byte(testKey))
	out := filepath.Join(dir, "unlock.txt")

	if err := CreateUnlockKeyFile(in, out); err != nil {
		t.Fatal(err)
	}

	got, err := keyfile.ReadAes128Key(out)
	if err != nil {
		t.Fatal(err)
	}

	raw, _ := keyfile.ReadAes128Key(in)
	want, err := sec.EncryptBlock(sec.Reverse(raw), make([]byte, 16))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("unlock key mismatch: %x != %x", got, want)
	}
}

func TestCreateUnlockKeyStatuses(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.txt", []byte("0011\n"))

	err := CreateUnlockKeyFile(bad, filepath.Join(dir, "out.txt"))
	if util.OpStatus(err) != util.STATUS_READ_FAIL {
		t.Fatalf("unexpected status %s", util.OpStatus(err))
	}

	in := writeFile(t, dir, "key.txt", []byte(testKey))
	err = CreateUnlockKeyFile(in, filepath.Join(dir, "nodir", "out.txt"))
	if util.OpStatus(err) != util.STATUS_WRITE_FAIL {
		t.Fatalf("unexpected status %s", util.OpStatus(err))
	}
}

func TestParseArgs(t *testing.T) {
	if bits, err := ParseKeySize("2048"); err != nil || bits != 2048 {
		t.Fatalf("ParseKeySize(2048) = %d, %v", bits, err)
	}
	if _, err := ParseKeySize("4096"); err == nil {
		t.Fatalf("ParseKeySize(4096) succeeded")
	}

	for _, s := range []string{"F4", "f4", "65537"} {
		if exp, err := ParseExponent(s); err != nil || exp != sec.RSA_EXP_F4 {
			t.Fatalf("ParseExponent(%s) = %d, %v", s, exp, err)
		}
	}
	if _, err := ParseExponent("17"); err == nil {
		t.Fatalf("ParseExponent(17) succeeded")
	}

	for _, s := range []string{"prv", "PRV", "Pub"} {
		if _, err := ParseKeyType(s); err != nil {
			t.Fatal(err)
		}
	}
	_, err := ParseKeyType("priv")
	if err == nil || err.Error() !=
		"Invalid key type argument \"priv\". Should be one of prv or pub." {

		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateRsaKeyFilesAndConvert(t *testing.T) {
	dir := t.TempDir()
	prv := filepath.Join(dir, "prv.pem")
	pub := filepath.Join(dir, "pub.pem")

	if err := CreateRsaKeyFiles(1024, sec.RSA_EXP_F4, prv, pub,
		nil); err != nil {

		t.Fatal(err)
	}

	key, err := sec.ReadRsaPrivateKey(prv)
	if err != nil {
		t.Fatal(err)
	}
	pubKey, err := sec.ReadRsaPublicKey(pub)
	if err != nil {
		t.Fatal(err)
	}
	if key.N.Cmp(pubKey.N) != 0 || key.E != sec.RSA_EXP_F4 {
		t.Fatalf("key pair mismatch")
	}

	out := filepath.Join(dir, "pub.dfu")
	if err := PemToDfuFile(KEY_TYPE_PUBLIC, pub, out); err != nil {
		t.Fatal(err)
	}

	dk, err := dfukey.Read(out)
	if err != nil {
		t.Fatal(err)
	}
	if dk.ModulusInt().Cmp(key.N) != 0 {
		t.Fatalf("DFU modulus mismatch")
	}
	if len(dk.Modulus) != 64 {
		t.Fatalf("expected 64 modulus words, got %d", len(dk.Modulus))
	}
	if dfukey.WordsToBigInt(dk.Exponent).Int64() != sec.RSA_EXP_F4 {
		t.Fatalf("DFU exponent mismatch")
	}

	out = filepath.Join(dir, "prv.dfu")
	if err := PemToDfuFile(KEY_TYPE_PRIVATE, prv, out); err != nil {
		t.Fatal(err)
	}
	dk, err = dfukey.Read(out)
	if err != nil {
		t.Fatal(err)
	}
	if dfukey.WordsToBigInt(dk.Exponent).Cmp(key.D) != 0 {
		t.Fatalf("DFU private exponent mismatch")
	}
}

func TestPemToDfuStatuses(t *testing.T) {
	dir := t.TempDir()

	rsaPrv := filepath.Join(dir, "prv.pem")
	rsaPub := filepath.Join(dir, "pub.pem")
	if err := CreateRsaKeyFiles(1024, sec.RSA_EXP_F4, rsaPrv, rsaPub,
		nil); err != nil {

		t.Fatal(err)
	}

	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	der, err := x509.MarshalPKCS8PrivateKey(ecKey)
	if err != nil {
		t.Fatal(err)
	}
	ecPrv := writeFile(t, dir, "ec.pem",
		pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))

	notPem := writeFile(t, dir, "text.txt", []byte(testKey))
	missing := filepath.Join(dir, "missing.pem")

	tests := []struct {
		kt     KeyType
		path   string
		status util.Status
	}{
		{KEY_TYPE_PRIVATE, missing, util.STATUS_READ_FAIL},
		{KEY_TYPE_PRIVATE, notPem, util.STATUS_READ_FAIL},
		{KEY_TYPE_PRIVATE, rsaPub, util.STATUS_ERR_PRVKEY},
		{KEY_TYPE_PUBLIC, rsaPrv, util.STATUS_ERR_PUBKEY},
		{KEY_TYPE_PRIVATE, ecPrv, util.STATUS_ERR_KEYTYPE},
	}

	for _, test := range tests {
		_, err := PemToDfu(test.kt, test.path)
		if status := util.OpStatus(err); status != test.status {
			t.Fatalf("%s %s: got status %s, want %s",
				test.kt, filepath.Base(test.path), status, test.status)
		}
	}
}

func TestWrapKeyFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	kek := writeFile(t, dir, "kek.txt",
		[]byte("# transport key\nFFEEDDCCBBAA99887766554433221100\n"))
	in := writeFile(t, dir, "key.txt", []byte(testKey))
	wrapped := filepath.Join(dir, "wrapped.txt")
	out := filepath.Join(dir, "unwrapped.txt")

	if err := WrapKeyFile(kek, in, wrapped); err != nil {
		t.Fatal(err)
	}

	data, err := ioutil.ReadFile(wrapped)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 2*WRAPPED_KEY_SIZE ||
		strings.ToUpper(string(data)) != string(data) {

		t.Fatalf("unexpected wrapped key text %q", data)
	}

	if err := UnwrapKeyFile(kek, wrapped, out); err != nil {
		t.Fatal(err)
	}

	a, _ := keyfile.ReadAes128Key(in)
	b, err := keyfile.ReadAes128Key(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("unwrapped key mismatch: %x != %x", b, a)
	}

	// A different KEK fails the integrity check.
	otherKek := writeFile(t, dir, "other.txt", []byte(testKey))
	err = UnwrapKeyFile(otherKek, wrapped, out)
	if util.OpStatus(err) != util.STATUS_ENCRYPT_FAIL {
		t.Fatalf("unexpected status %s", util.OpStatus(err))
	}
}

func TestParseWrappedKeyErrors(t *testing.T) {
	line := strings.Repeat("AB", WRAPPED_KEY_SIZE)

	tests := []struct {
		text string
		kind util.ErrKind
	}{
		{"", util.ERR_KIND_COUNT},
		{"# only a comment\n", util.ERR_KIND_COUNT},
		{line + "\n" + line + "\n", util.ERR_KIND_COUNT},
		{"XYZ\n", util.ERR_KIND_SYNTAX},
		{"ABCD\n", util.ERR_KIND_LENGTH},
	}

	for _, test := range tests {
		_, err := ParseWrappedKey([]byte(test.text), "test")
		if !util.IsKind(err, test.kind) {
			t.Fatalf("%q: got kind %s, want %s",
				test.text, util.ErrorKind(err), test.kind)
		}
	}

	if _, err := ParseWrappedKey([]byte(line), "test"); err != nil {
		t.Fatal(err)
	}
}
