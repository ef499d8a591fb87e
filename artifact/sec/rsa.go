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

package sec

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"io"
	"math/big"

	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/util"
)

const RSA_EXP_3 = 3
const RSA_EXP_F4 = 65537

var rsaPrivPemTypes = []string{"RSA PRIVATE KEY", "PRIVATE KEY", "EC PRIVATE KEY"}
var rsaPubPemTypes = []string{"PUBLIC KEY", "RSA PUBLIC KEY"}

func hasType(types []string, t string) bool {
	for _, s := range types {
		if s == t {
			return true
		}
	}
	return false
}

// Returns the first PEM block whose type is one of types.  A file with
// no PEM block at all is a syntax error; a file containing only blocks of
// other types is a not-found error.
func findPemBlock(keyBytes []byte, types []string) (*pem.Block, error) {
	seen := false
	rest := keyBytes
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		seen = true

		if hasType(types, block.Type) {
			return block, nil
		}
	}

	if !seen {
		return nil, util.NewKindError(util.ERR_KIND_SYNTAX,
			"No PEM data found")
	}
	return nil, util.FmtKindError(util.ERR_KIND_NOT_FOUND,
		"No PEM block of type %v found", types)
}

// ParsePrivateKey decodes a PEM private key.  PKCS#1 RSA, SEC1 EC and
// unencrypted PKCS#8 encodings are accepted; the caller checks the key
// type.
func ParsePrivateKey(keyBytes []byte) (interface{}, error) {
	block, err := findPemBlock(keyBytes, rsaPrivPemTypes)
	if err != nil {
		return nil, err
	}

	var privKey interface{}
	switch block.Type {
	case "RSA PRIVATE KEY":
		privKey, err = x509.ParsePKCS1PrivateKey(block.Bytes)
	case "EC PRIVATE KEY":
		privKey, err = x509.ParseECPrivateKey(block.Bytes)
	default:
		// PKCS#8; the key type is indicated within the key itself.
		privKey, err = x509.ParsePKCS8PrivateKey(block.Bytes)
	}
	if err != nil {
		return nil, util.FmtKindError(util.ERR_KIND_SYNTAX,
			"Private key parsing failed: %s", err)
	}

	return privKey, nil
}

func ParsePublicKey(keyBytes []byte) (interface{}, error) {
	block, err := findPemBlock(keyBytes, rsaPubPemTypes)
	if err != nil {
		return nil, err
	}

	var pubKey interface{}
	if block.Type == "RSA PUBLIC KEY" {
		pubKey, err = x509.ParsePKCS1PublicKey(block.Bytes)
	} else {
		pubKey, err = x509.ParsePKIXPublicKey(block.Bytes)
	}
	if err != nil {
		return nil, util.FmtKindError(util.ERR_KIND_SYNTAX,
			"Public key parsing failed: %s", err)
	}

	return pubKey, nil
}

func keyTypeError(filename string, what string) error {
	return util.FmtKindError(util.ERR_KIND_VALIDATION,
		"Key in '%s' is not an RSA %s key", filename, what)
}

func ReadRsaPrivateKey(filename string) (*rsa.PrivateKey, error) {
	keyBytes, err := util.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	privKey, err := ParsePrivateKey(keyBytes)
	if err != nil {
		return nil, err
	}

	priv, ok := privKey.(*rsa.PrivateKey)
	if !ok {
		return nil, keyTypeError(filename, "private")
	}

	return priv, nil
}

func ReadRsaPublicKey(filename string) (*rsa.PublicKey, error) {
	keyBytes, err := util.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	pubKey, err := ParsePublicKey(keyBytes)
	if err != nil {
		return nil, err
	}

	pub, ok := pubKey.(*rsa.PublicKey)
	if !ok {
		return nil, keyTypeError(filename, "public")
	}

	return pub, nil
}

// Signs data with RSA-PSS over SHA-256, salt length equal to the digest
// length.  The signature is exactly key.Size() bytes.
func SignPss(key *rsa.PrivateKey, data []byte) ([]byte, error) {
	opts := rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthEqualsHash,
	}

	sig, err := rsa.SignPSS(rand.Reader, key, crypto.SHA256, Sha256(data),
		&opts)
	if err != nil {
		return nil, util.FmtKindError(util.ERR_KIND_PRIMITIVE,
			"Failed to compute signature: %s", err)
	}

	if len(sig) > key.Size() {
		panic("signature larger than key size")
	}

	return sig, nil
}

func VerifyPss(key *rsa.PublicKey, data []byte, sig []byte) error {
	opts := rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthEqualsHash,
	}

	if err := rsa.VerifyPSS(key, crypto.SHA256, Sha256(data), sig,
		&opts); err != nil {

		return util.FmtKindError(util.ERR_KIND_PRIMITIVE,
			"Signature verification failed: %s", err)
	}

	return nil
}

// GenerateRsaKey creates an RSA key pair of the given size with public
// exponent 3 or 65537.
func GenerateRsaKey(r io.Reader, bits int, exp int) (*rsa.PrivateKey, error) {
	if bits != 1024 && bits != 2048 {
		return nil, util.FmtKindError(util.ERR_KIND_VALIDATION,
			"Unsupported RSA key size %d; must be 1024 or 2048", bits)
	}
	if r == nil {
		r = rand.Reader
	}

	switch exp {
	case RSA_EXP_F4:
		key, err := rsa.GenerateKey(r, bits)
		if err != nil {
			return nil, util.FmtKindError(util.ERR_KIND_PRIMITIVE,
				"Key creation failed: %s", err)
		}
		return key, nil

	case RSA_EXP_3:
		return generateRsaKeySmallExp(r, bits, exp)

	default:
		return nil, util.FmtKindError(util.ERR_KIND_VALIDATION,
			"Unsupported RSA public exponent %d; must be 3 or 65537", exp)
	}
}

// crypto/rsa always uses 65537, so small exponents are handled by
// searching for primes p, q with gcd(p-1, e) == gcd(q-1, e) == 1.
func generateRsaKeySmallExp(r io.Reader, bits int,
	exp int) (*rsa.PrivateKey, error) {

	e := big.NewInt(int64(exp))
	one := big.NewInt(1)

	prime := func() (*big.Int, error) {
		for {
			p, err := rand.Prime(r, bits/2)
			if err != nil {
				return nil, err
			}

			pm1 := new(big.Int).Sub(p, one)
			if new(big.Int).GCD(nil, nil, pm1, e).Cmp(one) == 0 {
				return p, nil
			}
		}
	}

	for {
		p, err := prime()
		if err != nil {
			return nil, util.FmtKindError(util.ERR_KIND_PRIMITIVE,
				"Key creation failed: %s", err)
		}
		q, err := prime()
		if err != nil {
			return nil, util.FmtKindError(util.ERR_KIND_PRIMITIVE,
				"Key creation failed: %s", err)
		}
		if p.Cmp(q) == 0 {
			continue
		}

		n := new(big.Int).Mul(p, q)
		if n.BitLen() != bits {
			continue
		}

		phi := new(big.Int).Mul(new(big.Int).Sub(p, one),
			new(big.Int).Sub(q, one))
		d := new(big.Int).ModInverse(e, phi)
		if d == nil {
			continue
		}

		key := &rsa.PrivateKey{
			PublicKey: rsa.PublicKey{
				N: n,
				E: exp,
			},
			D:      d,
			Primes: []*big.Int{p, q},
		}
		if err := key.Validate(); err != nil {
			return nil, util.FmtKindError(util.ERR_KIND_PRIMITIVE,
				"Key creation failed: %s", err)
		}
		key.Precompute()

		return key, nil
	}
}

func MarshalPrivateKeyPem(key *rsa.PrivateKey) ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, util.FmtKindError(util.ERR_KIND_PRIMITIVE,
			"Failed to encode private key: %s", err)
	}

	return pem.EncodeToMemory(&pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: der,
	}), nil
}

func MarshalPublicKeyPem(key *rsa.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(key)
	if err != nil {
		return nil, util.FmtKindError(util.ERR_KIND_PRIMITIVE,
			"Failed to encode public key: %s", err)
	}

	return pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: der,
	}), nil
}
