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

package cli

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/artifact/xuv"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/securitycmd/aspk"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/securitycmd/manifest"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/util"
)

func TestParseScrambleArgs(t *testing.T) {
	tests := []struct {
		args    []string
		outFile string
		format  aspk.ModulusFormat
		errText string
	}{
		{[]string{"m", "s", "a"}, "", aspk.MODULUS_FORMAT_TEXT, ""},
		{[]string{"m", "s", "a", "out"}, "out", aspk.MODULUS_FORMAT_TEXT, ""},
		{[]string{"m", "s", "a", "-pem"}, "", aspk.MODULUS_FORMAT_PEM, ""},
		{[]string{"m", "s", "a", "out", "-dfu"}, "out",
			aspk.MODULUS_FORMAT_DFU, ""},
		{[]string{"m", "s", "a", "-DFU", "out"}, "out",
			aspk.MODULUS_FORMAT_DFU, ""},
		{[]string{"m", "s", "a", "-pem", "-dfu"}, "", 0,
			"two flags specified."},
		{[]string{"m", "s", "a", "-x"}, "", 0, "invalid flag \"-x\"."},
		{[]string{"m", "s"}, "", 0,
			"scrambleaspk requires a modulus, a seed and an aspk"},
		{[]string{"--manifest", "m.json", "m", "s", "a", "out"}, "out",
			aspk.MODULUS_FORMAT_TEXT, ""},
		{[]string{"m", "-q", "s", "a", "-pem", "out"}, "out",
			aspk.MODULUS_FORMAT_PEM, ""},
		{[]string{"m", "s", "a", "--bogus"}, "", 0,
			"invalid flag \"--bogus\"."},
		{[]string{"m", "s", "a", "out", "extra"}, "", 0,
			"unexpected argument \"extra\"."},
	}

	for _, test := range tests {
		flags := pflag.NewFlagSet("scrambleaspk", pflag.ContinueOnError)
		flags.String("manifest", "", "")
		flags.BoolP("quiet", "q", false, "")

		sa, err := parseScrambleArgs(flags, test.args)
		if test.errText != "" {
			if err == nil || err.Error() != test.errText {
				t.Fatalf("%v: unexpected error %v", test.args, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%v: %s", test.args, err.Error())
		}
		if sa.outFile != test.outFile || sa.format != test.format {
			t.Fatalf("%v: got outfile %q format %s",
				test.args, sa.outFile, sa.format)
		}
	}
}

func TestScrambleAspkGlobalFlags(t *testing.T) {
	defer func() {
		OptManifest = ""
		OptQuiet = false
		OptLogLevel = "WARN"
	}()

	tests := []func(out string, mfest string) []string{
		func(out string, mfest string) []string {
			return []string{"--manifest", mfest, "scrambleaspk",
				"01", "02", "AAAA", out}
		},
		func(out string, mfest string) []string {
			return []string{"scrambleaspk", "01", "02", "AAAA", out,
				"-q", "--manifest=" + mfest}
		},
	}

	for i, argsFn := range tests {
		dir := t.TempDir()
		out := filepath.Join(dir, "out.txt")
		mfest := filepath.Join(dir, "manifest.json")

		root := &cobra.Command{Use: "securitycmd"}
		AddGlobalFlags(root)
		AddAspkCommands(root)
		root.SetArgs(argsFn(out, mfest))
		if err := root.Execute(); err != nil {
			t.Fatalf("case %d: %s", i, err.Error())
		}

		data, err := ioutil.ReadFile(out)
		if err != nil {
			t.Fatalf("case %d: %s", i, err.Error())
		}
		if string(data) != "3" {
			t.Fatalf("case %d: unexpected output %q", i, data)
		}

		m, err := manifest.ReadManifest(mfest)
		if err != nil {
			t.Fatalf("case %d: manifest not written: %s", i, err.Error())
		}
		if m.Command != "scrambleaspk" || len(m.Outputs) != 1 {
			t.Fatalf("case %d: unexpected manifest %+v", i, m)
		}
	}
}

func TestEndianFlag(t *testing.T) {
	t.Setenv(xuv.ENV_XUV_ENDIAN, "LITTLE")

	v := endianValue{}
	OptEndian = v
	if ResolveEndian() != xuv.ENDIAN_LITTLE {
		t.Fatalf("environment not consulted")
	}

	if err := OptEndian.Set("b"); err != nil {
		t.Fatal(err)
	}
	if ResolveEndian() != xuv.ENDIAN_BIG {
		t.Fatalf("flag does not override environment")
	}
	if OptEndian.String() != "U16BE" {
		t.Fatalf("unexpected flag string %q", OptEndian.String())
	}

	if err := OptEndian.Set("middle"); err == nil {
		t.Fatalf("invalid endianness accepted")
	}
	OptEndian = endianValue{}
}

func TestProductFlag(t *testing.T) {
	p := productValue(PRODUCT_CDA)
	if err := p.Set("ue"); err != nil || p != PRODUCT_UE {
		t.Fatalf("Set(ue) = %s, %v", p, err)
	}
	if err := p.Set("XY"); err == nil {
		t.Fatalf("invalid product accepted")
	}

	OptLogLevel = "WARN"
	OptProduct = PRODUCT_UE
	err := SetupGlobal()
	OptProduct = PRODUCT_CDA
	if !util.IsKind(err, util.ERR_KIND_VALIDATION) {
		t.Fatalf("UE product not rejected: %v", err)
	}
}

func TestOpFailure(t *testing.T) {
	cause := util.NewKindError(util.ERR_KIND_IO_READ, "Can't open file")
	opErr := util.NewOpError("hash", util.STATUS_READ_IMG, cause)

	err := opFailure(opErr, statusMessages{
		util.STATUS_READ_IMG: "Reading XUV file in.xuv",
	})
	if err.Error() != "Reading XUV file in.xuv: Can't open file" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if !util.IsKind(err, util.ERR_KIND_IO_READ) {
		t.Fatalf("cause kind lost")
	}
}
