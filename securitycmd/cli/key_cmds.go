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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/securitycmd/keybundle"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/securitycmd/keygen"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/util"
)

const primitiveFailMsg = "OSSLIB cannot calculate/Encrypt using AES128"

func runWrapKey(cmd *cobra.Command, args []string, antiReplay bool) {
	if len(args) < 3 {
		SecurityUsage(cmd, nil)
	}

	oemFile, outFile, vendorFile := args[0], args[1], args[2]

	qcomMsg := "Reading QCOM file " + vendorFile
	if antiReplay {
		qcomMsg = "Reading QCOM PaKeK file " + vendorFile
	}
	msgs := statusMessages{
		util.STATUS_READ_KEY:       "Reading key file " + oemFile,
		util.STATUS_READ_QCOM:      qcomMsg,
		util.STATUS_PRIMITIVE_FAIL: primitiveFailMsg,
		util.STATUS_WRITE_BUNDLE:   "Writing key bundle file " + outFile,
	}

	if err := keybundle.CreateFile(oemFile, vendorFile, outFile, antiReplay,
		nil); err != nil {

		SecurityUsage(nil, opFailure(err, msgs))
	}

	writeManifest(cmd, "",
		map[string]string{"key": oemFile, "vendor": vendorFile},
		map[string]string{"bundle": outFile})
	reportSuccess(cmd)
}

func runWrapKeyCmd(cmd *cobra.Command, args []string) {
	runWrapKey(cmd, args, false)
}

func runWrapKeyArCmd(cmd *cobra.Command, args []string) {
	runWrapKey(cmd, args, true)
}

func keyFileMessages(inFile string, outFile string) statusMessages {
	return statusMessages{
		util.STATUS_READ_FAIL:    "Reading key file " + inFile,
		util.STATUS_ENCRYPT_FAIL: "encrypting key",
		util.STATUS_WRITE_FAIL:   "Writing key file " + outFile,
	}
}

func runUnlockKeyCmd(cmd *cobra.Command, args []string) {
	if len(args) < 2 {
		SecurityUsage(cmd, nil)
	}

	inFile, outFile := args[0], args[1]
	if err := keygen.CreateUnlockKeyFile(inFile, outFile); err != nil {
		SecurityUsage(nil, opFailure(err, keyFileMessages(inFile, outFile)))
	}

	writeManifest(cmd, "",
		map[string]string{"key": inFile},
		map[string]string{"key": outFile})
	reportSuccess(cmd)
}

func runRsaKeyCmd(cmd *cobra.Command, args []string) {
	if len(args) < 3 {
		SecurityUsage(cmd, nil)
	}

	bits, err := keygen.ParseKeySize(args[0])
	if err != nil {
		SecurityUsage(cmd, err)
	}
	exp, err := keygen.ParseExponent(args[1])
	if err != nil {
		SecurityUsage(cmd, err)
	}

	prvFile := args[2]
	pubFile := ""
	outputs := map[string]string{"private": prvFile}
	if len(args) > 3 {
		pubFile = args[3]
		outputs["public"] = pubFile
	}

	if err := keygen.CreateRsaKeyFiles(bits, exp, prvFile, pubFile,
		nil); err != nil {

		newtErr := util.FmtNewtError(
			"Key creation failed or IO error. %s", err.Error())
		newtErr.Parent = err
		SecurityUsage(nil, newtErr)
	}

	writeManifest(cmd, "", nil, outputs)
	reportSuccess(cmd)
}

func runPemToDfuCmd(cmd *cobra.Command, args []string) {
	if len(args) < 3 {
		SecurityUsage(cmd, nil)
	}

	kt, err := keygen.ParseKeyType(args[0])
	if err != nil {
		SecurityUsage(cmd, err)
	}

	pemFile, outFile := args[1], args[2]
	msgs := statusMessages{
		util.STATUS_READ_FAIL: "Reading key file " + pemFile,
		util.STATUS_ERR_PRVKEY: fmt.Sprintf(
			"Wrong key type, expecting RSA private key in \"%s\"", pemFile),
		util.STATUS_ERR_PUBKEY: fmt.Sprintf(
			"Wrong key type, expecting RSA public key in \"%s\"", pemFile),
		util.STATUS_ERR_KEYTYPE: fmt.Sprintf(
			"Wrong key type, expecting RSA %s key in \"%s\"", kt, pemFile),
		util.STATUS_WRITE_FAIL: "Writing key file " + outFile,
	}

	if err := keygen.PemToDfuFile(kt, pemFile, outFile); err != nil {
		SecurityUsage(nil, opFailure(err, msgs))
	}

	writeManifest(cmd, "",
		map[string]string{"key": pemFile},
		map[string]string{"dfukey": outFile})
	reportSuccess(cmd)
}

func runWrapKeyFile(cmd *cobra.Command, args []string, unwrap bool) {
	if len(args) < 3 {
		SecurityUsage(cmd, nil)
	}

	kekFile, inFile, outFile := args[0], args[1], args[2]
	msgs := keyFileMessages(inFile, outFile)
	msgs[util.STATUS_READ_KEY] = "Reading key file " + kekFile

	var err error
	if unwrap {
		err = keygen.UnwrapKeyFile(kekFile, inFile, outFile)
	} else {
		err = keygen.WrapKeyFile(kekFile, inFile, outFile)
	}
	if err != nil {
		SecurityUsage(nil, opFailure(err, msgs))
	}

	writeManifest(cmd, "",
		map[string]string{"kek": kekFile, "key": inFile},
		map[string]string{"key": outFile})
	reportSuccess(cmd)
}

func runWrapKeyFileCmd(cmd *cobra.Command, args []string) {
	runWrapKeyFile(cmd, args, false)
}

func runUnwrapKeyFileCmd(cmd *cobra.Command, args []string) {
	runWrapKeyFile(cmd, args, true)
}

func AddKeyCommands(cmd *cobra.Command) {
	wrapHelpText := "Wrap an OEM key into a key bundle using the three " +
		"vendor keys (KeK, EncKeK, QCOMIV) in the QCOM key file."
	wrapHelpEx := "  securitycmd wrapkey oem_key.txt bundle.txt qcom_keys.txt"
	wrapCmd := &cobra.Command{
		Use:     "wrapkey <in key> <out bundle> <qcom key file>",
		Short:   "Wrap an OEM key into a key bundle",
		Long:    wrapHelpText,
		Example: wrapHelpEx,
		Run:     runWrapKeyCmd,
	}
	cmd.AddCommand(wrapCmd)

	wrapArHelpText := "Wrap an OEM key into an anti-replay key bundle.  " +
		"The QCOM key file holds five keys: KeK, EncKeK, QCOMIV, PaKeK " +
		"and EncPaKeK."
	wrapArHelpEx := "  securitycmd wrapkeyar oem_key.txt bundle.txt " +
		"qcom_pakek.txt"
	wrapArCmd := &cobra.Command{
		Use:     "wrapkeyar <in key> <out bundle> <qcom key file>",
		Short:   "Wrap an OEM key into an anti-replay key bundle",
		Long:    wrapArHelpText,
		Example: wrapArHelpEx,
		Run:     runWrapKeyArCmd,
	}
	cmd.AddCommand(wrapArCmd)

	unlockHelpText := "Create the USB debug unlock key from a 128-bit key."
	unlockHelpEx := "  securitycmd createunlockkey key.txt unlock.txt"
	unlockCmd := &cobra.Command{
		Use:     "createunlockkey <in key> <out key>",
		Short:   "Create a USB debug unlock key",
		Long:    unlockHelpText,
		Example: unlockHelpEx,
		Run:     runUnlockKeyCmd,
	}
	cmd.AddCommand(unlockCmd)

	rsaHelpText := "Generate an RSA key pair.  The size is 1024 or 2048 " +
		"bits and the public exponent is 3 or F4 (65537).  The private " +
		"key is written as PKCS#8 PEM; the public key, if requested, as " +
		"PKIX PEM."
	rsaHelpEx := "  securitycmd creatersakey 2048 F4 private.pem public.pem"
	rsaCmd := &cobra.Command{
		Use:     "creatersakey <size> <exponent> <private pem> [public pem]",
		Short:   "Create an RSA key pair",
		Long:    rsaHelpText,
		Example: rsaHelpEx,
		Run:     runRsaKeyCmd,
	}
	cmd.AddCommand(rsaCmd)

	dfuHelpText := "Convert a PEM RSA key to the DFU key format: " +
		"exponent, modulus and the Montgomery constants M', R2NmodM and " +
		"RNmodM as 16-bit words."
	dfuHelpEx := "  securitycmd pem2dfukey pub public.pem public_dfu.txt"
	dfuCmd := &cobra.Command{
		Use:     "pem2dfukey <prv|pub> <in pem> <out dfu key>",
		Aliases: []string{"pemtodfukey"},
		Short:   "Convert a PEM RSA key to a DFU key",
		Long:    dfuHelpText,
		Example: dfuHelpEx,
		Run:     runPemToDfuCmd,
	}
	cmd.AddCommand(dfuCmd)

	wrapFileHelpText := "Wrap a 128-bit key file under a KEK with RFC 3394 " +
		"AES key wrap.  The output is one line of 48 hex digits."
	wrapFileHelpEx := "  securitycmd wrapkeyfile kek.txt key.txt wrapped.txt"
	wrapFileCmd := &cobra.Command{
		Use:     "wrapkeyfile <kek file> <in key> <out file>",
		Short:   "RFC 3394 wrap a key file",
		Long:    wrapFileHelpText,
		Example: wrapFileHelpEx,
		Run:     runWrapKeyFileCmd,
	}
	cmd.AddCommand(wrapFileCmd)

	unwrapFileHelpText := "Unwrap a key written by wrapkeyfile."
	unwrapFileHelpEx := "  securitycmd unwrapkeyfile kek.txt wrapped.txt " +
		"key.txt"
	unwrapFileCmd := &cobra.Command{
		Use:     "unwrapkeyfile <kek file> <in file> <out key>",
		Short:   "Unwrap an RFC 3394 wrapped key file",
		Long:    unwrapFileHelpText,
		Example: unwrapFileHelpEx,
		Run:     runUnwrapKeyFileCmd,
	}
	cmd.AddCommand(unwrapFileCmd)
}
