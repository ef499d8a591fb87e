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
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/artifact/xuv"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/securitycmd/image"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/util"
)

func imageMessages(inFile string, outFile string) statusMessages {
	return statusMessages{
		util.STATUS_READ_IMG:  "Reading XUV file " + inFile,
		util.STATUS_IMG_EMPTY: "No data in XUV file " + inFile,
		util.STATUS_WRITE_IMG: "Writing XUV file " + outFile,
	}
}

func runHashCmd(cmd *cobra.Command, args []string) {
	if len(args) < 2 {
		SecurityUsage(cmd, nil)
	}

	inFile, outFile := args[0], args[1]
	e := ResolveEndian()
	announceEndian(e)

	if err := image.HashFile(inFile, outFile, e); err != nil {
		SecurityUsage(nil, opFailure(err, imageMessages(inFile, outFile)))
	}

	log.Debugf("Hashed %s into %s", inFile, outFile)
	writeManifest(cmd, e.String(),
		map[string]string{"image": inFile},
		map[string]string{"hash": outFile})
	reportSuccess(cmd)
}

func runSignCmd(cmd *cobra.Command, args []string) {
	if len(args) < 3 {
		SecurityUsage(cmd, nil)
	}

	inFile, outFile, keyFile := args[0], args[1], args[2]
	e := ResolveEndian()
	announceEndian(e)

	msgs := imageMessages(inFile, outFile)
	msgs[util.STATUS_READ_KEY] = "Reading key file " + keyFile
	msgs[util.STATUS_SIGN_IMG] = "Signing failed"

	if err := image.SignFile(inFile, outFile, keyFile, e); err != nil {
		SecurityUsage(nil, opFailure(err, msgs))
	}

	writeManifest(cmd, e.String(),
		map[string]string{"image": inFile, "key": keyFile},
		map[string]string{"signature": outFile})
	reportSuccess(cmd)
}

func runCbcMacCmd(cmd *cobra.Command, args []string) {
	if len(args) < 3 {
		SecurityUsage(cmd, nil)
	}

	inFile, outFile, keyFile := args[0], args[1], args[2]
	e := ResolveEndian()
	announceEndian(e)

	msgs := imageMessages(inFile, outFile)
	msgs[util.STATUS_READ_KEY] = "Reading key file " + keyFile
	msgs[util.STATUS_IMG_NOT_MULTIPLE] =
		"Image is not a multiple of 8 words in XUV file " + inFile
	msgs[util.STATUS_CBCMAC_IMG] = "CBC-MAC creation failed"

	if err := image.CbcMacFile(inFile, outFile, keyFile, e); err != nil {
		SecurityUsage(nil, opFailure(err, msgs))
	}

	writeManifest(cmd, e.String(),
		map[string]string{"image": inFile, "key": keyFile},
		map[string]string{"mac": outFile})
	reportSuccess(cmd)
}

func runEncryptCmd(cmd *cobra.Command, args []string) {
	if len(args) < 5 {
		SecurityUsage(cmd, nil)
	}

	inFile, outFile, keyFile, ivFile := args[0], args[1], args[2], args[3]
	addr, err := xuv.ParseAddr(args[4])
	if err != nil {
		SecurityUsage(cmd, err)
	}

	e := ResolveEndian()
	announceEndian(e)

	msgs := imageMessages(inFile, outFile)
	msgs[util.STATUS_READ_KEY] = "Reading key file " + keyFile
	msgs[util.STATUS_READ_IV] = "Reading IV file " + ivFile
	msgs[util.STATUS_ENCRYPT_IMG] = "Encryption failed"

	if err := image.EncryptFile(inFile, outFile, keyFile, ivFile, addr,
		e); err != nil {

		SecurityUsage(nil, opFailure(err, msgs))
	}

	writeManifest(cmd, e.String(),
		map[string]string{"image": inFile, "key": keyFile, "iv": ivFile},
		map[string]string{"image": outFile})
	reportSuccess(cmd)
}

func AddImageCommands(cmd *cobra.Command) {
	hashHelpText := "Compute the SHA-256 digest of an XUV image.  The " +
		"digest is written as a 16-word XUV image at address 0."
	hashHelpEx := "  securitycmd hash app.xuv app_hash.xuv"
	hashCmd := &cobra.Command{
		Use:     "hash <in xuv> <out xuv>",
		Short:   "Hash an XUV image",
		Long:    hashHelpText,
		Example: hashHelpEx,
		Run:     runHashCmd,
	}
	cmd.AddCommand(hashCmd)

	signHelpText := "Sign an XUV image with RSA-PSS (SHA-256).  The " +
		"signature is written as an XUV image at address 0."
	signHelpEx := "  securitycmd sign app.xuv app_sig.xuv private.pem"
	signCmd := &cobra.Command{
		Use:     "sign <in xuv> <out xuv> <private key pem>",
		Short:   "Sign an XUV image",
		Long:    signHelpText,
		Example: signHelpEx,
		Run:     runSignCmd,
	}
	cmd.AddCommand(signCmd)

	cbcmacHelpText := "Compute the AES-128 CBC-MAC of an XUV image.  The " +
		"image must be a whole number of 8-word blocks."
	cbcmacHelpEx := "  securitycmd createcbcmac app.xuv app_mac.xuv key.txt"
	cbcmacCmd := &cobra.Command{
		Use:     "createcbcmac <in xuv> <out xuv> <key file>",
		Short:   "Create the CBC-MAC of an XUV image",
		Long:    cbcmacHelpText,
		Example: cbcmacHelpEx,
		Run:     runCbcMacCmd,
	}
	cmd.AddCommand(cbcmacCmd)

	encryptHelpText := "Encrypt an XUV image with AES-128 in the device " +
		"counter mode.  The counter is seeded from the image's flash " +
		"address, given in hex."
	encryptHelpEx := "  securitycmd encrypt app.xuv app_enc.xuv key.txt " +
		"iv.txt 8000"
	encryptCmd := &cobra.Command{
		Use:     "encrypt <in xuv> <out xuv> <key file> <iv file> <hex addr>",
		Short:   "Encrypt an XUV image",
		Long:    encryptHelpText,
		Example: encryptHelpEx,
		Run:     runEncryptCmd,
	}
	cmd.AddCommand(encryptCmd)
}
