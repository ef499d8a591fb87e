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
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/artifact/sec"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/artifact/xuv"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/securitycmd/emit"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/util"
)

var OptEndian string

type imageSummary struct {
	First    string `json:"first"`
	Last     string `json:"last"`
	Words    int    `json:"words"`
	Comments int    `json:"comments"`
	Hash     string `json:"sha256"`
}

func XuvimgUsage(cmd *cobra.Command, err error) {
	if err != nil {
		sErr := util.AsNewtError(err)
		log.Debugf("%s", sErr.StackTrace)
		fmt.Fprintf(os.Stderr, "Error: %s\n", sErr.Text)
	}

	if cmd != nil {
		fmt.Printf("\n")
		fmt.Printf("%s - ", cmd.Name())
		cmd.Help()
	}
	os.Exit(1)
}

func readImage(filename string) (*xuv.Image, error) {
	img, err := xuv.Read(filename)
	if err != nil {
		return nil, err
	}
	if img.Empty() {
		return nil, util.FmtIoError(util.ERR_KIND_LENGTH, filename,
			"No data in XUV file '%s'", filename)
	}
	if _, _, err := img.Span(); err != nil {
		return nil, util.FmtIoError(util.ERR_KIND_LENGTH, filename,
			"%s: %s", filename, err.Error())
	}

	log.Debugf("Successfully read image %s", filename)
	return img, nil
}

// Returns the --endian setting, or the environment default.
func optEndian() (xuv.Endian, error) {
	if OptEndian == "" {
		return xuv.EnvEndian(), nil
	}
	return xuv.ParseEndian(OptEndian)
}

func summarize(img *xuv.Image) imageSummary {
	first, last, _ := img.Span()
	flat := img.Flatten(first, last, xuv.XUV_DEFAULT_FILL, xuv.ENDIAN_BIG)

	return imageSummary{
		First:    fmt.Sprintf("0x%06X", first),
		Last:     fmt.Sprintf("0x%06X", last),
		Words:    len(img.Data),
		Comments: len(img.Comments),
		Hash:     fmt.Sprintf("%x", sec.Sha256(flat)),
	}
}

func runShowCmd(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		XuvimgUsage(cmd, nil)
	}

	img, err := readImage(args[0])
	if err != nil {
		XuvimgUsage(cmd, err)
	}

	s, err := json.MarshalIndent(summarize(img), "", "    ")
	if err != nil {
		XuvimgUsage(nil, util.ChildNewtError(err))
	}
	fmt.Printf("%s\n", s)
}

func runFlattenCmd(cmd *cobra.Command, args []string) {
	if len(args) < 2 {
		XuvimgUsage(cmd, nil)
	}

	e, err := optEndian()
	if err != nil {
		XuvimgUsage(cmd, err)
	}

	img, err := readImage(args[0])
	if err != nil {
		XuvimgUsage(cmd, err)
	}

	first, last, _ := img.Span()
	bin := img.Flatten(first, last, xuv.XUV_DEFAULT_FILL, e)
	if err := emit.WriteFile(args[1], bin); err != nil {
		XuvimgUsage(nil, err)
	}

	log.Debugf("Wrote %d bytes (%s) to %s", len(bin), e, args[1])
}

func runExtractCmd(cmd *cobra.Command, args []string) {
	if len(args) < 4 {
		XuvimgUsage(cmd, nil)
	}

	first, err := xuv.ParseAddr(args[1])
	if err != nil {
		XuvimgUsage(cmd, err)
	}
	last, err := xuv.ParseAddr(args[2])
	if err != nil {
		XuvimgUsage(cmd, err)
	}
	if last < first {
		XuvimgUsage(cmd, util.FmtKindError(util.ERR_KIND_VALIDATION,
			"Last address 0x%X precedes first address 0x%X", last, first))
	}

	img, err := readImage(args[0])
	if err != nil {
		XuvimgUsage(cmd, err)
	}

	sub := img.Extract(first, last)
	if err := emit.WriteFile(args[3], sub.Bytes()); err != nil {
		XuvimgUsage(nil, err)
	}

	log.Debugf("Extracted %d words to %s", len(sub.Data), args[3])
}

func AddXuvCommands(cmd *cobra.Command) {
	showHelpText := "Print a JSON summary of an XUV image: address range, " +
		"word and comment counts, and the SHA-256 of its big-endian " +
		"flattening."
	showHelpEx := "  xuvimg show app.xuv"
	showCmd := &cobra.Command{
		Use:     "show <xuv>",
		Long:    showHelpText,
		Example: showHelpEx,
		Run:     runShowCmd,
	}
	cmd.AddCommand(showCmd)

	flattenHelpText := "Write the image's address range as raw bytes.  " +
		"Missing words are filled with 0xFFFF."
	flattenHelpEx := "  xuvimg flatten app.xuv app.bin -e L"
	flattenCmd := &cobra.Command{
		Use:     "flatten <xuv> <bin>",
		Long:    flattenHelpText,
		Example: flattenHelpEx,
		Run:     runFlattenCmd,
	}
	flattenCmd.PersistentFlags().StringVarP(&OptEndian, "endian", "e", "",
		"Word byte order: B[IG] or L[ITTLE]")
	cmd.AddCommand(flattenCmd)

	extractHelpText := "Copy the words in an inclusive hex address range " +
		"to a new XUV file."
	extractHelpEx := "  xuvimg extract app.xuv 0 3FF header.xuv"
	extractCmd := &cobra.Command{
		Use:     "extract <xuv> <first> <last> <out xuv>",
		Long:    extractHelpText,
		Example: extractHelpEx,
		Run:     runExtractCmd,
	}
	cmd.AddCommand(extractCmd)
}
