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
	"os"
	"strings"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/artifact/xuv"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/securitycmd/manifest"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/util"
)

const (
	PRODUCT_CDA = "CDA"
	PRODUCT_UE  = "UE"
)

var OptLogLevel string
var OptVerbose bool
var OptQuiet bool
var OptManifest string
var OptEndian endianValue
var OptProduct = productValue(PRODUCT_CDA)

// Endianness selected with --endian.  Unset means the environment
// decides.
type endianValue struct {
	set bool
	e   xuv.Endian
}

func (v *endianValue) String() string {
	if !v.set {
		return ""
	}
	return v.e.String()
}

func (v *endianValue) Set(s string) error {
	e, err := xuv.ParseEndian(s)
	if err != nil {
		return err
	}

	v.e = e
	v.set = true
	return nil
}

func (v *endianValue) Type() string {
	return "endian"
}

type productValue string

func (p *productValue) String() string {
	return string(*p)
}

func (p *productValue) Set(s string) error {
	switch strings.ToUpper(s) {
	case PRODUCT_CDA:
		*p = PRODUCT_CDA
	case PRODUCT_UE:
		*p = PRODUCT_UE
	default:
		return util.FmtKindError(util.ERR_KIND_VALIDATION,
			"Invalid product \"%s\"; must be CDA or UE", s)
	}
	return nil
}

func (p *productValue) Type() string {
	return "product"
}

var errorPrefix = color.New(color.Bold, color.FgRed).Sprint("Error:")

var _ pflag.Value = &endianValue{}
var _ pflag.Value = new(productValue)

func SecurityUsage(cmd *cobra.Command, err error) {
	if err != nil {
		sErr := util.AsNewtError(err)
		log.Debugf("%s", sErr.StackTrace)
		fmt.Fprintf(os.Stderr, "%s %s\n", errorPrefix, sErr.Text)
	}

	if cmd != nil {
		fmt.Printf("\n")
		fmt.Printf("%s - ", cmd.Name())
		cmd.Help()
	}
	os.Exit(1)
}

func AddGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringVarP(&OptLogLevel, "loglevel", "l", "WARN",
		"Log level (DEBUG, INFO, WARN, ERROR)")
	flags.BoolVarP(&OptVerbose, "verbose", "v", false,
		"Enable verbose output; same as --loglevel=INFO")
	flags.BoolVarP(&OptQuiet, "quiet", "q", false,
		"Suppress the status line printed on success")
	flags.StringVar(&OptManifest, "manifest", "",
		"Write a JSON record of the operation to this file")
	flags.VarP(&OptEndian, "endian", "e",
		"XUV word byte order: B[IG] or L[ITTLE] (default from "+
			xuv.ENV_XUV_ENDIAN+", else big)")
	flags.Var(&OptProduct, "product", "Target product: CDA or UE")
}

// Applies the global flags.  Called before any command runs.
func SetupGlobal() error {
	level, err := log.ParseLevel(OptLogLevel)
	if err != nil {
		return util.FmtKindError(util.ERR_KIND_VALIDATION,
			"Invalid log level \"%s\"", OptLogLevel)
	}
	if OptVerbose && level < log.InfoLevel {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})

	if OptProduct == PRODUCT_UE {
		return util.NewKindError(util.ERR_KIND_VALIDATION,
			"Product UE secure app store operations are not supported")
	}

	return nil
}

// Returns the XUV byte order: the --endian flag, then the environment.
func ResolveEndian() xuv.Endian {
	if OptEndian.set {
		return OptEndian.e
	}
	return xuv.EnvEndian()
}

func announceEndian(e xuv.Endian) {
	if !OptQuiet {
		fmt.Printf("%s endian mode (for XUV files)\n", e)
	}
}

func reportSuccess(cmd *cobra.Command) {
	if !OptQuiet {
		fmt.Printf("%s: %s\n", cmd.Root().Name(), color.GreenString("success"))
	}
}

// Failure message per operation status.
type statusMessages map[util.Status]string

// Converts an operation error into the message for its status, keeping
// the underlying error as detail.
func opFailure(err error, msgs statusMessages) error {
	msg, ok := msgs[util.OpStatus(err)]
	if !ok {
		return util.AsNewtError(err)
	}

	newtErr := util.FmtKindError(util.ErrorKind(err), "%s: %s", msg,
		err.Error())
	newtErr.Parent = err
	return newtErr
}

// Records the operation if --manifest was given.
func writeManifest(cmd *cobra.Command, endian string,
	inputs map[string]string, outputs map[string]string) {

	if OptManifest == "" {
		return
	}

	m, err := manifest.CreateManifest(manifest.ManifestOpts{
		Command: cmd.Name(),
		Endian:  endian,
		Inputs:  inputs,
		Outputs: outputs,
	})
	if err != nil {
		SecurityUsage(nil, err)
	}

	if err := m.WriteFile(OptManifest); err != nil {
		SecurityUsage(nil, err)
	}
	log.Debugf("Wrote manifest %s", OptManifest)
}
