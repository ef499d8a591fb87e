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
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/securitycmd/aspk"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/util"
)

type scrambleArgs struct {
	modulus string
	seed    string
	aspk    string
	outFile string
	format  aspk.ModulusFormat
}

var aspkFlagFormats = map[string]aspk.ModulusFormat{
	"-pem": aspk.MODULUS_FORMAT_PEM,
	"-dfu": aspk.MODULUS_FORMAT_DFU,
}

// Returns the name of a command-line flag token, or "" if the token is
// not a flag.  "--" and a lone "-" are not flags.
func flagName(tok string) string {
	if len(tok) < 2 || tok[0] != '-' || tok == "--" {
		return ""
	}

	name := strings.TrimPrefix(strings.TrimPrefix(tok, "-"), "-")
	if idx := strings.IndexByte(name, '='); idx >= 0 {
		name = name[:idx]
	}
	return name
}

// Removes the -pem / -dfu format flag from args and checks that every
// other flag is one flags knows.
func splitFormatFlag(flags *pflag.FlagSet,
	args []string) ([]string, aspk.ModulusFormat, error) {

	format := aspk.MODULUS_FORMAT_TEXT
	flagSeen := false
	rest := make([]string, 0, len(args))

	for i, arg := range args {
		if arg == "--" {
			rest = append(rest, args[i:]...)
			break
		}

		if f, ok := aspkFlagFormats[strings.ToLower(arg)]; ok {
			if flagSeen {
				return nil, format, util.NewKindError(
					util.ERR_KIND_VALIDATION, "two flags specified.")
			}
			format = f
			flagSeen = true
			continue
		}

		if name := flagName(arg); name != "" {
			var known *pflag.Flag
			if strings.HasPrefix(arg, "--") {
				known = flags.Lookup(name)
			} else if len(name) == 1 {
				known = flags.ShorthandLookup(name)
			}
			if known == nil {
				return nil, format, util.FmtKindError(
					util.ERR_KIND_VALIDATION, "invalid flag \"%s\".", arg)
			}
		}

		rest = append(rest, arg)
	}

	return rest, format, nil
}

// Parses "<modulus> <seed> <aspk> [outfile] [-pem|-dfu]" mixed with any
// of the global flags.  The output file and the format flag may appear in
// either order.
func parseScrambleArgs(flags *pflag.FlagSet,
	args []string) (scrambleArgs, error) {

	sa := scrambleArgs{}

	rest, format, err := splitFormatFlag(flags, args)
	if err != nil {
		return sa, err
	}
	sa.format = format

	if err := flags.Parse(rest); err != nil {
		return sa, util.NewKindError(util.ERR_KIND_VALIDATION, err.Error())
	}

	pos := flags.Args()
	if len(pos) < 3 {
		return sa, util.NewKindError(util.ERR_KIND_VALIDATION,
			"scrambleaspk requires a modulus, a seed and an aspk")
	}
	if len(pos) > 4 {
		return sa, util.FmtKindError(util.ERR_KIND_VALIDATION,
			"unexpected argument \"%s\".", pos[4])
	}

	sa.modulus, sa.seed, sa.aspk = pos[0], pos[1], pos[2]
	if len(pos) == 4 {
		sa.outFile = pos[3]
	}

	return sa, nil
}

// Flags are parsed here rather than by cobra so that the single-dash
// -pem and -dfu flags are not read as shorthand clusters.
func runScrambleAspkCmd(cmd *cobra.Command, args []string) {
	flags := cmd.Flags()
	flags.AddFlagSet(cmd.InheritedFlags())

	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			cmd.Help()
			return
		}
	}

	sa, err := parseScrambleArgs(flags, args)
	if err != nil {
		SecurityUsage(cmd, err)
	}

	if err := SetupGlobal(); err != nil {
		SecurityUsage(nil, err)
	}

	if err := aspk.ScrambleToFile(sa.modulus, sa.seed, sa.aspk, sa.format,
		sa.outFile, os.Stdout); err != nil {

		SecurityUsage(nil, err)
	}

	inputs := map[string]string{}
	if sa.format != aspk.MODULUS_FORMAT_TEXT {
		inputs["modulus"] = sa.modulus
	}
	outputs := map[string]string{}
	if sa.outFile != "" {
		outputs["aspk"] = sa.outFile
	}
	writeManifest(cmd, "", inputs, outputs)

	if sa.outFile != "" {
		reportSuccess(cmd)
	}
}

func AddAspkCommands(cmd *cobra.Command) {
	scrambleHelpText := "Scramble an anti-spoofing private key: the " +
		"result is modulus XOR seed XOR aspk, printed in hex.  The " +
		"modulus is hex text, or with -pem a PEM public key file, or " +
		"with -dfu a DFU public key file; key file moduli are truncated " +
		"to 256 bits.  The seed is hex and the aspk is base64."
	scrambleHelpEx := "  securitycmd scrambleaspk public.pem 1234ABCD " +
		"AAECAw== out.txt -pem"
	scrambleCmd := &cobra.Command{
		Use:                "scrambleaspk <modulus> <seed> <aspk> [outfile] [-pem|-dfu]",
		Short:              "Scramble an ASPK",
		Long:               scrambleHelpText,
		Example:            scrambleHelpEx,
		DisableFlagParsing: true,
		Run:                runScrambleAspkCmd,
	}
	cmd.AddCommand(scrambleCmd)
}
