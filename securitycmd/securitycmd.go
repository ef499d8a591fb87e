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

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/securitycmd/cli"
)

var securityVersion = "3.3.0"

func securityCmd() *cobra.Command {
	securityHelpText := "securitycmd hashes, signs, encrypts and " +
		"authenticates XUV firmware images, and wraps OEM keys into key " +
		"bundles for device provisioning."
	securityHelpEx := "  securitycmd hash app.xuv app_hash.xuv\n" +
		"  securitycmd wrapkey oem_key.txt bundle.txt qcom_keys.txt"

	securityCmd := &cobra.Command{
		Use:     "securitycmd",
		Short:   "securitycmd is a tool for securing firmware images and keys",
		Long:    securityHelpText,
		Example: securityHelpEx,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := cli.SetupGlobal(); err != nil {
				cli.SecurityUsage(nil, err)
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
	cli.AddGlobalFlags(securityCmd)

	versHelpText := `Display the securitycmd version number`
	versHelpEx := "  securitycmd version"
	versCmd := &cobra.Command{
		Use:     "version",
		Short:   "Display the securitycmd version number",
		Long:    versHelpText,
		Example: versHelpEx,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s\n", securityVersion)
		},
	}
	securityCmd.AddCommand(versCmd)

	cli.AddImageCommands(securityCmd)
	cli.AddKeyCommands(securityCmd)
	cli.AddAspkCommands(securityCmd)

	return securityCmd
}

func main() {
	cmd := securityCmd()

	cmd.Execute()
}
