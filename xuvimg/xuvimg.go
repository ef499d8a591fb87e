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

	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/xuvimg/cli"
)

var xuvimgVersion = "0.0.1"

func xuvimgCmd() *cobra.Command {
	xuvimgHelpText := "xuvimg inspects and converts XUV firmware images."
	xuvimgHelpEx := "  xuvimg show app.xuv"

	xuvimgCmd := &cobra.Command{
		Use:     "xuvimg",
		Short:   "xuvimg is a tool for inspecting XUV images",
		Long:    xuvimgHelpText,
		Example: xuvimgHelpEx,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	versHelpText := `Display the xuvimg version number`
	versHelpEx := "  xuvimg version"
	versCmd := &cobra.Command{
		Use:     "version",
		Short:   "Display the xuvimg version number",
		Long:    versHelpText,
		Example: versHelpEx,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s\n", xuvimgVersion)
		},
	}
	xuvimgCmd.AddCommand(versCmd)

	cli.AddXuvCommands(xuvimgCmd)

	return xuvimgCmd
}

func main() {
	cmd := xuvimgCmd()

	cmd.Execute()
}
