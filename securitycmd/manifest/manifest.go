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

// Package manifest records the inputs and outputs of a securitycmd
// operation as JSON.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"sort"
	"time"

	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/artifact/sec"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/securitycmd/emit"
	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/util"
)

type ManifestFile struct {
	Role string `json:"role"`
	Path string `json:"path"`
	Hash string `json:"sha256,omitempty"`
}

type Manifest struct {
	Command string          `json:"command"`
	Date    string          `json:"build_time"`
	Endian  string          `json:"endian,omitempty"`
	Inputs  []*ManifestFile `json:"inputs"`
	Outputs []*ManifestFile `json:"outputs"`
}

type ManifestOpts struct {
	Command string
	Endian  string

	// Role name to path.  Key files are listed as inputs by role, never by
	// content.
	Inputs  map[string]string
	Outputs map[string]string
}

func sortedFiles(files map[string]string) []*ManifestFile {
	roles := make([]string, 0, len(files))
	for role := range files {
		roles = append(roles, role)
	}
	sort.Strings(roles)

	mfs := make([]*ManifestFile, 0, len(roles))
	for _, role := range roles {
		mfs = append(mfs, &ManifestFile{
			Role: role,
			Path: files[role],
		})
	}

	return mfs
}

// CreateManifest describes a completed operation.  Each output file is
// read back and hashed.
func CreateManifest(opts ManifestOpts) (Manifest, error) {
	m := Manifest{
		Command: opts.Command,
		Date:    time.Now().UTC().Format(time.RFC3339),
		Endian:  opts.Endian,
		Inputs:  sortedFiles(opts.Inputs),
		Outputs: sortedFiles(opts.Outputs),
	}

	for _, mf := range m.Outputs {
		content, err := ioutil.ReadFile(mf.Path)
		if err != nil {
			return m, util.FmtIoError(util.ERR_KIND_IO_READ, mf.Path,
				"Can't hash output file '%s': %s", mf.Path, err.Error())
		}
		mf.Hash = fmt.Sprintf("%x", sec.Sha256(content))
	}

	return m, nil
}

func ReadManifest(path string) (Manifest, error) {
	m := Manifest{}

	content, err := ioutil.ReadFile(path)
	if err != nil {
		return m, util.ChildNewtError(err)
	}

	if err := json.Unmarshal(content, &m); err != nil {
		return m, util.FmtNewtError(
			"Failure decoding manifest with path \"%s\": %s",
			path, err.Error())
	}

	return m, nil
}

func (m *Manifest) Write(w io.Writer) (int, error) {
	buffer, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return 0, util.FmtNewtError("Cannot encode manifest: %s", err.Error())
	}

	cnt, err := w.Write(buffer)
	if err != nil {
		return 0, util.FmtNewtError("Cannot write manifest: %s", err.Error())
	}

	return cnt, nil
}

func (m *Manifest) WriteFile(path string) error {
	buf := bytes.Buffer{}
	if _, err := m.Write(&buf); err != nil {
		return err
	}

	return emit.WriteFile(path, buf.Bytes())
}
