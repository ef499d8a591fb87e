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

// Package emit writes command results.  Every result is assembled in
// memory first and handed over here in one piece, so a failed operation
// never creates or truncates its output file.
package emit

import (
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/util"
)

const OUTPUT_FILE_MODE = 0644
const SECRET_FILE_MODE = 0600

func ensureWritten(path string, contents []byte, mode os.FileMode) error {
	writeReqd, err := util.FileContentsChanged(path, contents)
	if err != nil {
		return err
	}
	if !writeReqd {
		log.Debugf("%s unchanged; not writing file.", path)
		if err := os.Chmod(path, mode); err != nil {
			return util.FmtIoError(util.ERR_KIND_IO_WRITE, path,
				"Can't set mode of '%s': %s", path, err.Error())
		}
		return nil
	}

	log.Debugf("Writing file %s (%d bytes).", path, len(contents))

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return util.FmtIoError(util.ERR_KIND_IO_WRITE, path,
				"Can't create directory for '%s': %s", path, err.Error())
		}
	}

	return util.WriteFileAtomic(path, contents, mode)
}

// Replaces the file at path with contents.
func WriteFile(path string, contents []byte) error {
	return ensureWritten(path, contents, OUTPUT_FILE_MODE)
}

// As WriteFile, for key material.
func WriteSecretFile(path string, contents []byte) error {
	return ensureWritten(path, contents, SECRET_FILE_MODE)
}

// Writes contents to path, or to w when path is empty.
func WriteFileOrStream(path string, w io.Writer, contents []byte) error {
	if path != "" {
		return WriteFile(path, contents)
	}

	if _, err := w.Write(contents); err != nil {
		return util.FmtKindError(util.ERR_KIND_IO_WRITE,
			"Error writing output: %s", err.Error())
	}
	return nil
}
