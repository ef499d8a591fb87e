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

package util

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
)

func ReadFile(path string) ([]byte, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, FmtIoError(ERR_KIND_IO_READ, path,
			"Can't open file '%s': %s", path, err.Error())
	}

	return data, nil
}

// Indicates whether the file at path differs from contents.  A missing
// file counts as changed.
func FileContentsChanged(path string, contents []byte) (bool, error) {
	oldContents, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return true, FmtIoError(ERR_KIND_IO_READ, path,
			"Can't read file '%s': %s", path, err.Error())
	}

	return !bytes.Equal(oldContents, contents), nil
}

// Replaces the file at path with contents.  The data is written to a
// temporary file in the same directory and renamed into place, so a
// failure leaves any existing file untouched.
func WriteFileAtomic(path string, contents []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)

	tmp, err := ioutil.TempFile(dir, "."+filepath.Base(path)+".tmp")
	if err != nil {
		return FmtIoError(ERR_KIND_IO_WRITE, path,
			"Can't create file '%s': %s", path, err.Error())
	}
	tmpName := tmp.Name()

	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return FmtIoError(ERR_KIND_IO_WRITE, path,
			"Can't write file '%s': %s", path, err.Error())
	}

	if _, err := tmp.Write(contents); err != nil {
		return fail(err)
	}
	if err := tmp.Chmod(mode); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return FmtIoError(ERR_KIND_IO_WRITE, path,
			"Can't write file '%s': %s", path, err.Error())
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return FmtIoError(ERR_KIND_IO_WRITE, path,
			"Can't write file '%s': %s", path, err.Error())
	}

	return nil
}
