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

package emit

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileCreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.txt")

	if err := WriteFile(path, []byte("data")); err != nil {
		t.Fatal(err)
	}

	got, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "data" {
		t.Fatalf("unexpected contents %q", got)
	}
}

func TestWriteSecretFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.txt")

	if err := WriteSecretFile(path, []byte("secret")); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != SECRET_FILE_MODE {
		t.Fatalf("unexpected mode %v", info.Mode().Perm())
	}
}

func TestWriteSecretFileUnchangedMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.txt")

	if err := ioutil.WriteFile(path, []byte("secret"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(path, 0644); err != nil {
		t.Fatal(err)
	}

	if err := WriteSecretFile(path, []byte("secret")); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != SECRET_FILE_MODE {
		t.Fatalf("existing file left with mode %v", info.Mode().Perm())
	}
}

func TestWriteFileOrStream(t *testing.T) {
	buf := bytes.Buffer{}
	if err := WriteFileOrStream("", &buf, []byte("abc")); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "abc" {
		t.Fatalf("unexpected stream contents %q", buf.String())
	}
}
