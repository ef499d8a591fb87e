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

package manifest

import (
	"io/ioutil"
	"path/filepath"
	"testing"
)

func TestManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.xuv")
	if err := ioutil.WriteFile(out, []byte("abc"), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := CreateManifest(ManifestOpts{
		Command: "hash",
		Endian:  "U16BE",
		Inputs:  map[string]string{"image": "in.xuv", "key": "key.txt"},
		Outputs: map[string]string{"image": out},
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(m.Inputs) != 2 || m.Inputs[0].Role != "image" ||
		m.Inputs[1].Role != "key" {

		t.Fatalf("inputs not sorted by role: %+v", m.Inputs)
	}

	// SHA-256("abc")
	want := "ba7816bf8f01cfea414140de5dae2223" +
		"b00361a396177a9cb410ff61f20015ad"
	if m.Outputs[0].Hash != want {
		t.Fatalf("unexpected output hash %s", m.Outputs[0].Hash)
	}

	path := filepath.Join(dir, "manifest.json")
	if err := m.WriteFile(path); err != nil {
		t.Fatal(err)
	}

	m2, err := ReadManifest(path)
	if err != nil {
		t.Fatal(err)
	}
	if m2.Command != "hash" || m2.Endian != "U16BE" ||
		m2.Outputs[0].Hash != want || m2.Date != m.Date {

		t.Fatalf("manifest mismatch: %+v", m2)
	}
}

func TestManifestMissingOutput(t *testing.T) {
	_, err := CreateManifest(ManifestOpts{
		Command: "hash",
		Outputs: map[string]string{
			"image": filepath.Join(t.TempDir(), "missing"),
		},
	})
	if err == nil {
		t.Fatalf("manifest of missing output succeeded")
	}
}
