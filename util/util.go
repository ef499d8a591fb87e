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
	"errors"
	"fmt"
	"runtime"
)

type ErrKind int

const (
	ERR_KIND_NONE ErrKind = iota
	ERR_KIND_IO_READ
	ERR_KIND_IO_WRITE
	ERR_KIND_SYNTAX
	ERR_KIND_LENGTH
	ERR_KIND_COUNT
	ERR_KIND_KEY_SIZE
	ERR_KIND_PRIMITIVE
	ERR_KIND_VALIDATION
	ERR_KIND_NOT_FOUND
)

var errKindNameMap = map[ErrKind]string{
	ERR_KIND_NONE:       "none",
	ERR_KIND_IO_READ:    "io-read",
	ERR_KIND_IO_WRITE:   "io-write",
	ERR_KIND_SYNTAX:     "format-syntax",
	ERR_KIND_LENGTH:     "format-length",
	ERR_KIND_COUNT:      "format-count",
	ERR_KIND_KEY_SIZE:   "key-size",
	ERR_KIND_PRIMITIVE:  "primitive",
	ERR_KIND_VALIDATION: "validation",
	ERR_KIND_NOT_FOUND:  "not-found",
}

func (k ErrKind) String() string {
	name := errKindNameMap[k]
	if name == "" {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return name
}

type NewtError struct {
	Parent     error
	Text       string
	Kind       ErrKind
	Path       string
	StackTrace []byte
}

func (se *NewtError) Error() string {
	return se.Text
}

func (se *NewtError) Unwrap() error {
	return se.Parent
}

func newNewtError(kind ErrKind, msg string) *NewtError {
	err := &NewtError{
		Text:       msg,
		Kind:       kind,
		StackTrace: make([]byte, 65536),
	}

	stackLen := runtime.Stack(err.StackTrace, true)
	err.StackTrace = err.StackTrace[:stackLen]

	return err
}

func NewNewtError(msg string) *NewtError {
	return newNewtError(ERR_KIND_NONE, msg)
}

func FmtNewtError(format string, args ...interface{}) *NewtError {
	return NewNewtError(fmt.Sprintf(format, args...))
}

func NewKindError(kind ErrKind, msg string) *NewtError {
	return newNewtError(kind, msg)
}

func FmtKindError(kind ErrKind, format string, args ...interface{}) *NewtError {
	return newNewtError(kind, fmt.Sprintf(format, args...))
}

// Creates an I/O error that records the offending path.
func FmtIoError(kind ErrKind, path string, format string,
	args ...interface{}) *NewtError {

	err := FmtKindError(kind, format, args...)
	err.Path = path
	return err
}

func ChildNewtError(parent error) *NewtError {
	for {
		newtErr, ok := parent.(*NewtError)
		if !ok || newtErr == nil || newtErr.Parent == nil {
			break
		}
		parent = newtErr.Parent
	}

	newtErr := NewNewtError(parent.Error())
	newtErr.Parent = parent
	return newtErr
}

// Returns the kind of the first NewtError in err's chain.
func ErrorKind(err error) ErrKind {
	var newtErr *NewtError
	if errors.As(err, &newtErr) {
		return newtErr.Kind
	}
	return ERR_KIND_NONE
}

func IsKind(err error, kind ErrKind) bool {
	return err != nil && ErrorKind(err) == kind
}

// Wraps err with a different kind, keeping its text and path.
func ReKind(err error, kind ErrKind) *NewtError {
	newtErr := NewKindError(kind, err.Error())
	newtErr.Parent = err

	var inner *NewtError
	if errors.As(err, &inner) {
		newtErr.Path = inner.Path
	}
	return newtErr
}
