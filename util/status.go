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
)

// Status identifies the failure point of a user-facing operation.  Each
// operation reports exactly one status per failure so that callers can
// select a stable message.
type Status int

const (
	STATUS_SUCCESS Status = iota
	STATUS_READ_IMG
	STATUS_IMG_EMPTY
	STATUS_WRITE_IMG
	STATUS_READ_KEY
	STATUS_READ_IV
	STATUS_SIGN_IMG
	STATUS_IMG_NOT_MULTIPLE
	STATUS_CBCMAC_IMG
	STATUS_ENCRYPT_IMG
	STATUS_READ_QCOM
	STATUS_WRITE_BUNDLE
	STATUS_PRIMITIVE_FAIL
	STATUS_READ_FAIL
	STATUS_WRITE_FAIL
	STATUS_ENCRYPT_FAIL
	STATUS_ERR_KEYTYPE
	STATUS_ERR_PRVKEY
	STATUS_ERR_PUBKEY
	STATUS_INVALID_ARG
)

var statusNameMap = map[Status]string{
	STATUS_SUCCESS:          "success",
	STATUS_READ_IMG:         "read-img",
	STATUS_IMG_EMPTY:        "img-empty",
	STATUS_WRITE_IMG:        "write-img",
	STATUS_READ_KEY:         "read-key",
	STATUS_READ_IV:          "read-iv",
	STATUS_SIGN_IMG:         "sign-img",
	STATUS_IMG_NOT_MULTIPLE: "img-not-multiple",
	STATUS_CBCMAC_IMG:       "cbcmac-img",
	STATUS_ENCRYPT_IMG:      "encrypt-img",
	STATUS_READ_QCOM:        "read-qcom",
	STATUS_WRITE_BUNDLE:     "write-bundle",
	STATUS_PRIMITIVE_FAIL:   "primitive-fail",
	STATUS_READ_FAIL:        "read-fail",
	STATUS_WRITE_FAIL:       "write-fail",
	STATUS_ENCRYPT_FAIL:     "encrypt-fail",
	STATUS_ERR_KEYTYPE:      "err-keytype",
	STATUS_ERR_PRVKEY:       "err-prvkey",
	STATUS_ERR_PUBKEY:       "err-pubkey",
	STATUS_INVALID_ARG:      "invalid-arg",
}

func (s Status) String() string {
	name := statusNameMap[s]
	if name == "" {
		return fmt.Sprintf("status(%d)", int(s))
	}
	return name
}

type OpError struct {
	Op     string
	Status Status
	Err    error
}

func (e *OpError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Status)
	}
	return e.Err.Error()
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func NewOpError(op string, status Status, err error) *OpError {
	return &OpError{
		Op:     op,
		Status: status,
		Err:    err,
	}
}

// Returns the status carried by err, or STATUS_SUCCESS if err is nil.
// Errors without an OpError in their chain map to STATUS_INVALID_ARG.
func OpStatus(err error) Status {
	if err == nil {
		return STATUS_SUCCESS
	}

	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Status
	}
	return STATUS_INVALID_ARG
}

// Returns the NewtError at the root of err's chain, creating one if err
// is some other error type.
func AsNewtError(err error) *NewtError {
	var newtErr *NewtError
	if errors.As(err, &newtErr) {
		return newtErr
	}
	return ChildNewtError(err)
}
