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

package sec

import (
	keywrap "github.com/NickBall/go-aes-key-wrap"

	"github.com/Quoc123123/Qualcomm-bluesuite-src-3-3-qtil-standard-oem-sub000/util"
)

// Wraps plain under kek with RFC 3394 AES key wrap.
func WrapKey(kek []byte, plain []byte) ([]byte, error) {
	cipher, err := newAes128(kek)
	if err != nil {
		return nil, err
	}

	wrapped, err := keywrap.Wrap(cipher, plain)
	if err != nil {
		return nil, util.FmtKindError(util.ERR_KIND_PRIMITIVE,
			"Error key-wrapping: %s", err.Error())
	}

	return wrapped, nil
}

func UnwrapKey(kek []byte, wrapped []byte) ([]byte, error) {
	cipher, err := newAes128(kek)
	if err != nil {
		return nil, err
	}

	plain, err := keywrap.Unwrap(cipher, wrapped)
	if err != nil {
		return nil, util.FmtKindError(util.ERR_KIND_PRIMITIVE,
			"Error key-unwrapping: %s", err.Error())
	}

	return plain, nil
}
