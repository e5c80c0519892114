/*
 * Copyright 2021. Go-Sharding Author All Rights Reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 *
 *  File author: Anders Xiao
 */

package encrypt

import (
	"github.com/endink/go-sharding/core"
	"github.com/endink/go-sharding/core/provider"
	"github.com/endink/go-sharding/logging"
	"github.com/pingcap/errors"
)

var logger = logging.GetLogger("encrypt")

const (
	AESEncryptor = "AES"
	MD5Encryptor = "MD5"
)

var ErrInvalidEncryptor = errors.New("provider is not an encryptor")

// Encryptor converts plain column values to the text stored in the cipher column.
type Encryptor interface {
	provider.Provider
	Encrypt(plaintext interface{}) (string, error)
	Decrypt(ciphertext string) (interface{}, error)
}

// QueryAssistedEncryptor also produces the deterministic value stored in an assisted query column,
// which allows equality lookups on an encrypted column.
type QueryAssistedEncryptor interface {
	Encryptor
	QueryAssistedEncrypt(plaintext string) (string, error)
}

func init() {
	registerBuiltin(AESEncryptor, newAES)
	registerBuiltin(MD5Encryptor, newMD5)
}

func registerBuiltin(name string, factory func(props core.Properties) (Encryptor, error)) {
	err := provider.DefaultRegistry().Register(provider.Encryptor, name, func(props core.Properties) (provider.Provider, error) {
		return factory(props)
	})
	if err != nil {
		logger.Errorf("register encryptor '%s' fault: %v", name, err)
	}
}

func Create(name string, props core.Properties) (Encryptor, error) {
	p, err := provider.DefaultRegistry().Create(provider.Encryptor, name, props)
	if err != nil {
		return nil, err
	}
	e, ok := p.(Encryptor)
	if !ok {
		return nil, ErrInvalidEncryptor
	}
	return e, nil
}
