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
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/endink/go-sharding/core"
	"github.com/pingcap/errors"
)

const AESKeyPropertyName = "aes.key.value"

var _ QueryAssistedEncryptor = &aesEncryptor{}

type aesEncryptor struct {
	block cipher.Block
}

func newAES(props core.Properties) (Encryptor, error) {
	value, ok := props.Get(AESKeyPropertyName)
	if !ok || value == "" {
		return nil, errors.Errorf("property '%s' is required for AES encryptor", AESKeyPropertyName)
	}
	digest := sha1.Sum([]byte(value))
	block, err := aes.NewCipher(digest[:16])
	if err != nil {
		return nil, errors.Trace(err)
	}
	return &aesEncryptor{block: block}, nil
}

func (e *aesEncryptor) GetName() string {
	return AESEncryptor
}

func (e *aesEncryptor) Encrypt(plaintext interface{}) (string, error) {
	if plaintext == nil {
		return "", nil
	}
	data := pkcs5Padding([]byte(fmt.Sprint(plaintext)), e.block.BlockSize())
	out := make([]byte, len(data))
	size := e.block.BlockSize()
	for i := 0; i < len(data); i += size {
		e.block.Encrypt(out[i:i+size], data[i:i+size])
	}
	return base64.StdEncoding.EncodeToString(out), nil
}

func (e *aesEncryptor) Decrypt(ciphertext string) (interface{}, error) {
	if ciphertext == "" {
		return nil, nil
	}
	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, errors.Trace(err)
	}
	size := e.block.BlockSize()
	if len(data)%size != 0 {
		return nil, errors.New("cipher text is not a multiple of the block size")
	}
	out := make([]byte, len(data))
	for i := 0; i < len(data); i += size {
		e.block.Decrypt(out[i:i+size], data[i:i+size])
	}
	plain, err := pkcs5Unpadding(out, size)
	if err != nil {
		return nil, err
	}
	return string(plain), nil
}

func (e *aesEncryptor) QueryAssistedEncrypt(plaintext string) (string, error) {
	return md5Hex(plaintext), nil
}

func pkcs5Padding(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs5Unpadding(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, errors.New("empty cipher block")
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, errors.New("invalid padding")
	}
	return data[:len(data)-n], nil
}

var _ Encryptor = &md5Encryptor{}

// md5Encryptor is one way, Decrypt returns the stored digest.
type md5Encryptor struct {
}

func newMD5(core.Properties) (Encryptor, error) {
	return &md5Encryptor{}, nil
}

func (e *md5Encryptor) GetName() string {
	return MD5Encryptor
}

func (e *md5Encryptor) Encrypt(plaintext interface{}) (string, error) {
	if plaintext == nil {
		return "", nil
	}
	return md5Hex(fmt.Sprint(plaintext)), nil
}

func (e *md5Encryptor) Decrypt(ciphertext string) (interface{}, error) {
	return ciphertext, nil
}

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
