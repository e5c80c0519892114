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
	"testing"

	"github.com/endink/go-sharding/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAESForTest(t *testing.T) Encryptor {
	e, err := Create("aes", core.NewProperties(map[string]string{AESKeyPropertyName: "123456"}))
	require.Nil(t, err)
	return e
}

func TestAESRoundTrip(t *testing.T) {
	e := newAESForTest(t)
	assert.Equal(t, AESEncryptor, e.GetName())

	cipherText, err := e.Encrypt("test")
	assert.Nil(t, err)
	assert.NotEqual(t, "test", cipherText)

	plain, err := e.Decrypt(cipherText)
	assert.Nil(t, err)
	assert.Equal(t, "test", plain)

	other, err := e.Encrypt("test")
	assert.Nil(t, err)
	assert.Equal(t, cipherText, other)
}

func TestAESRequiresKey(t *testing.T) {
	_, err := Create(AESEncryptor, nil)
	assert.NotNil(t, err)
}

func TestAESQueryAssisted(t *testing.T) {
	e := newAESForTest(t)
	qa, ok := e.(QueryAssistedEncryptor)
	require.True(t, ok)

	v, err := qa.QueryAssistedEncrypt("test")
	assert.Nil(t, err)
	assert.Equal(t, "098f6bcd4621d373cade4e832627b4f6", v)
}

func TestMD5(t *testing.T) {
	e, err := Create("md5", nil)
	require.Nil(t, err)
	_, ok := e.(QueryAssistedEncryptor)
	assert.False(t, ok)

	v, err := e.Encrypt("test")
	assert.Nil(t, err)
	assert.Equal(t, "098f6bcd4621d373cade4e832627b4f6", v)

	d, err := e.Decrypt(v)
	assert.Nil(t, err)
	assert.Equal(t, v, d)
}

func TestEngineLookups(t *testing.T) {
	aes := newAESForTest(t)
	md5, err := Create(MD5Encryptor, nil)
	require.Nil(t, err)

	engine := NewEngine()
	assert.Nil(t, engine.AddColumn("T_User", &ColumnRule{Column: "PWD", CipherColumn: "pwd_cipher", AssistedQueryColumn: "pwd_assisted", Encryptor: aes}))
	assert.Nil(t, engine.AddColumn("t_user", &ColumnRule{Column: "name", CipherColumn: "name_cipher", Encryptor: md5}))

	assert.Equal(t, []string{"t_user"}, engine.Tables())
	columns := engine.Columns("t_user")
	require.Len(t, columns, 2)
	assert.Equal(t, "pwd", columns[0].Column)
	assert.Equal(t, "name", columns[1].Column)

	count, ok := engine.GetAssistedQueryColumnCount("t_user")
	assert.True(t, ok)
	assert.Equal(t, 1, count)
	assert.True(t, engine.HasQueryAssistedEncryptor("t_user"))

	name, ok := engine.GetAssistedQueryColumn("t_user", "pwd")
	assert.True(t, ok)
	assert.Equal(t, "pwd_assisted", name)

	_, ok = engine.GetAssistedQueryColumn("t_user", "name")
	assert.False(t, ok)

	cipherColumn, ok := engine.GetCipherColumn("t_user", "name")
	assert.True(t, ok)
	assert.Equal(t, "name_cipher", cipherColumn)

	_, ok = engine.GetAssistedQueryColumnCount("t_order")
	assert.False(t, ok)
	assert.False(t, engine.HasQueryAssistedEncryptor("t_order"))
}

func TestEngineRejectsInvalidColumns(t *testing.T) {
	md5, err := Create(MD5Encryptor, nil)
	require.Nil(t, err)

	engine := NewEngine()
	assert.NotNil(t, engine.AddColumn("t_user", &ColumnRule{Column: "pwd", CipherColumn: "pwd_cipher", AssistedQueryColumn: "pwd_assisted", Encryptor: md5}))
	assert.NotNil(t, engine.AddColumn("t_user", &ColumnRule{Column: "pwd", Encryptor: md5}))
	assert.NotNil(t, engine.AddColumn("t_user", &ColumnRule{Column: "pwd", CipherColumn: "pwd_cipher"}))

	assert.Nil(t, engine.AddColumn("t_user", &ColumnRule{Column: "pwd", CipherColumn: "pwd_cipher", Encryptor: md5}))
	assert.NotNil(t, engine.AddColumn("t_user", &ColumnRule{Column: "PWD", CipherColumn: "pwd_cipher", Encryptor: md5}))
}
