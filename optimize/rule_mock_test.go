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

package optimize

import (
	"github.com/endink/go-sharding/core"
	"github.com/endink/go-sharding/keygen"
)

type mockedRule struct {
	keyColumns      map[string]string
	shardingColumns map[string][]string
	assisted        map[string]map[string]string
}

func newMockedRule() *mockedRule {
	return &mockedRule{
		keyColumns:      make(map[string]string),
		shardingColumns: make(map[string][]string),
		assisted:        make(map[string]map[string]string),
	}
}

func (r *mockedRule) withKey(table string, column string) *mockedRule {
	r.keyColumns[table] = column
	return r
}

func (r *mockedRule) withShardingColumns(table string, columns ...string) *mockedRule {
	r.shardingColumns[table] = columns
	return r
}

func (r *mockedRule) withAssisted(table string, column string, assistedColumn string) *mockedRule {
	m, ok := r.assisted[table]
	if !ok {
		m = make(map[string]string)
		r.assisted[table] = m
	}
	m[column] = assistedColumn
	return r
}

func (r *mockedRule) FindGenerateKeyColumnName(table string) (string, bool) {
	c, ok := r.keyColumns[table]
	return c, ok
}

func (r *mockedRule) IsShardingColumn(column string, table string) bool {
	return core.ContainsIgnoreCase(r.shardingColumns[table], column)
}

func (r *mockedRule) GetAssistedQueryColumnCount(table string) (int, bool) {
	n := len(r.assisted[table])
	return n, n > 0
}

func (r *mockedRule) HasQueryAssistedEncryptor(table string) bool {
	return len(r.assisted[table]) > 0
}

func (r *mockedRule) GetAssistedQueryColumn(table string, column string) (string, bool) {
	c, ok := r.assisted[table][column]
	return c, ok
}

type mockedKeySource struct {
	keys []interface{}
}

func mockKeys(keys ...interface{}) *mockedKeySource {
	return &mockedKeySource{keys: keys}
}

func (s *mockedKeySource) Iterator() keygen.Iterator {
	return keygen.NewSliceIterator(s.keys...)
}
