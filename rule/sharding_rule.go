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

package rule

import (
	"sort"

	"github.com/endink/go-sharding/core"
	"github.com/endink/go-sharding/encrypt"
	"github.com/endink/go-sharding/keygen"
	"github.com/pingcap/errors"
)

// ShardingRule is the immutable routing configuration of all logical tables.
// Lookups are read-only and safe for concurrent use after the rule is built.
type ShardingRule struct {
	tables        map[string]*core.ShardingTable
	keyGenerators map[string]keygen.KeyGenerator
	encryptEngine *encrypt.Engine
}

func NewShardingRule(encryptEngine *encrypt.Engine) *ShardingRule {
	if encryptEngine == nil {
		encryptEngine = encrypt.NewEngine()
	}
	return &ShardingRule{
		tables:        make(map[string]*core.ShardingTable),
		keyGenerators: make(map[string]keygen.KeyGenerator),
		encryptEngine: encryptEngine,
	}
}

// AddTable registers a logical table, generator is required when the table has a key generator column.
func (r *ShardingRule) AddTable(table *core.ShardingTable, generator keygen.KeyGenerator) error {
	if table == nil || table.Name == "" {
		return errors.New("sharding table name can not be empty")
	}
	if _, exists := r.tables[table.Name]; exists {
		return errors.Errorf("duplicate sharding table '%s'", table.Name)
	}
	if table.HasKeyGenerator() {
		if generator == nil {
			return errors.Errorf("key generator is required for column '%s.%s'", table.Name, table.KeyGeneratorColumn)
		}
		table.KeyGeneratorColumn = core.TrimAndLower(table.KeyGeneratorColumn)
		r.keyGenerators[table.Name] = generator
	}
	r.tables[table.Name] = table
	return nil
}

func (r *ShardingRule) GetShardingTable(table string) (*core.ShardingTable, bool) {
	t, ok := r.tables[core.TrimAndLower(table)]
	return t, ok
}

func (r *ShardingRule) Tables() []string {
	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *ShardingRule) EncryptEngine() *encrypt.Engine {
	return r.encryptEngine
}

func (r *ShardingRule) FindGenerateKeyColumnName(table string) (string, bool) {
	t, ok := r.GetShardingTable(table)
	if !ok || !t.HasKeyGenerator() {
		return "", false
	}
	return t.KeyGeneratorColumn, true
}

func (r *ShardingRule) GetKeyGenerator(table string) (keygen.KeyGenerator, bool) {
	g, ok := r.keyGenerators[core.TrimAndLower(table)]
	return g, ok
}

// IsShardingColumn reports whether the database or table strategy of table routes by column.
func (r *ShardingRule) IsShardingColumn(column string, table string) bool {
	t, ok := r.GetShardingTable(table)
	return ok && t.HasShardingColumn(column)
}

func (r *ShardingRule) GetAssistedQueryColumnCount(table string) (int, bool) {
	return r.encryptEngine.GetAssistedQueryColumnCount(table)
}

func (r *ShardingRule) HasQueryAssistedEncryptor(table string) bool {
	return r.encryptEngine.HasQueryAssistedEncryptor(table)
}

func (r *ShardingRule) GetAssistedQueryColumn(table string, column string) (string, bool) {
	return r.encryptEngine.GetAssistedQueryColumn(table, column)
}
