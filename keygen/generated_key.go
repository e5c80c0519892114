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

package keygen

import (
	"github.com/endink/go-sharding/core/comparison"
	"github.com/endink/go-sharding/statement"
	"github.com/pingcap/errors"
)

var (
	ErrKeysExhausted       = errors.New("generated keys exhausted")
	ErrInvalidKeyGenerator = errors.New("provider is not a key generator")
	ErrIncomparableKey     = errors.New("generated key is not comparable")
)

// KeyGeneratorRule resolves the key column and generator configured for a table.
type KeyGeneratorRule interface {
	FindGenerateKeyColumnName(table string) (string, bool)
	GetKeyGenerator(table string) (KeyGenerator, bool)
}

// GeneratedKey holds the key values of one insert statement.
// Keys are either taken from the statement or drawn from the table's generator, one per row.
type GeneratedKey struct {
	column    string
	generated bool
	keys      []interface{}
}

// NewGeneratedKey returns false when the table has no generated key column.
func NewGeneratedKey(rule KeyGeneratorRule, stmt *statement.InsertStatement, parameters []interface{}) (*GeneratedKey, bool, error) {
	column, ok := rule.FindGenerateKeyColumnName(stmt.Table)
	if !ok {
		return nil, false, nil
	}
	if idx := stmt.ColumnIndex(column); idx >= 0 {
		keys, err := extractKeys(stmt, idx, parameters)
		if err != nil {
			return nil, false, err
		}
		return &GeneratedKey{column: column, keys: keys}, true, nil
	}
	generator, ok := rule.GetKeyGenerator(stmt.Table)
	if !ok {
		return nil, false, errors.Annotatef(ErrInvalidKeyGenerator, "no key generator configured for table '%s'", stmt.Table)
	}
	keys := make([]interface{}, 0, len(stmt.InsertValues))
	for range stmt.InsertValues {
		key, err := generator.GenerateKey()
		if err != nil {
			return nil, false, errors.Trace(err)
		}
		if !comparison.IsCompareSupported(key) {
			return nil, false, errors.Annotatef(ErrIncomparableKey, "generator '%s' produced %T", generator.GetName(), key)
		}
		keys = append(keys, key)
	}
	return &GeneratedKey{column: column, generated: true, keys: keys}, true, nil
}

func extractKeys(stmt *statement.InsertStatement, columnIndex int, parameters []interface{}) ([]interface{}, error) {
	keys := make([]interface{}, 0, len(stmt.InsertValues))
	for i, row := range stmt.InsertValues {
		if columnIndex >= len(row.ColumnValues) {
			return nil, errors.Errorf("row %d has no value for generated key column", i)
		}
		v, err := statement.ExpressionValue(row.ColumnValues[columnIndex], parameters)
		if err != nil {
			return nil, errors.Annotatef(err, "extract generated key of row %d", i)
		}
		keys = append(keys, v)
	}
	return keys, nil
}

func (k *GeneratedKey) Column() string {
	return k.column
}

// IsGenerated is false when the keys were supplied by the statement itself.
func (k *GeneratedKey) IsGenerated() bool {
	return k.generated
}

func (k *GeneratedKey) Keys() []interface{} {
	r := make([]interface{}, len(k.keys))
	copy(r, k.keys)
	return r
}

func (k *GeneratedKey) Iterator() Iterator {
	return NewSliceIterator(k.keys...)
}
