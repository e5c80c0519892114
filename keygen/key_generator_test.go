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
	"testing"

	"github.com/endink/go-sharding/core"
	"github.com/endink/go-sharding/statement"
	"github.com/pingcap/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sequenceGenerator struct {
	next int64
}

func (s *sequenceGenerator) GetName() string {
	return "SEQUENCE"
}

func (s *sequenceGenerator) GenerateKey() (interface{}, error) {
	v := s.next
	s.next++
	return v, nil
}

type testRule struct {
	column    string
	generator KeyGenerator
}

func (r *testRule) FindGenerateKeyColumnName(string) (string, bool) {
	return r.column, r.column != ""
}

func (r *testRule) GetKeyGenerator(string) (KeyGenerator, bool) {
	return r.generator, r.generator != nil
}

func TestSnowflakeGenerator(t *testing.T) {
	g, err := Create("snowflake", core.NewProperties(map[string]string{WorkerIdPropertyName: "3"}))
	require.Nil(t, err)
	assert.Equal(t, SnowflakeKeyGenerator, g.GetName())

	k1, err := g.GenerateKey()
	assert.Nil(t, err)
	k2, err := g.GenerateKey()
	assert.Nil(t, err)
	assert.IsType(t, int64(0), k1)
	assert.Less(t, k1.(int64), k2.(int64))
}

func TestSnowflakeInvalidWorkerId(t *testing.T) {
	_, err := Create(SnowflakeKeyGenerator, core.NewProperties(map[string]string{WorkerIdPropertyName: "5000"}))
	assert.NotNil(t, err)

	_, err = Create(SnowflakeKeyGenerator, core.NewProperties(map[string]string{WorkerIdPropertyName: "abc"}))
	assert.NotNil(t, err)
}

func TestUUIDGenerator(t *testing.T) {
	g, err := Create("uuid", nil)
	require.Nil(t, err)

	k, err := g.GenerateKey()
	assert.Nil(t, err)
	assert.Len(t, k, 32)
	assert.NotContains(t, k, "-")
}

func TestGeneratedKeyDrawsOnePerRow(t *testing.T) {
	stmt := statement.NewInsertStatement("t_order", "user_id")
	stmt.AddRow(statement.NewInsertValue(0, statement.NewNumberExpression(1)), nil)
	stmt.AddRow(statement.NewInsertValue(0, statement.NewNumberExpression(2)), nil)

	rule := &testRule{column: "order_id", generator: &sequenceGenerator{next: 100}}
	key, ok, err := NewGeneratedKey(rule, stmt, nil)
	require.Nil(t, err)
	require.True(t, ok)
	assert.True(t, key.IsGenerated())
	assert.Equal(t, "order_id", key.Column())
	assert.Equal(t, []interface{}{int64(100), int64(101)}, key.Keys())
}

func TestGeneratedKeyExtractedFromStatement(t *testing.T) {
	stmt := statement.NewInsertStatement("t_order", "order_id", "user_id")
	stmt.AddRow(statement.NewInsertValue(0, statement.NewNumberExpression(7), statement.NewNumberExpression(1)), nil)
	stmt.AddRow(statement.NewInsertValue(2, statement.NewPlaceholderExpression(0), statement.NewPlaceholderExpression(1)), nil)

	rule := &testRule{column: "ORDER_ID", generator: &sequenceGenerator{}}
	key, ok, err := NewGeneratedKey(rule, stmt, []interface{}{8, 2})
	require.Nil(t, err)
	require.True(t, ok)
	assert.False(t, key.IsGenerated())
	assert.Equal(t, []interface{}{7, 8}, key.Keys())
}

func TestGeneratedKeyNotConfigured(t *testing.T) {
	stmt := statement.NewInsertStatement("t_user", "name")
	key, ok, err := NewGeneratedKey(&testRule{}, stmt, nil)
	assert.Nil(t, err)
	assert.False(t, ok)
	assert.Nil(t, key)
}

func TestSliceIteratorExhausted(t *testing.T) {
	it := NewSliceIterator(1, 2)
	v, err := it.Next()
	assert.Nil(t, err)
	assert.Equal(t, 1, v)
	v, err = it.Next()
	assert.Nil(t, err)
	assert.Equal(t, 2, v)

	_, err = it.Next()
	assert.Equal(t, ErrKeysExhausted, errors.Cause(err))
}

func TestGeneratorSourceLimit(t *testing.T) {
	source := NewGeneratorSource(&sequenceGenerator{next: 10}, 1)
	it := source.Iterator()
	v, err := it.Next()
	assert.Nil(t, err)
	assert.Equal(t, int64(10), v)

	_, err = it.Next()
	assert.Equal(t, ErrKeysExhausted, errors.Cause(err))

	v, err = source.Iterator().Next()
	assert.Nil(t, err)
	assert.Equal(t, int64(11), v)
}
