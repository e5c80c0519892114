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
	"testing"

	"github.com/endink/go-sharding/core"
	"github.com/endink/go-sharding/statement"
	"github.com/endink/go-sharding/testkit"
	"github.com/pingcap/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func num(v interface{}) statement.SQLExpression {
	return statement.NewNumberExpression(v)
}

func text(v string) statement.SQLExpression {
	return statement.NewTextExpression(v)
}

func ph(index int) statement.SQLExpression {
	return statement.NewPlaceholderExpression(index)
}

func exprs(values ...statement.SQLExpression) []statement.SQLExpression {
	return values
}

// orderStatement builds "insert into t_order (user_id) values (..), (..)" with one routing condition per row.
func orderStatement(paramsPerRow int, values ...statement.SQLExpression) *statement.InsertStatement {
	stmt := statement.NewInsertStatement("t_order", "user_id")
	for _, v := range values {
		condition := statement.NewAndCondition(statement.NewEqualCondition(statement.NewColumn("user_id", "t_order"), v))
		stmt.AddRow(statement.NewInsertValue(paramsPerRow, v), condition)
	}
	return stmt
}

func listValue(column string, values ...interface{}) core.ShardingValue {
	return core.NewListShardingValue("t_order", column, values...)
}

func TestGeneratedKeyWithLiterals(t *testing.T) {
	rule := newMockedRule().withKey("t_order", "order_id").withShardingColumns("t_order", "user_id", "order_id")
	stmt := orderStatement(0, num(1), num(2))

	result, err := NewInsertOptimizeEngine(rule, stmt, nil, mockKeys(100, 101)).Optimize()
	require.Nil(t, err)

	values := result.InsertColumnValues()
	assert.Equal(t, []string{"user_id", "order_id"}, values.ColumnNames())
	require.Equal(t, 2, values.Len())
	testkit.MustMatch(t, exprs(num(1), num(100)), values.ColumnValues()[0].Values())
	testkit.MustMatch(t, exprs(num(2), num(101)), values.ColumnValues()[1].Values())
	assert.Empty(t, values.Parameters())

	conditions := result.ShardingConditions()
	require.Equal(t, 2, conditions.Len())
	testkit.MustMatch(t, []core.ShardingValue{listValue("user_id", 1), listValue("order_id", 100)}, conditions.Get(0).ShardingValues)
	testkit.MustMatch(t, []core.ShardingValue{listValue("user_id", 2), listValue("order_id", 101)}, conditions.Get(1).ShardingValues)

	assert.True(t, stmt.ContainGeneratedKey())
}

func TestGeneratedKeyWithParameters(t *testing.T) {
	rule := newMockedRule().withKey("t_order", "order_id").withShardingColumns("t_order", "user_id", "order_id")
	stmt := orderStatement(1, ph(0), ph(1))

	result, err := NewInsertOptimizeEngine(rule, stmt, []interface{}{1, 2}, mockKeys(100, 101)).Optimize()
	require.Nil(t, err)

	values := result.InsertColumnValues()
	assert.Equal(t, []interface{}{1, 2, 100, 101}, values.Parameters())

	row0, ok := values.Row(0)
	require.True(t, ok)
	testkit.MustMatch(t, exprs(ph(0), ph(2)), row0.Values())
	assert.Equal(t, []interface{}{1, 100}, row0.Parameters())

	row1, ok := values.Row(1)
	require.True(t, ok)
	testkit.MustMatch(t, exprs(ph(1), ph(3)), row1.Values())
	assert.Equal(t, []interface{}{2, 101}, row1.Parameters())

	key, err := row1.ColumnValue("order_id")
	assert.Nil(t, err)
	assert.Equal(t, 101, key)

	conditions := result.ShardingConditions()
	testkit.MustMatch(t, []core.ShardingValue{listValue("user_id", 1), listValue("order_id", 100)}, conditions.Get(0).ShardingValues)
	testkit.MustMatch(t, []core.ShardingValue{listValue("user_id", 2), listValue("order_id", 101)}, conditions.Get(1).ShardingValues)
}

func TestGeneratedKeyNotShardingColumn(t *testing.T) {
	rule := newMockedRule().withKey("t_order", "order_id").withShardingColumns("t_order", "user_id")
	stmt := orderStatement(0, num(1), num(2))

	result, err := NewInsertOptimizeEngine(rule, stmt, nil, mockKeys("a", "b")).Optimize()
	require.Nil(t, err)

	assert.Equal(t, []string{"user_id", "order_id"}, result.InsertColumnValues().ColumnNames())
	testkit.MustMatch(t, exprs(num(1), text("a")), result.InsertColumnValues().ColumnValues()[0].Values())
	for _, c := range result.ShardingConditions().Conditions {
		assert.Equal(t, 1, c.Len())
		_, found := c.Find("t_order", "order_id")
		assert.False(t, found)
	}
	assert.True(t, stmt.ContainGeneratedKey())
}

func TestGeneratedKeySuppliedByStatement(t *testing.T) {
	rule := newMockedRule().withKey("t_order", "order_id").withShardingColumns("t_order", "user_id")
	stmt := statement.NewInsertStatement("t_order", "order_id", "user_id")
	stmt.AddRow(statement.NewInsertValue(0, num(7), num(1)), nil)

	result, err := NewInsertOptimizeEngine(rule, stmt, nil, nil).Optimize()
	require.Nil(t, err)

	assert.Equal(t, []string{"order_id", "user_id"}, result.InsertColumnValues().ColumnNames())
	testkit.MustMatch(t, exprs(num(7), num(1)), result.InsertColumnValues().ColumnValues()[0].Values())
	assert.Equal(t, 0, result.ShardingConditions().Get(0).Len())
	assert.False(t, stmt.ContainGeneratedKey())
}

func TestNoGeneratedKeyConfigured(t *testing.T) {
	rule := newMockedRule().withShardingColumns("t_order", "user_id")
	stmt := orderStatement(0, num(1))

	result, err := NewInsertOptimizeEngine(rule, stmt, nil, nil).Optimize()
	require.Nil(t, err)

	assert.Equal(t, []string{"user_id"}, result.InsertColumnValues().ColumnNames())
	assert.False(t, stmt.ContainGeneratedKey())
	assert.Equal(t, 1, result.ShardingConditions().Len())
}

func userStatement(paramsPerRow int, rows ...[]statement.SQLExpression) *statement.InsertStatement {
	stmt := statement.NewInsertStatement("t_user", "name", "pwd")
	for _, r := range rows {
		stmt.AddRow(statement.NewInsertValue(paramsPerRow, r...), nil)
	}
	return stmt
}

func TestAssistedColumnWithLiterals(t *testing.T) {
	rule := newMockedRule().withAssisted("t_user", "pwd", "pwd_assisted")
	stmt := userStatement(0,
		exprs(text("a"), text("p1")),
		exprs(text("b"), text("p2")),
		exprs(text("c"), num(3)),
	)

	result, err := NewInsertOptimizeEngine(rule, stmt, nil, nil).Optimize()
	require.Nil(t, err)

	values := result.InsertColumnValues()
	assert.Equal(t, []string{"name", "pwd", "pwd_assisted"}, values.ColumnNames())
	testkit.MustMatch(t, exprs(text("a"), text("p1"), text("p1")), values.ColumnValues()[0].Values())
	testkit.MustMatch(t, exprs(text("b"), text("p2"), text("p2")), values.ColumnValues()[1].Values())
	testkit.MustMatch(t, exprs(text("c"), num(3), num(3)), values.ColumnValues()[2].Values())
	assert.False(t, stmt.ContainGeneratedKey())
}

func TestAssistedColumnWithParameters(t *testing.T) {
	rule := newMockedRule().withAssisted("t_user", "pwd", "pwd_assisted")
	stmt := userStatement(2,
		exprs(ph(0), ph(1)),
		exprs(ph(2), ph(3)),
	)

	result, err := NewInsertOptimizeEngine(rule, stmt, []interface{}{"a", "p1", "b", "p2"}, nil).Optimize()
	require.Nil(t, err)

	values := result.InsertColumnValues()
	assert.Equal(t, []string{"name", "pwd", "pwd_assisted"}, values.ColumnNames())
	assert.Equal(t, []interface{}{"a", "p1", "b", "p2", "p1", "p2"}, values.Parameters())
	testkit.MustMatch(t, exprs(ph(0), ph(1), ph(4)), values.ColumnValues()[0].Values())
	testkit.MustMatch(t, exprs(ph(2), ph(3), ph(5)), values.ColumnValues()[1].Values())
	assert.Equal(t, []interface{}{"b", "p2", "p2"}, values.ColumnValues()[1].Parameters())

	v, err := values.ColumnValues()[1].ColumnValue("pwd_assisted")
	assert.Nil(t, err)
	assert.Equal(t, "p2", v)
}

func TestGeneratedKeyAndAssistedColumnOrder(t *testing.T) {
	rule := newMockedRule().
		withKey("t_user", "id").
		withAssisted("t_user", "pwd", "pwd_assisted").
		withAssisted("t_user", "name", "name_assisted")
	stmt := userStatement(0,
		exprs(text("a"), text("p1")),
		exprs(text("b"), text("p2")),
	)

	result, err := NewInsertOptimizeEngine(rule, stmt, nil, mockKeys(int64(1), int64(2))).Optimize()
	require.Nil(t, err)

	values := result.InsertColumnValues()
	assert.Equal(t, []string{"name", "pwd", "id", "name_assisted", "pwd_assisted"}, values.ColumnNames())
	testkit.MustMatch(t, exprs(text("a"), text("p1"), num(int64(1)), text("a"), text("p1")), values.ColumnValues()[0].Values())
	testkit.MustMatch(t, exprs(text("b"), text("p2"), num(int64(2)), text("b"), text("p2")), values.ColumnValues()[1].Values())
	assert.True(t, stmt.ContainGeneratedKey())
}

func TestMixedBatchGrowsRowParameters(t *testing.T) {
	rule := newMockedRule().withKey("t_order", "order_id")
	stmt := statement.NewInsertStatement("t_order", "user_id")
	stmt.AddRow(statement.NewInsertValue(1, ph(0)), nil)
	stmt.AddRow(statement.NewInsertValue(0, num(2)), nil)

	result, err := NewInsertOptimizeEngine(rule, stmt, []interface{}{1}, mockKeys(100, 101)).Optimize()
	require.Nil(t, err)

	values := result.InsertColumnValues()
	assert.Equal(t, []interface{}{1, 100, 101}, values.Parameters())
	testkit.MustMatch(t, exprs(num(2), ph(2)), values.ColumnValues()[1].Values())
	assert.Equal(t, []interface{}{101}, values.ColumnValues()[1].Parameters())
}

func TestRowCountMismatch(t *testing.T) {
	stmt := orderStatement(0, num(1))
	stmt.InsertValues = append(stmt.InsertValues, statement.NewInsertValue(0, num(2)))

	_, err := NewInsertOptimizeEngine(newMockedRule(), stmt, nil, nil).Optimize()
	assert.Equal(t, ErrRowCountMismatch, errors.Cause(err))
}

func TestInsufficientParameters(t *testing.T) {
	stmt := orderStatement(1, ph(0), ph(1))

	_, err := NewInsertOptimizeEngine(newMockedRule(), stmt, []interface{}{1}, nil).Optimize()
	assert.Equal(t, ErrInsufficientParameters, errors.Cause(err))
}

func TestGeneratedKeyExhausted(t *testing.T) {
	rule := newMockedRule().withKey("t_order", "order_id")

	_, err := NewInsertOptimizeEngine(rule, orderStatement(0, num(1), num(2)), nil, mockKeys(100)).Optimize()
	assert.Equal(t, ErrGeneratedKeyExhausted, errors.Cause(err))

	_, err = NewInsertOptimizeEngine(rule, orderStatement(0, num(1)), nil, nil).Optimize()
	assert.Equal(t, ErrGeneratedKeyExhausted, errors.Cause(err))
}

func TestUnsupportedLiteralValue(t *testing.T) {
	rule := newMockedRule().withKey("t_order", "order_id")

	_, err := NewInsertOptimizeEngine(rule, orderStatement(0, num(1)), nil, mockKeys(struct{}{})).Optimize()
	assert.Equal(t, statement.ErrUnsupportedValue, errors.Cause(err))

	result, err := NewInsertOptimizeEngine(rule, orderStatement(1, ph(0)), []interface{}{1}, mockKeys(struct{}{})).Optimize()
	require.Nil(t, err)
	assert.Equal(t, []interface{}{1, struct{}{}}, result.InsertColumnValues().Parameters())
}

func TestRowRendering(t *testing.T) {
	rule := newMockedRule().withKey("t_order", "order_id")

	result, err := NewInsertOptimizeEngine(rule, orderStatement(1, ph(0)), []interface{}{1}, mockKeys(100)).Optimize()
	require.Nil(t, err)
	assert.Equal(t, "(?, ?)", result.InsertColumnValues().ColumnValues()[0].String())

	stmt := statement.NewInsertStatement("t_order", "user_id")
	stmt.InsertValuesType = statement.InsertSetClause
	stmt.AddRow(statement.NewInsertValue(0, text("it's")), nil)
	result, err = NewInsertOptimizeEngine(rule, stmt, nil, mockKeys(100)).Optimize()
	require.Nil(t, err)
	assert.Equal(t, statement.InsertSetClause, result.InsertColumnValues().ValuesType())
	assert.Equal(t, "user_id = 'it''s', order_id = 100", result.InsertColumnValues().ColumnValues()[0].String())
}

func TestRenderedRowsAreValidSql(t *testing.T) {
	rule := newMockedRule().withKey("t_order", "order_id").withShardingColumns("t_order", "user_id", "order_id")
	stmt := orderStatement(0, num(1), text("2"))

	result, err := NewInsertOptimizeEngine(rule, stmt, nil, mockKeys(100, 101)).Optimize()
	require.Nil(t, err)

	sb := core.NewStringBuilder("insert into t_order (")
	sb.WriteJoin(", ", "user_id", "order_id")
	sb.Write(") values ")
	for i, row := range result.InsertColumnValues().ColumnValues() {
		if i > 0 {
			sb.Write(", ")
		}
		sb.Write(row)
	}
	testkit.AssertEqualSql(t, "INSERT INTO t_order (user_id, order_id) VALUES (1, 100), ('2', 101)", sb.String())
}
