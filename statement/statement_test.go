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

package statement

import (
	"testing"

	"github.com/pingcap/errors"
	"github.com/stretchr/testify/assert"
)

func TestExpressionString(t *testing.T) {
	assert.Equal(t, "12", NewNumberExpression(12).String())
	assert.Equal(t, "1.5", NewNumberExpression(1.5).String())
	assert.Equal(t, "'it''s'", NewTextExpression("it's").String())
	assert.Equal(t, "?", NewPlaceholderExpression(3).String())
}

func TestNewLiteralExpression(t *testing.T) {
	e, err := NewLiteralExpression("a")
	assert.Nil(t, err)
	assert.Equal(t, NewTextExpression("a"), e)

	e, err = NewLiteralExpression(uint8(7))
	assert.Nil(t, err)
	assert.Equal(t, NewNumberExpression(uint8(7)), e)

	_, err = NewLiteralExpression([]byte("a"))
	assert.Equal(t, ErrUnsupportedValue, errors.Cause(err))

	_, err = NewLiteralExpression(nil)
	assert.Equal(t, ErrUnsupportedValue, errors.Cause(err))
}

func TestExpressionValue(t *testing.T) {
	params := []interface{}{"a", 2}

	v, err := ExpressionValue(NewPlaceholderExpression(1), params)
	assert.Nil(t, err)
	assert.Equal(t, 2, v)

	v, err = ExpressionValue(NewTextExpression("b"), params)
	assert.Nil(t, err)
	assert.Equal(t, "b", v)

	_, err = ExpressionValue(NewPlaceholderExpression(2), params)
	assert.Equal(t, ErrParameterIndexOutOfRange, errors.Cause(err))
}

func TestConditionValues(t *testing.T) {
	column := NewColumn(" User_ID ", "T_Order")
	assert.Equal(t, "t_order.user_id", column.String())

	in := NewInCondition(column, NewNumberExpression(1), NewPlaceholderExpression(0))
	values, err := in.ConditionValues([]interface{}{5})
	assert.Nil(t, err)
	assert.Equal(t, []interface{}{1, 5}, values)

	_, err = in.ConditionValues(nil)
	assert.Equal(t, ErrParameterIndexOutOfRange, errors.Cause(err))

	literal := NewGeneratedKeyCondition(column, -1, int64(100))
	values, err = literal.ConditionValues([]interface{}{5})
	assert.Nil(t, err)
	assert.Equal(t, []interface{}{int64(100)}, values)

	param := NewGeneratedKeyCondition(column, 0, nil)
	values, err = param.ConditionValues([]interface{}{5})
	assert.Nil(t, err)
	assert.Equal(t, []interface{}{5}, values)
}

func TestInsertStatement(t *testing.T) {
	stmt := NewInsertStatement("T_Order", "User_Id", "name")
	stmt.AddRow(NewInsertValue(1, NewPlaceholderExpression(0), NewTextExpression("a")), nil)
	stmt.AddRow(NewInsertValue(2, NewPlaceholderExpression(1), NewPlaceholderExpression(2)), NewAndCondition())

	assert.Equal(t, "t_order", stmt.Table)
	assert.Equal(t, []string{"user_id", "name"}, stmt.InsertColumnNames())
	assert.True(t, stmt.HasColumn("USER_ID"))
	assert.Equal(t, 1, stmt.ColumnIndex("name"))
	assert.False(t, stmt.HasColumn("order_id"))
	assert.Equal(t, 3, stmt.ParametersCount())
	assert.Equal(t, 2, stmt.RouteConditions.Len())
	assert.Equal(t, "VALUES", stmt.InsertValuesType.String())

	assert.False(t, stmt.ContainGeneratedKey())
	stmt.SetContainGeneratedKey(true)
	assert.True(t, stmt.ContainGeneratedKey())
}
