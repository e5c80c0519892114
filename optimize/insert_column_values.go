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
	"github.com/endink/go-sharding/core/collection"
	"github.com/endink/go-sharding/statement"
	"github.com/pingcap/errors"
)

var ErrUnknownColumn = errors.New("unknown insert column")

// InsertColumnValues holds the column names shared by every row and the rows themselves.
// Column names and row values only grow by appending.
type InsertColumnValues struct {
	valuesType   statement.InsertValuesType
	columnNames  *collection.LinkedStringSet
	columnValues []*InsertColumnValue
	parameters   []interface{}
}

func NewInsertColumnValues(valuesType statement.InsertValuesType, columnNames ...string) *InsertColumnValues {
	return &InsertColumnValues{
		valuesType:  valuesType,
		columnNames: collection.NewLinkedStringSet(columnNames...),
	}
}

func (c *InsertColumnValues) ValuesType() statement.InsertValuesType {
	return c.valuesType
}

func (c *InsertColumnValues) ColumnNames() []string {
	return c.columnNames.Values()
}

// AddColumnName reports false when the name is already present.
func (c *InsertColumnValues) AddColumnName(name string) bool {
	return c.columnNames.Add(name)
}

func (c *InsertColumnValues) ColumnValues() []*InsertColumnValue {
	return c.columnValues
}

func (c *InsertColumnValues) Len() int {
	return len(c.columnValues)
}

func (c *InsertColumnValues) Row(index int) (*InsertColumnValue, bool) {
	if index < 0 || index >= len(c.columnValues) {
		return nil, false
	}
	return c.columnValues[index], true
}

// Parameters is the input parameter list followed by every injected value, in injection order.
func (c *InsertColumnValues) Parameters() []interface{} {
	r := make([]interface{}, len(c.parameters))
	copy(r, c.parameters)
	return r
}

func (c *InsertColumnValues) addRow(values []statement.SQLExpression, parameters []interface{}, reserved int) *InsertColumnValue {
	row := &InsertColumnValue{
		owner:  c,
		values: make([]statement.SQLExpression, len(values), len(values)+reserved),
	}
	copy(row.values, values)
	if len(parameters) > 0 {
		row.parameters = make([]interface{}, len(parameters), len(parameters)+reserved)
		copy(row.parameters, parameters)
	}
	c.columnValues = append(c.columnValues, row)
	return row
}

// appendParameter returns the index of value in the accumulated parameter list.
func (c *InsertColumnValues) appendParameter(value interface{}) int {
	c.parameters = append(c.parameters, value)
	return len(c.parameters) - 1
}

// InsertColumnValue is one inserted row: its value expressions and the parameters it binds.
type InsertColumnValue struct {
	owner      *InsertColumnValues
	values     []statement.SQLExpression
	parameters []interface{}
}

func (v *InsertColumnValue) Values() []statement.SQLExpression {
	return v.values
}

func (v *InsertColumnValue) Parameters() []interface{} {
	return v.parameters
}

func (v *InsertColumnValue) AddColumnValue(expr statement.SQLExpression) {
	v.values = append(v.values, expr)
}

func (v *InsertColumnValue) AddColumnParameter(value interface{}) {
	v.parameters = append(v.parameters, value)
}

// ColumnValue resolves the current value of column, placeholders are read from the accumulated parameters.
func (v *InsertColumnValue) ColumnValue(column string) (interface{}, error) {
	index := v.owner.columnNames.IndexOf(core.TrimAndLower(column))
	if index < 0 || index >= len(v.values) {
		return nil, errors.Annotatef(ErrUnknownColumn, "column '%s'", column)
	}
	return statement.ExpressionValue(v.values[index], v.owner.parameters)
}

// String renders the row as "(v1, ?)" for VALUES or "c1 = v1, c2 = ?" for SET.
func (v *InsertColumnValue) String() string {
	sb := core.NewStringBuilder()
	if v.owner.valuesType == statement.InsertSetClause {
		names := v.owner.columnNames.Values()
		for i, expr := range v.values {
			if i > 0 {
				sb.Write(", ")
			}
			if i < len(names) {
				sb.Write(names[i], " = ")
			}
			sb.Write(expr)
		}
		return sb.String()
	}
	sb.Write("(")
	for i, expr := range v.values {
		if i > 0 {
			sb.Write(", ")
		}
		sb.Write(expr)
	}
	sb.Write(")")
	return sb.String()
}
