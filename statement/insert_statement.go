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
	"strings"
)

type InsertValuesType int

const (
	InsertValuesClause InsertValuesType = iota
	InsertSetClause
)

func (t InsertValuesType) String() string {
	switch t {
	case InsertValuesClause:
		return "VALUES"
	case InsertSetClause:
		return "SET"
	}
	return ""
}

// InsertValue is one row of an insert statement as it was parsed.
type InsertValue struct {
	ColumnValues    []SQLExpression
	ParametersCount int
}

func NewInsertValue(parametersCount int, values ...SQLExpression) *InsertValue {
	return &InsertValue{
		ColumnValues:    values,
		ParametersCount: parametersCount,
	}
}

type InsertStatement struct {
	Table            string
	Columns          []Column
	InsertValuesType InsertValuesType
	InsertValues     []*InsertValue
	RouteConditions  *OrCondition

	containGeneratedKey bool
}

func NewInsertStatement(table string, columnNames ...string) *InsertStatement {
	t := strings.ToLower(strings.TrimSpace(table))
	columns := make([]Column, len(columnNames))
	for i, name := range columnNames {
		columns[i] = NewColumn(name, t)
	}
	return &InsertStatement{
		Table:           t,
		Columns:         columns,
		RouteConditions: &OrCondition{},
	}
}

// AddRow appends a row together with its routing condition group, keeping both lists aligned.
func (s *InsertStatement) AddRow(value *InsertValue, condition *AndCondition) {
	if condition == nil {
		condition = NewAndCondition()
	}
	s.InsertValues = append(s.InsertValues, value)
	s.RouteConditions.Add(condition)
}

func (s *InsertStatement) InsertColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

func (s *InsertStatement) HasColumn(name string) bool {
	return s.ColumnIndex(name) >= 0
}

func (s *InsertStatement) ColumnIndex(name string) int {
	target := NewColumn(name, s.Table)
	for i, c := range s.Columns {
		if c.Equals(target) {
			return i
		}
	}
	return -1
}

func (s *InsertStatement) ParametersCount() int {
	count := 0
	for _, v := range s.InsertValues {
		count += v.ParametersCount
	}
	return count
}

func (s *InsertStatement) ContainGeneratedKey() bool {
	return s.containGeneratedKey
}

func (s *InsertStatement) SetContainGeneratedKey(contain bool) {
	s.containGeneratedKey = contain
}
