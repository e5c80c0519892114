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

package core

import "fmt"

type ShardingValue interface {
	fmt.Stringer
	GetTable() string
	GetColumn() string
}

var _ ShardingValue = &ListShardingValue{}

// ListShardingValue holds the values matched by equality or IN on one sharding column.
type ListShardingValue struct {
	Table  string
	Column string
	Values []interface{}
}

func NewListShardingValue(table string, column string, values ...interface{}) *ListShardingValue {
	return &ListShardingValue{
		Table:  table,
		Column: column,
		Values: values,
	}
}

func (s *ListShardingValue) GetTable() string {
	return s.Table
}

func (s *ListShardingValue) GetColumn() string {
	return s.Column
}

func (s *ListShardingValue) String() string {
	return fmt.Sprintf("%s.%s:%v", s.Table, s.Column, s.Values)
}
