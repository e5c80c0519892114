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

import "strings"

// ShardingCondition is the routing input of one inserted row.
type ShardingCondition struct {
	ShardingValues []ShardingValue
}

func NewShardingCondition(values ...ShardingValue) *ShardingCondition {
	return &ShardingCondition{ShardingValues: values}
}

func (c *ShardingCondition) Add(values ...ShardingValue) {
	c.ShardingValues = append(c.ShardingValues, values...)
}

func (c *ShardingCondition) Len() int {
	return len(c.ShardingValues)
}

func (c *ShardingCondition) Find(table string, column string) (ShardingValue, bool) {
	for _, v := range c.ShardingValues {
		if strings.EqualFold(v.GetTable(), table) && strings.EqualFold(v.GetColumn(), column) {
			return v, true
		}
	}
	return nil, false
}

// ScalarValues returns the first value of every list sharding value keyed by column.
func (c *ShardingCondition) ScalarValues(table string) map[string]interface{} {
	values := make(map[string]interface{}, len(c.ShardingValues))
	for _, v := range c.ShardingValues {
		if lv, ok := v.(*ListShardingValue); ok && strings.EqualFold(lv.Table, table) && len(lv.Values) > 0 {
			values[lv.Column] = lv.Values[0]
		}
	}
	return values
}

func (c *ShardingCondition) String() string {
	sb := NewStringBuilder()
	sb.Write("{")
	for i, v := range c.ShardingValues {
		if i > 0 {
			sb.Write(", ")
		}
		sb.Write(v)
	}
	sb.Write("}")
	return sb.String()
}

type ShardingConditions struct {
	Conditions []*ShardingCondition
}

func NewShardingConditions(conditions []*ShardingCondition) *ShardingConditions {
	return &ShardingConditions{Conditions: conditions}
}

func (c *ShardingConditions) Len() int {
	return len(c.Conditions)
}

func (c *ShardingConditions) Get(index int) *ShardingCondition {
	return c.Conditions[index]
}

func (c *ShardingConditions) IsAlwaysFalse() bool {
	return len(c.Conditions) == 0
}
