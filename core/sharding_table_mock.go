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

var _ ShardingStrategy = &mockedShardingStrategy{}

// MockShardingTable creates a table sharded on the same columns for databases and tables.
// Targets are named prefix + value of the first sharding column.
func MockShardingTable(
	name string,
	keyGeneratorColumn string,
	databases []string,
	physicalTables []string,
	shardingColumns ...string) *ShardingTable {

	t := &ShardingTable{
		Name:               name,
		DatabaseStrategy:   mockShardingStrategy("ds_", shardingColumns),
		TableStrategy:      mockShardingStrategy(name+"_", shardingColumns),
		KeyGeneratorColumn: keyGeneratorColumn,
	}
	t.SetResources(databases, physicalTables)
	return t
}

func mockShardingStrategy(prefix string, columns []string) *mockedShardingStrategy {
	return &mockedShardingStrategy{
		prefix:  prefix,
		columns: columns,
	}
}

type mockedShardingStrategy struct {
	prefix  string
	columns []string
}

func (f *mockedShardingStrategy) GetShardingColumns() []string {
	return f.columns
}

func (f *mockedShardingStrategy) IsShardingColumn(column string) bool {
	return ContainsIgnoreCase(f.columns, column)
}

func (f *mockedShardingStrategy) Shard(values map[string]interface{}) (string, error) {
	if len(f.columns) == 0 {
		return "", fmt.Errorf("mocked strategy has no sharding column")
	}
	v, ok := values[f.columns[0]]
	if !ok {
		return "", fmt.Errorf("sharding column '%s' has no value", f.columns[0])
	}
	return fmt.Sprint(f.prefix, v), nil
}
