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

//配置参考：https://shardingsphere.apache.org/document/legacy/4.x/document/cn/manual/sharding-jdbc/configuration/config-yaml/

package core

import (
	"fmt"
	"sort"

	"github.com/scylladb/go-set/strset"
)

type ShardingTable struct {
	Name               string
	TableStrategy      ShardingStrategy
	DatabaseStrategy   ShardingStrategy
	KeyGeneratorColumn string
	tables             []string
	databases          []string
}

func NewShardingTable(name string) *ShardingTable {
	return &ShardingTable{
		Name:             TrimAndLower(name),
		TableStrategy:    NoneShardingStrategy,
		DatabaseStrategy: NoneShardingStrategy,
	}
}

func (t *ShardingTable) SetResources(databases []string, tables []string) {
	dbSet := strset.New(databases...)
	tableSet := strset.New(tables...)

	t.databases = dbSet.List()
	t.tables = tableSet.List()
	sort.Strings(t.databases)
	sort.Strings(t.tables)
}

//get all of the configured databases
func (t *ShardingTable) GetDatabases() []string {
	return t.databases
}

//get all of the configured tables
func (t *ShardingTable) GetTables() []string {
	return t.tables
}

func (t *ShardingTable) HasDbShardingColumn(column string) bool {
	return t.IsDbSharding() && t.DatabaseStrategy.IsShardingColumn(TrimAndLower(column))
}

func (t *ShardingTable) HasTableShardingColumn(column string) bool {
	return t.IsTableSharding() && t.TableStrategy.IsShardingColumn(TrimAndLower(column))
}

func (t *ShardingTable) HasShardingColumn(column string) bool {
	return t.HasDbShardingColumn(column) || t.HasTableShardingColumn(column)
}

func (t *ShardingTable) HasKeyGenerator() bool {
	return t.KeyGeneratorColumn != ""
}

func (t *ShardingTable) IsDbSharding() bool {
	return t.DatabaseStrategy != nil && t.DatabaseStrategy != NoneShardingStrategy
}

func (t *ShardingTable) IsTableSharding() bool {
	return t.TableStrategy != nil && t.TableStrategy != NoneShardingStrategy
}

func (t *ShardingTable) IsSharding() bool {
	return t.IsDbSharding() || t.IsTableSharding()
}

// DataNode resolves the physical database and table of one row from its scalar sharding values.
func (t *ShardingTable) DataNode(values map[string]interface{}) (string, string, error) {
	var database, table string
	var err error

	if t.IsDbSharding() {
		database, err = t.DatabaseStrategy.Shard(values)
	} else {
		database, err = t.single(t.databases, "", "database")
	}
	if err != nil {
		return "", "", err
	}

	if t.IsTableSharding() {
		table, err = t.TableStrategy.Shard(values)
	} else {
		table, err = t.single(t.tables, t.Name, "table")
	}
	if err != nil {
		return "", "", err
	}
	return database, table, nil
}

func (t *ShardingTable) single(resources []string, fallback string, kind string) (string, error) {
	switch len(resources) {
	case 0:
		if fallback == "" {
			return "", fmt.Errorf("table '%s' has no %s resource and no %s strategy", t.Name, kind, kind)
		}
		return fallback, nil
	case 1:
		return resources[0], nil
	}
	return "", fmt.Errorf("table '%s' has %d %s resources but no %s strategy to choose one", t.Name, len(resources), kind, kind)
}
