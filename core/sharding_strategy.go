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

import "errors"

type ShardingStrategy interface {
	GetShardingColumns() []string
	IsShardingColumn(column string) bool

	// Shard computes the single target name for the given column values.
	Shard(values map[string]interface{}) (string, error)
}

var errNoneStrategy = errors.New("none sharding strategy can not shard")

var NoneShardingStrategy ShardingStrategy = &noneShardingStrategy{}

type noneShardingStrategy struct {
}

func (n *noneShardingStrategy) GetShardingColumns() []string {
	return nil
}

func (n *noneShardingStrategy) IsShardingColumn(string) bool {
	return false
}

func (n *noneShardingStrategy) Shard(map[string]interface{}) (string, error) {
	return "", errNoneStrategy
}
