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

import "github.com/endink/go-sharding/core"

// OptimizeResult pairs the sharding condition and the column values of every inserted row.
// Row i of both halves is the same inserted row.
type OptimizeResult struct {
	shardingConditions *core.ShardingConditions
	insertColumnValues *InsertColumnValues
}

func NewOptimizeResult(conditions *core.ShardingConditions, values *InsertColumnValues) *OptimizeResult {
	return &OptimizeResult{
		shardingConditions: conditions,
		insertColumnValues: values,
	}
}

func (r *OptimizeResult) ShardingConditions() *core.ShardingConditions {
	return r.shardingConditions
}

func (r *OptimizeResult) InsertColumnValues() *InsertColumnValues {
	return r.insertColumnValues
}
