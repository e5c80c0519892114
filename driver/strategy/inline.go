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

package strategy

import (
	"fmt"

	"github.com/endink/go-sharding/core"
	"github.com/endink/go-sharding/core/script"
)

var _ core.ShardingStrategy = &Inline{}

type Inline struct {
	Columns    []string
	Expression script.InlineExpression
}

func (i *Inline) GetShardingColumns() []string {
	return i.Columns
}

func (i *Inline) IsShardingColumn(column string) bool {
	return core.ContainsIgnoreCase(i.Columns, column)
}

func (i *Inline) Shard(values map[string]interface{}) (string, error) {
	vars := make(map[string]interface{}, len(i.Columns))
	for _, c := range i.Columns {
		v, ok := values[c]
		if !ok || v == nil {
			return "", fmt.Errorf("sharding column '%s' has no value for inline expression '%s'", c, i.Expression.RawExpression())
		}
		vars[c] = v
	}
	return i.Expression.Evaluate(vars)
}
