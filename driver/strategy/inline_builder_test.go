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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildInline(t *testing.T) {
	b := &InlineBuilder{
		ShardingColumns: " User_Id , user_id",
		Expression:      "ds${user_id % 2}",
	}
	inline, err := b.Build()
	assert.Nil(t, err)
	assert.Equal(t, []string{"user_id"}, inline.GetShardingColumns())
	assert.True(t, inline.IsShardingColumn("USER_ID"))
	assert.False(t, inline.IsShardingColumn("order_id"))

	ds, err := inline.Shard(map[string]interface{}{"user_id": int64(3)})
	assert.Nil(t, err)
	assert.Equal(t, "ds1", ds)
}

func TestInlineShardMissingValue(t *testing.T) {
	inline, err := (&InlineBuilder{ShardingColumns: "order_id", Expression: "t_order${order_id % 2}"}).Build()
	assert.Nil(t, err)

	_, err = inline.Shard(map[string]interface{}{"user_id": 1})
	assert.NotNil(t, err)
}

func TestBuildInlineInvalid(t *testing.T) {
	cases := []*InlineBuilder{
		{ShardingColumns: "", Expression: "ds${user_id % 2}"},
		{ShardingColumns: " , ", Expression: "ds${user_id % 2}"},
		{ShardingColumns: "1user", Expression: "ds${user_id % 2}"},
		{ShardingColumns: "user_id", Expression: ""},
		{ShardingColumns: "user_id", Expression: "ds${user_id % }"},
	}
	for _, c := range cases {
		_, err := c.Build()
		assert.NotNil(t, err, "columns: '%s', expression: '%s'", c.ShardingColumns, c.Expression)
	}
}
