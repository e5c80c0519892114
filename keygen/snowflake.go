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

package keygen

import (
	"github.com/bwmarrin/snowflake"
	"github.com/endink/go-sharding/core"
	"github.com/pingcap/errors"
)

const WorkerIdPropertyName = "worker-id"

var _ KeyGenerator = &snowflakeGenerator{}

type snowflakeGenerator struct {
	node *snowflake.Node
}

func newSnowflake(props core.Properties) (KeyGenerator, error) {
	workerId, err := props.GetInt64(WorkerIdPropertyName, 0)
	if err != nil {
		return nil, err
	}
	node, err := snowflake.NewNode(workerId)
	if err != nil {
		return nil, errors.Annotatef(err, "invalid property '%s' for snowflake key generator", WorkerIdPropertyName)
	}
	return &snowflakeGenerator{node: node}, nil
}

func (s *snowflakeGenerator) GetName() string {
	return SnowflakeKeyGenerator
}

func (s *snowflakeGenerator) GenerateKey() (interface{}, error) {
	return s.node.Generate().Int64(), nil
}
