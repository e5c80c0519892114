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
	"fmt"
	"strings"

	"github.com/endink/go-sharding/core"
)

type Column struct {
	Name      string
	TableName string
}

func NewColumn(name string, tableName string) Column {
	return Column{
		Name:      core.TrimAndLower(name),
		TableName: core.TrimAndLower(tableName),
	}
}

func (c Column) String() string {
	return fmt.Sprintf("%s.%s", c.TableName, c.Name)
}

func (c Column) Equals(other Column) bool {
	return strings.EqualFold(c.Name, other.Name) && strings.EqualFold(c.TableName, other.TableName)
}
