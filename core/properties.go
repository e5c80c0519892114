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

import (
	"fmt"
	"strconv"
	"strings"
)

type Properties interface {
	GetValues() map[string]string
	Get(name string) (string, bool)
	GetInt64(name string, defaultValue int64) (int64, error)
}

var EmptyProperties Properties = NewProperties(nil)

// NewProperties copies values, property names are case-insensitive.
func NewProperties(values map[string]string) Properties {
	props := make(map[string]string, len(values))
	for k, v := range values {
		props[TrimAndLower(k)] = strings.TrimSpace(v)
	}
	return &properties{values: props}
}

type properties struct {
	values map[string]string
}

func (props *properties) GetValues() map[string]string {
	r := make(map[string]string, len(props.values))
	for k, v := range props.values {
		r[k] = v
	}
	return r
}

func (props *properties) Get(name string) (string, bool) {
	v, ok := props.values[TrimAndLower(name)]
	return v, ok
}

func (props *properties) GetInt64(name string, defaultValue int64) (int64, error) {
	v, ok := props.Get(name)
	if !ok || v == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("property '%s' must be an integer, given value: %s", name, v)
	}
	return n, nil
}
