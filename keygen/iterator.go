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
	"github.com/endink/go-sharding/core/comparison"
	"github.com/pingcap/errors"
)

// Iterator is a forward-only sequence of key values, consumed by a single caller.
type Iterator interface {
	Next() (interface{}, error)
}

type sliceIterator struct {
	keys   []interface{}
	cursor int
}

func NewSliceIterator(keys ...interface{}) Iterator {
	return &sliceIterator{keys: keys}
}

func (it *sliceIterator) Next() (interface{}, error) {
	if it.cursor >= len(it.keys) {
		return nil, errors.Annotatef(ErrKeysExhausted, "%d keys consumed", it.cursor)
	}
	key := it.keys[it.cursor]
	it.cursor++
	return key, nil
}

// GeneratorSource pulls keys from a KeyGenerator on demand.
type GeneratorSource struct {
	generator KeyGenerator
	limit     int
}

// NewGeneratorSource creates a source whose iterators yield at most limit keys, limit <= 0 means unbounded.
func NewGeneratorSource(generator KeyGenerator, limit int) *GeneratorSource {
	return &GeneratorSource{generator: generator, limit: limit}
}

func (s *GeneratorSource) Iterator() Iterator {
	return &generatorIterator{source: s}
}

type generatorIterator struct {
	source *GeneratorSource
	drawn  int
}

func (it *generatorIterator) Next() (interface{}, error) {
	if it.source.limit > 0 && it.drawn >= it.source.limit {
		return nil, errors.Annotatef(ErrKeysExhausted, "limit %d reached", it.source.limit)
	}
	key, err := it.source.generator.GenerateKey()
	if err != nil {
		return nil, errors.Trace(err)
	}
	if !comparison.IsCompareSupported(key) {
		return nil, errors.Annotatef(ErrIncomparableKey, "generator '%s' produced %T", it.source.generator.GetName(), key)
	}
	it.drawn++
	return key, nil
}
