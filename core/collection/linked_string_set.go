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

package collection

import (
	"strings"

	"github.com/emirpasic/gods/sets/linkedhashset"
)

// LinkedStringSet keeps strings in insertion order, adding an existing item is a no-op.
type LinkedStringSet struct {
	set *linkedhashset.Set
}

func NewLinkedStringSet(values ...string) *LinkedStringSet {
	s := &LinkedStringSet{set: linkedhashset.New()}
	s.Add(values...)
	return s
}

// Add appends the items that are not present yet and reports whether any was added.
func (s *LinkedStringSet) Add(items ...string) bool {
	added := false
	for _, item := range items {
		if !s.set.Contains(item) {
			s.set.Add(item)
			added = true
		}
	}
	return added
}

func (s *LinkedStringSet) Contains(items ...string) bool {
	for _, item := range items {
		if !s.set.Contains(item) {
			return false
		}
	}
	return true
}

// IndexOf returns the position of item or -1.
func (s *LinkedStringSet) IndexOf(item string) int {
	index := -1
	i := 0
	s.set.Each(func(_ int, value interface{}) {
		if index < 0 && value.(string) == item {
			index = i
		}
		i++
	})
	return index
}

func (s *LinkedStringSet) Size() int {
	return s.set.Size()
}

func (s *LinkedStringSet) Empty() bool {
	return s.set.Empty()
}

func (s *LinkedStringSet) Values() []string {
	values := make([]string, 0, s.set.Size())
	for _, v := range s.set.Values() {
		values = append(values, v.(string))
	}
	return values
}

func (s *LinkedStringSet) String() string {
	return "[" + strings.Join(s.Values(), ", ") + "]"
}
