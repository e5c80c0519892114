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

package encrypt

import (
	"sort"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/endink/go-sharding/core"
	"github.com/pingcap/errors"
)

// ColumnRule describes how one logical column is stored encrypted.
type ColumnRule struct {
	Column              string
	CipherColumn        string
	AssistedQueryColumn string
	Encryptor           Encryptor
}

func (r *ColumnRule) HasAssistedQueryColumn() bool {
	return r.AssistedQueryColumn != ""
}

// Engine answers encryption lookups per table. Columns keep the order they were added in.
// An Engine is read-only once built and may be shared by concurrent callers.
type Engine struct {
	tables map[string]*linkedhashmap.Map
}

func NewEngine() *Engine {
	return &Engine{tables: make(map[string]*linkedhashmap.Map)}
}

func (e *Engine) AddColumn(table string, rule *ColumnRule) error {
	t := core.TrimAndLower(table)
	if t == "" {
		return errors.New("encrypt table name can not be empty")
	}
	if rule == nil || core.TrimAndLower(rule.Column) == "" {
		return errors.Errorf("encrypt column of table '%s' can not be empty", t)
	}
	r := &ColumnRule{
		Column:              core.TrimAndLower(rule.Column),
		CipherColumn:        core.TrimAndLower(rule.CipherColumn),
		AssistedQueryColumn: core.TrimAndLower(rule.AssistedQueryColumn),
		Encryptor:           rule.Encryptor,
	}
	if r.CipherColumn == "" {
		return errors.Errorf("cipher column is required for encrypt column '%s.%s'", t, r.Column)
	}
	if r.Encryptor == nil {
		return errors.Errorf("encryptor is required for encrypt column '%s.%s'", t, r.Column)
	}
	if r.HasAssistedQueryColumn() {
		if _, ok := r.Encryptor.(QueryAssistedEncryptor); !ok {
			return errors.Errorf("encryptor '%s' of column '%s.%s' does not support assisted query column", r.Encryptor.GetName(), t, r.Column)
		}
	}
	columns, ok := e.tables[t]
	if !ok {
		columns = linkedhashmap.New()
		e.tables[t] = columns
	}
	if _, found := columns.Get(r.Column); found {
		return errors.Errorf("duplicate encrypt column '%s.%s'", t, r.Column)
	}
	columns.Put(r.Column, r)
	return nil
}

func (e *Engine) Tables() []string {
	names := make([]string, 0, len(e.tables))
	for t := range e.tables {
		names = append(names, t)
	}
	sort.Strings(names)
	return names
}

func (e *Engine) Columns(table string) []*ColumnRule {
	columns, ok := e.tables[core.TrimAndLower(table)]
	if !ok {
		return nil
	}
	values := columns.Values()
	rules := make([]*ColumnRule, len(values))
	for i, v := range values {
		rules[i] = v.(*ColumnRule)
	}
	return rules
}

func (e *Engine) findColumn(table string, column string) (*ColumnRule, bool) {
	columns, ok := e.tables[core.TrimAndLower(table)]
	if !ok {
		return nil, false
	}
	v, found := columns.Get(core.TrimAndLower(column))
	if !found {
		return nil, false
	}
	return v.(*ColumnRule), true
}

// GetAssistedQueryColumnCount is absent when no column of the table has an assisted query column.
func (e *Engine) GetAssistedQueryColumnCount(table string) (int, bool) {
	count := 0
	for _, r := range e.Columns(table) {
		if r.HasAssistedQueryColumn() {
			count++
		}
	}
	return count, count > 0
}

func (e *Engine) HasQueryAssistedEncryptor(table string) bool {
	for _, r := range e.Columns(table) {
		if _, ok := r.Encryptor.(QueryAssistedEncryptor); ok {
			return true
		}
	}
	return false
}

func (e *Engine) GetAssistedQueryColumn(table string, column string) (string, bool) {
	r, ok := e.findColumn(table, column)
	if !ok || !r.HasAssistedQueryColumn() {
		return "", false
	}
	return r.AssistedQueryColumn, true
}

func (e *Engine) GetCipherColumn(table string, column string) (string, bool) {
	r, ok := e.findColumn(table, column)
	if !ok {
		return "", false
	}
	return r.CipherColumn, true
}

func (e *Engine) GetEncryptor(table string, column string) (Encryptor, bool) {
	r, ok := e.findColumn(table, column)
	if !ok {
		return nil, false
	}
	return r.Encryptor, true
}
