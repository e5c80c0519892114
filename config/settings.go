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

package config

import (
	"sort"
	"strings"

	"github.com/endink/go-sharding/core"
	"github.com/endink/go-sharding/core/script"
	"github.com/endink/go-sharding/driver/strategy"
	"github.com/endink/go-sharding/encrypt"
	"github.com/endink/go-sharding/keygen"
	"github.com/endink/go-sharding/rule"
	"github.com/pingcap/errors"
	"go.uber.org/multierr"
)

const NoneStrategy = "none"

// Settings is the "rule" section of the configuration.
type Settings struct {
	Tables map[string]*TableSettings `yaml:"tables"`
}

type TableSettings struct {
	Resources     string                            `yaml:"resources"`
	DbStrategy    *StrategySettings                 `yaml:"db-strategy"`
	TableStrategy *StrategySettings                 `yaml:"table-strategy"`
	KeyGenerator  *KeyGeneratorSettings             `yaml:"key-generator"`
	Encrypt       map[string]*EncryptColumnSettings `yaml:"encrypt"`
}

// StrategySettings is either the scalar "none" or a mapping with one strategy.
type StrategySettings struct {
	None   bool                    `yaml:"-"`
	Inline *strategy.InlineBuilder `yaml:"inline"`
}

func (s *StrategySettings) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err == nil {
		if n := core.TrimAndLower(name); n == "" || n == NoneStrategy {
			s.None = true
			return nil
		}
		return errors.Errorf("unknown sharding strategy '%s'", name)
	}
	type plain StrategySettings
	return unmarshal((*plain)(s))
}

func (s *StrategySettings) build() (core.ShardingStrategy, error) {
	if s == nil || s.None {
		return core.NoneShardingStrategy, nil
	}
	if s.Inline != nil {
		inline, err := s.Inline.Build()
		if err != nil {
			return nil, err
		}
		return inline, nil
	}
	return nil, errors.New("sharding strategy must be 'none' or have an 'inline' section")
}

type KeyGeneratorSettings struct {
	Type   string            `yaml:"type"`
	Column string            `yaml:"column"`
	Props  map[string]string `yaml:"props"`
}

type EncryptColumnSettings struct {
	CipherColumn        string             `yaml:"cipher-column"`
	AssistedQueryColumn string             `yaml:"assisted-query-column"`
	Encryptor           *EncryptorSettings `yaml:"encryptor"`
}

type EncryptorSettings struct {
	Type  string            `yaml:"type"`
	Props map[string]string `yaml:"props"`
}

// Build validates every table and reports all problems at once.
func (s *Settings) Build() (*rule.ShardingRule, error) {
	engine := encrypt.NewEngine()
	shardingRule := rule.NewShardingRule(engine)

	var err error
	for _, name := range s.tableNames() {
		settings := s.Tables[name]
		if settings == nil {
			settings = &TableSettings{}
		}
		err = multierr.Append(err, buildTable(shardingRule, engine, name, settings))
	}
	if err != nil {
		return nil, err
	}
	return shardingRule, nil
}

func (s *Settings) tableNames() []string {
	names := make([]string, 0, len(s.Tables))
	for n := range s.Tables {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func buildTable(shardingRule *rule.ShardingRule, engine *encrypt.Engine, name string, settings *TableSettings) error {
	if err := core.ValidateIdentifier(name); err != nil {
		return errors.Annotatef(err, "invalid table name '%s'", name)
	}
	table := core.NewShardingTable(name)

	var err error
	if table.DatabaseStrategy, err = settings.DbStrategy.build(); err != nil {
		return errors.Annotatef(err, "db-strategy of table '%s'", name)
	}
	if table.TableStrategy, err = settings.TableStrategy.build(); err != nil {
		return errors.Annotatef(err, "table-strategy of table '%s'", name)
	}

	databases, tables, err := parseResources(settings.Resources, table.Name)
	if err != nil {
		return errors.Annotatef(err, "resources of table '%s'", name)
	}
	table.SetResources(databases, tables)

	var generator keygen.KeyGenerator
	if kg := settings.KeyGenerator; kg != nil {
		if strings.TrimSpace(kg.Column) == "" {
			return errors.Errorf("key-generator column of table '%s' is required", name)
		}
		if generator, err = keygen.Create(kg.Type, core.NewProperties(kg.Props)); err != nil {
			return errors.Annotatef(err, "key-generator of table '%s'", name)
		}
		table.KeyGeneratorColumn = kg.Column
	}

	if err = shardingRule.AddTable(table, generator); err != nil {
		return err
	}

	for column, c := range settings.Encrypt {
		if c == nil || c.Encryptor == nil {
			err = multierr.Append(err, errors.Errorf("encryptor of column '%s.%s' is required", name, column))
			continue
		}
		encryptor, e := encrypt.Create(c.Encryptor.Type, core.NewProperties(c.Encryptor.Props))
		if e != nil {
			err = multierr.Append(err, errors.Annotatef(e, "encryptor of column '%s.%s'", name, column))
			continue
		}
		err = multierr.Append(err, engine.AddColumn(name, &encrypt.ColumnRule{
			Column:              column,
			CipherColumn:        c.CipherColumn,
			AssistedQueryColumn: c.AssistedQueryColumn,
			Encryptor:           encryptor,
		}))
	}
	return err
}

// parseResources expands "ds${range(0,1)}.t_order${[0,1]}" into databases and physical tables.
// A node without a table part routes to the logical table name.
func parseResources(resources string, logicalTable string) ([]string, []string, error) {
	if strings.TrimSpace(resources) == "" {
		return nil, nil, nil
	}
	expr, err := script.NewInlineExpression(resources)
	if err != nil {
		return nil, nil, err
	}
	nodes, err := expr.Flat()
	if err != nil {
		return nil, nil, err
	}
	var databases, tables []string
	for _, node := range nodes {
		parts := strings.SplitN(strings.TrimSpace(node), ".", 2)
		if parts[0] == "" {
			return nil, nil, errors.Errorf("invalid data node '%s'", node)
		}
		databases = append(databases, parts[0])
		if len(parts) == 2 && parts[1] != "" {
			tables = append(tables, parts[1])
		} else {
			tables = append(tables, logicalTable)
		}
	}
	return databases, tables, nil
}
