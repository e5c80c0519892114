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
	"github.com/endink/go-sharding/config/source"
	"github.com/endink/go-sharding/rule"
	cnf "go.uber.org/config"
)

const (
	FileProvider = source.FileConfigProvider
	EtcdProvider = source.EtcdConfigProvider
)

// Source loads the configuration document that holds the "rule" section.
type Source interface {
	GetName() string
	Load(boot cnf.Provider) (cnf.Value, error)
	Close() error
}

var _ Source = &source.FileSource{}
var _ Source = &source.EtcdSource{}

type Manager interface {
	GetSettings() *Settings
	GetRule() *rule.ShardingRule
	GetSource() Source
	Close() error
}

type cnfManager struct {
	Provider string              `yaml:"provider"`
	Etcd     source.EtcdSettings `yaml:"etcd"`

	source   Source
	settings *Settings
	rule     *rule.ShardingRule
}

func (m *cnfManager) GetSettings() *Settings {
	return m.settings
}

func (m *cnfManager) GetRule() *rule.ShardingRule {
	return m.rule
}

func (m *cnfManager) GetSource() Source {
	return m.source
}

func (m *cnfManager) Close() error {
	if m.source == nil {
		return nil
	}
	return m.source.Close()
}

func (m *cnfManager) initialize(value cnf.Value) error {
	settings := &Settings{}
	if err := value.Get("rule").Populate(settings); err != nil {
		return err
	}
	r, err := settings.Build()
	if err != nil {
		return err
	}
	m.settings = settings
	m.rule = r
	logger.Infof("sharding rule loaded from %s source, tables: %v", m.source.GetName(), r.Tables())
	return nil
}
