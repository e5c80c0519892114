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
	"fmt"
	"strings"

	"github.com/endink/go-sharding/config/source"
	"github.com/endink/go-sharding/core"
	"go.uber.org/config"
)

// NewManager searches the default locations for configuration files.
func NewManager() (Manager, error) {
	var sources []config.YAMLOption

	files := DefaultConfigFileLocations()

	var sb = core.NewStringBuilder()
	sb.WriteLine()
	sb.WriteLine("Search configuration locations:")
	for _, f := range files {
		if core.FileExists(f) {
			sources = append(sources, config.File(f))
			sb.WriteLine("[Found]:", f)
		} else {
			sb.WriteLine("[Not Found]:", f)
		}
	}
	logger.Debug(sb.String())

	if len(sources) == 0 {
		return nil, fmt.Errorf("no configuration file was found")
	}
	sources = append(sources, config.Permissive())
	yaml, err := config.NewYAML(sources...)
	if err != nil {
		logger.Warn("Build boot config file fault.", core.LineSeparator, err)
		return nil, err
	}
	return NewManagerFromYAML(yaml)
}

func NewManagerFromYAML(yaml *config.YAML) (Manager, error) {
	return newManager(yaml, nil)
}

// NewManagerWithSource loads the rule from s instead of the source named by the boot configuration.
func NewManagerWithSource(yaml *config.YAML, s Source) (Manager, error) {
	return newManager(yaml, s)
}

func newManager(yaml *config.YAML, s Source) (Manager, error) {
	bootCnf := &cnfManager{
		Provider: FileProvider,
	}
	err := yaml.Get("config").Populate(bootCnf)
	if err != nil {
		return nil, err
	}
	bootCnf.Provider = core.TrimAndLower(core.IfBlankAndTrim(bootCnf.Provider, FileProvider))

	if s == nil {
		switch bootCnf.Provider {
		case FileProvider:
			s = source.NewFileSource()
		case EtcdProvider:
			if s, err = source.NewEtcdSource(bootCnf.Etcd); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("config source provider named '%s' was not found", bootCnf.Provider)
		}
	}
	bootCnf.source = s

	v, err := s.Load(yaml)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	if err = bootCnf.initialize(v); err != nil {
		_ = s.Close()
		return nil, err
	}
	return bootCnf, nil
}

func NewManagerFromString(ymlContent string) (Manager, error) {
	r := strings.NewReader(ymlContent)
	opt := config.Source(r)
	permissive := config.Permissive()
	yml, err := config.NewYAML(opt, permissive)
	if err != nil {
		return nil, err
	}

	return NewManagerFromYAML(yml)
}

func NewManagerFromFile(file string) (Manager, error) {
	if !core.FileExists(file) {
		return nil, fmt.Errorf("configuration file '%s' was not found", file)
	}
	yml, err := config.NewYAML(config.File(file), config.Permissive())
	if err != nil {
		return nil, err
	}
	return NewManagerFromYAML(yml)
}
