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

package provider

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/endink/go-sharding/core"
)

type Type int

const (
	KeyGenerator Type = iota
	Encryptor
)

func (t Type) String() string {
	switch t {
	case KeyGenerator:
		return "key generator"
	case Encryptor:
		return "encryptor"
	}
	return fmt.Sprintf("provider(%d)", int(t))
}

type Provider interface {
	GetName() string
}

// Factory creates a new provider instance from its configured properties.
type Factory func(props core.Properties) (Provider, error)

var onceReg sync.Once
var instance Registry

type Registry interface {
	Register(tp Type, name string, factory Factory) error
	TryLoad(tp Type, name string) (Factory, bool)
	Create(tp Type, name string, props core.Properties) (Provider, error)
	Names(tp Type) []string
}

func DefaultRegistry() Registry {
	onceReg.Do(func() {
		instance = NewRegistry()
	})
	return instance
}

func NewRegistry() Registry {
	return &registry{}
}

type registry struct {
	mp sync.Map
}

func getFullName(tp Type, name string) (string, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	if n == "" {
		return "", errors.New("provider name can not be empty")
	}
	return fmt.Sprintf("%d:%s", int(tp), n), nil
}

func (r *registry) Register(tp Type, name string, factory Factory) error {
	if factory == nil {
		return errors.New("provider factory can not be null")
	}
	fullName, err := getFullName(tp, name)
	if err != nil {
		return err
	}
	r.mp.Store(fullName, factory)
	return nil
}

func (r *registry) TryLoad(tp Type, name string) (Factory, bool) {
	fullName, err := getFullName(tp, name)
	if err != nil {
		return nil, false
	}
	v, ok := r.mp.Load(fullName)
	if !ok {
		return nil, false
	}
	f, ok := v.(Factory)
	return f, ok
}

func (r *registry) Create(tp Type, name string, props core.Properties) (Provider, error) {
	factory, ok := r.TryLoad(tp, name)
	if !ok {
		return nil, fmt.Errorf("%s provider named '%s' was not found", tp, name)
	}
	if props == nil {
		props = core.EmptyProperties
	}
	return factory(props)
}

func (r *registry) Names(tp Type) []string {
	prefix := fmt.Sprint(int(tp), ":")
	var names []string
	r.mp.Range(func(key, _ interface{}) bool {
		k := key.(string)
		if strings.HasPrefix(k, prefix) {
			names = append(names, strings.TrimPrefix(k, prefix))
		}
		return true
	})
	sort.Strings(names)
	return names
}
