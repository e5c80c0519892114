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
	"github.com/endink/go-sharding/core"
	"github.com/endink/go-sharding/core/provider"
	"github.com/endink/go-sharding/logging"
)

var logger = logging.GetLogger("keygen")

const (
	SnowflakeKeyGenerator = "SNOWFLAKE"
	UUIDKeyGenerator      = "UUID"
)

// KeyGenerator produces primary key values for tables whose key column is not supplied by the client.
// Implementations must be safe for concurrent use.
type KeyGenerator interface {
	provider.Provider
	GenerateKey() (interface{}, error)
}

func init() {
	registerBuiltin(SnowflakeKeyGenerator, newSnowflake)
	registerBuiltin(UUIDKeyGenerator, newUUID)
}

func registerBuiltin(name string, factory func(props core.Properties) (KeyGenerator, error)) {
	err := provider.DefaultRegistry().Register(provider.KeyGenerator, name, func(props core.Properties) (provider.Provider, error) {
		return factory(props)
	})
	if err != nil {
		logger.Errorf("register key generator '%s' fault: %v", name, err)
	}
}

// Create creates the key generator registered with name.
func Create(name string, props core.Properties) (KeyGenerator, error) {
	p, err := provider.DefaultRegistry().Create(provider.KeyGenerator, name, props)
	if err != nil {
		return nil, err
	}
	g, ok := p.(KeyGenerator)
	if !ok {
		return nil, ErrInvalidKeyGenerator
	}
	return g, nil
}
