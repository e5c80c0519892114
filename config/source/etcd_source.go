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

package source

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/coreos/etcd/client"
	"github.com/endink/go-sharding/logging"
	"github.com/pingcap/errors"
	cnf "go.uber.org/config"
)

const (
	EtcdConfigProvider = "etcd"
	DefaultEtcdKey     = "/go-sharding/rule"
)

var logger = logging.GetLogger("config")

// ErrClosedEtcdClient means etcd client closed
var ErrClosedEtcdClient = errors.New("use of closed etcd client")

var ErrEtcdKeyNotFound = errors.New("etcd key not found")

type EtcdSettings struct {
	Endpoints string        `yaml:"endpoints"`
	Key       string        `yaml:"key"`
	Timeout   time.Duration `yaml:"timeout"`
	Username  string        `yaml:"username"`
	Password  string        `yaml:"password"`
}

// EtcdSource reads the rule document stored under a single etcd key.
type EtcdSource struct {
	sync.Mutex
	kapi     client.KeysAPI
	settings EtcdSettings
	closed   bool
}

func NewEtcdSource(settings EtcdSettings) (*EtcdSource, error) {
	endpoints := strings.Split(settings.Endpoints, ",")
	for i, s := range endpoints {
		s = strings.TrimSpace(s)
		if s != "" && !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
			s = "http://" + s
		}
		endpoints[i] = s
	}
	c, err := client.New(client.Config{
		Endpoints:               endpoints,
		Transport:               client.DefaultTransport,
		Username:                settings.Username,
		Password:                settings.Password,
		HeaderTimeoutPerRequest: time.Second * 10,
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	return NewEtcdSourceWithKeysAPI(client.NewKeysAPI(c), settings), nil
}

func NewEtcdSourceWithKeysAPI(kapi client.KeysAPI, settings EtcdSettings) *EtcdSource {
	if strings.TrimSpace(settings.Key) == "" {
		settings.Key = DefaultEtcdKey
	}
	return &EtcdSource{
		kapi:     kapi,
		settings: settings,
	}
}

func (c *EtcdSource) GetName() string {
	return EtcdConfigProvider
}

// Load parses the YAML document stored at the configured key.
func (c *EtcdSource) Load(cnf.Provider) (cnf.Value, error) {
	data, err := c.Read(c.settings.Key)
	if err != nil {
		return cnf.Value{}, err
	}
	if data == nil {
		return cnf.Value{}, errors.Annotatef(ErrEtcdKeyNotFound, "key '%s'", c.settings.Key)
	}
	yaml, err := cnf.NewYAML(cnf.Source(strings.NewReader(string(data))), cnf.Permissive())
	if err != nil {
		return cnf.Value{}, errors.Annotatef(err, "bad yaml format at etcd key '%s'", c.settings.Key)
	}
	return yaml.Get(cnf.Root), nil
}

// Close close etcd client
func (c *EtcdSource) Close() error {
	c.Lock()
	defer c.Unlock()
	c.closed = true
	return nil
}

func (c *EtcdSource) contextWithTimeout() (context.Context, context.CancelFunc) {
	if c.settings.Timeout == time.Duration(0) {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), c.settings.Timeout)
}

func isErrNoNode(err error) bool {
	if err != nil {
		if e, ok := err.(client.Error); ok {
			return e.Code == client.ErrorCodeKeyNotFound
		}
	}
	return false
}

// Update update path with data
func (c *EtcdSource) Update(path string, data []byte) error {
	c.Lock()
	defer c.Unlock()
	if c.closed {
		return ErrClosedEtcdClient
	}
	cntx, canceller := c.contextWithTimeout()
	defer canceller()
	logger.Debugf("etcd update node %s", path)
	_, err := c.kapi.Set(cntx, path, string(data), &client.SetOptions{PrevExist: client.PrevIgnore})
	if err != nil {
		logger.Debugf("etcd update node %s failed: %s", path, err)
		return errors.Trace(err)
	}
	return nil
}

// Read read path data, a missing node reads as nil
func (c *EtcdSource) Read(path string) ([]byte, error) {
	c.Lock()
	defer c.Unlock()
	if c.closed {
		return nil, ErrClosedEtcdClient
	}
	cntx, canceller := c.contextWithTimeout()
	defer canceller()
	logger.Debugf("etcd read node %s", path)
	r, err := c.kapi.Get(cntx, path, nil)
	if err != nil && !isErrNoNode(err) {
		return nil, errors.Trace(err)
	} else if r == nil || r.Node == nil || r.Node.Dir {
		return nil, nil
	} else {
		return []byte(r.Node.Value), nil
	}
}
