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
	"io/ioutil"

	cnf "go.uber.org/config"
)

const FileConfigProvider = "file"

// FileSource reads the rule from the boot configuration files themselves.
type FileSource struct {
	value  cnf.Value
	loaded bool
}

func NewFileSource() *FileSource {
	return &FileSource{}
}

func (c *FileSource) GetName() string {
	return FileConfigProvider
}

func (c *FileSource) Load(boot cnf.Provider) (cnf.Value, error) {
	c.value = boot.Get(cnf.Root)
	c.loaded = true
	return c.value, nil
}

func (c *FileSource) IsLoaded() bool {
	return c.loaded
}

// Close do nothing
func (c *FileSource) Close() error {
	return nil
}

// Read read file data
func (c *FileSource) Read(file string) ([]byte, error) {
	return ioutil.ReadFile(file)
}
