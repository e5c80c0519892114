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

package script

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/d5/tengo/v2"
)

const resultVar = "_r"

type CompiledScript interface {
	// Run executes the script and returns its result as a list of strings,
	// a scalar result gives a list of one item.
	Run(vars map[string]interface{}) ([]string, error)
	Raw() string
}

var rangeFunction = &tengo.UserFunction{
	Name:  "range",
	Value: rangeCall,
}

// Compile compiles script, every name in varNames can be assigned when the script runs.
func Compile(script string, varNames ...string) (CompiledScript, error) {
	s := tengo.NewScript([]byte(fmt.Sprintf("%s:=%s", resultVar, script)))
	if err := s.Add("range", rangeFunction); err != nil {
		return nil, err
	}
	for _, name := range varNames {
		if err := s.Add(name, 0); err != nil {
			return nil, fmt.Errorf("add variable '%s' to compile fault, %s", name, err)
		}
	}
	c, err := s.Compile()
	if err != nil {
		return nil, err
	}
	names := make(map[string]struct{}, len(varNames))
	for _, n := range varNames {
		names[n] = struct{}{}
	}
	return &tengoScript{
		raw:      script,
		compiled: c,
		names:    names,
	}, nil
}

type tengoScript struct {
	raw      string
	compiled *tengo.Compiled
	names    map[string]struct{}
}

func (script *tengoScript) Raw() string {
	return script.raw
}

func (script *tengoScript) Run(vars map[string]interface{}) ([]string, error) {
	c := script.compiled.Clone()
	for name, value := range vars {
		if _, declared := script.names[name]; !declared {
			continue
		}
		if err := c.Set(name, normalizeValue(value)); err != nil {
			return nil, fmt.Errorf("set variable '%s' fault, %s", name, err)
		}
	}
	if err := c.Run(); err != nil {
		return nil, err
	}
	v := c.Get(resultVar)
	switch r := v.Value().(type) {
	case []interface{}:
		list := make([]string, len(r))
		for i, item := range r {
			list[i] = fmt.Sprint(item)
		}
		return list, nil
	case string, int64, float64, bool:
		return []string{fmt.Sprint(r)}, nil
	}
	return nil, fmt.Errorf("script return invalid type '%s', array or primitive value is expected, script: %s", v.ValueType(), script.raw)
}

// tengo only converts the widest go numeric types.
func normalizeValue(value interface{}) interface{} {
	if value == nil {
		return nil
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	}
	return value
}

func rangeCall(args ...tengo.Object) (tengo.Object, error) {
	if len(args) != 2 {
		return nil, tengo.ErrWrongNumArguments
	}

	begin, ok := tengo.ToInt64(args[0])
	if !ok {
		return nil, tengo.ErrInvalidArgumentType{
			Name:     "begin",
			Expected: "int",
			Found:    args[0].TypeName(),
		}
	}

	end, ok := tengo.ToInt64(args[1])
	if !ok {
		return nil, tengo.ErrInvalidArgumentType{
			Name:     "end",
			Expected: "int",
			Found:    args[1].TypeName(),
		}
	}

	if begin > end {
		return nil, errors.New("the begin parameter must be less than or equal to the end argument for using 'range' function in inline expression")
	}

	array := make([]tengo.Object, 0, end-begin+1)
	for i := begin; i <= end; i++ {
		array = append(array, &tengo.Int{Value: i})
	}
	return &tengo.ImmutableArray{Value: array}, nil
}
