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

package statement

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pingcap/errors"
)

var (
	ErrUnsupportedValue         = errors.New("unsupported value, only string and number can be embedded as literal")
	ErrParameterIndexOutOfRange = errors.New("parameter index out of range")
)

var _ SQLExpression = &SQLNumberExpression{}
var _ SQLExpression = &SQLTextExpression{}
var _ SQLExpression = &SQLPlaceholderExpression{}

// SQLExpression is a column value as it appears in an insert statement.
// The set of implementations is closed: number literal, text literal and placeholder.
type SQLExpression interface {
	fmt.Stringer
	sqlExpression()
}

type SQLNumberExpression struct {
	Number interface{}
}

func NewNumberExpression(number interface{}) *SQLNumberExpression {
	return &SQLNumberExpression{Number: number}
}

func (e *SQLNumberExpression) sqlExpression() {}

func (e *SQLNumberExpression) String() string {
	return fmt.Sprint(e.Number)
}

type SQLTextExpression struct {
	Text string
}

func NewTextExpression(text string) *SQLTextExpression {
	return &SQLTextExpression{Text: text}
}

func (e *SQLTextExpression) sqlExpression() {}

func (e *SQLTextExpression) String() string {
	return "'" + strings.ReplaceAll(e.Text, "'", "''") + "'"
}

// SQLPlaceholderExpression references the bind parameter at Index of the flattened parameter list.
type SQLPlaceholderExpression struct {
	Index int
}

func NewPlaceholderExpression(index int) *SQLPlaceholderExpression {
	return &SQLPlaceholderExpression{Index: index}
}

func (e *SQLPlaceholderExpression) sqlExpression() {}

func (e *SQLPlaceholderExpression) String() string {
	return "?"
}

// NewLiteralExpression embeds value as a text or number literal.
func NewLiteralExpression(value interface{}) (SQLExpression, error) {
	if s, ok := value.(string); ok {
		return NewTextExpression(s), nil
	}
	if IsNumber(value) {
		return NewNumberExpression(value), nil
	}
	return nil, errors.Annotatef(ErrUnsupportedValue, "value '%v' (%T)", value, value)
}

// ExpressionValue returns the value carried by expr, reading placeholders from parameters.
func ExpressionValue(expr SQLExpression, parameters []interface{}) (interface{}, error) {
	switch e := expr.(type) {
	case *SQLNumberExpression:
		return e.Number, nil
	case *SQLTextExpression:
		return e.Text, nil
	case *SQLPlaceholderExpression:
		if e.Index < 0 || e.Index >= len(parameters) {
			return nil, errors.Annotatef(ErrParameterIndexOutOfRange, "index %d, parameters count %d", e.Index, len(parameters))
		}
		return parameters[e.Index], nil
	}
	return nil, errors.Errorf("unknown sql expression type %T", expr)
}

func IsNumber(value interface{}) bool {
	if value == nil {
		return false
	}
	switch reflect.TypeOf(value).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
