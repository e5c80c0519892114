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
	"github.com/pingcap/errors"
)

type Operator string

const (
	OperatorEqual Operator = "="
	OperatorIn    Operator = "IN"
)

// ConditionValuer yields the values a predicate contributes to routing.
type ConditionValuer interface {
	GetColumn() Column
	ConditionValues(parameters []interface{}) ([]interface{}, error)
}

var _ ConditionValuer = &Condition{}
var _ ConditionValuer = &GeneratedKeyCondition{}

type Condition struct {
	Column      Column
	Operator    Operator
	Expressions []SQLExpression
}

func NewEqualCondition(column Column, expr SQLExpression) *Condition {
	return &Condition{
		Column:      column,
		Operator:    OperatorEqual,
		Expressions: []SQLExpression{expr},
	}
}

func NewInCondition(column Column, exprs ...SQLExpression) *Condition {
	return &Condition{
		Column:      column,
		Operator:    OperatorIn,
		Expressions: exprs,
	}
}

func (c *Condition) GetColumn() Column {
	return c.Column
}

func (c *Condition) ConditionValues(parameters []interface{}) ([]interface{}, error) {
	values := make([]interface{}, 0, len(c.Expressions))
	for _, expr := range c.Expressions {
		v, err := ExpressionValue(expr, parameters)
		if err != nil {
			return nil, errors.Annotatef(err, "condition on column '%s'", c.Column)
		}
		values = append(values, v)
	}
	return values, nil
}

// GeneratedKeyCondition carries a generated key value, either literal or by parameter index.
// A negative Index means the literal Value is used.
type GeneratedKeyCondition struct {
	Column Column
	Index  int
	Value  interface{}
}

func NewGeneratedKeyCondition(column Column, index int, value interface{}) *GeneratedKeyCondition {
	return &GeneratedKeyCondition{
		Column: column,
		Index:  index,
		Value:  value,
	}
}

func (g *GeneratedKeyCondition) GetColumn() Column {
	return g.Column
}

func (g *GeneratedKeyCondition) ConditionValues(parameters []interface{}) ([]interface{}, error) {
	if g.Index < 0 {
		return []interface{}{g.Value}, nil
	}
	if g.Index >= len(parameters) {
		return nil, errors.Annotatef(ErrParameterIndexOutOfRange, "generated key condition on column '%s', index %d", g.Column, g.Index)
	}
	return []interface{}{parameters[g.Index]}, nil
}

// AndCondition is the predicate group of one inserted row.
type AndCondition struct {
	Conditions []ConditionValuer
}

func NewAndCondition(conditions ...ConditionValuer) *AndCondition {
	return &AndCondition{Conditions: conditions}
}

func (a *AndCondition) Add(condition ConditionValuer) {
	a.Conditions = append(a.Conditions, condition)
}

type OrCondition struct {
	AndConditions []*AndCondition
}

func (o *OrCondition) Add(condition *AndCondition) {
	o.AndConditions = append(o.AndConditions, condition)
}

func (o *OrCondition) Len() int {
	return len(o.AndConditions)
}
