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

package optimize

import (
	"time"

	"github.com/endink/go-sharding/core"
	"github.com/endink/go-sharding/keygen"
	"github.com/endink/go-sharding/logging"
	"github.com/endink/go-sharding/statement"
	"github.com/endink/go-sharding/telemetry"
	"github.com/pingcap/errors"
)

var logger = logging.GetLogger("optimize")

var mixedBatchLogger = logging.NewThrottledLogger("MixedBatch", logger, 5*time.Second)

var (
	ErrRowCountMismatch         = errors.New("row condition groups do not match insert values")
	ErrInsufficientParameters   = errors.New("parameters are fewer than the statement requires")
	ErrGeneratedKeyExhausted    = errors.New("generated key source exhausted")
	ErrInconsistentColumnValues = errors.New("insert row values do not match column names")
)

// Rule is the routing and encryption configuration the engine consults.
type Rule interface {
	FindGenerateKeyColumnName(table string) (string, bool)
	IsShardingColumn(column string, table string) bool
	GetAssistedQueryColumnCount(table string) (int, bool)
	HasQueryAssistedEncryptor(table string) bool
	GetAssistedQueryColumn(table string, column string) (string, bool)
}

// GeneratedKeySource supplies the key values of one statement, one value per row.
type GeneratedKeySource interface {
	Iterator() keygen.Iterator
}

// InsertOptimizeEngine turns a parsed insert statement into per row sharding conditions and column values,
// injecting generated keys and assisted query columns on the way.
// An engine is used for a single statement and is not safe for concurrent use.
type InsertOptimizeEngine struct {
	rule       Rule
	stmt       *statement.InsertStatement
	parameters []interface{}
	keys       GeneratedKeySource
}

func NewInsertOptimizeEngine(rule Rule, stmt *statement.InsertStatement, parameters []interface{}, keys GeneratedKeySource) *InsertOptimizeEngine {
	return &InsertOptimizeEngine{
		rule:       rule,
		stmt:       stmt,
		parameters: parameters,
		keys:       keys,
	}
}

type rowPlan struct {
	keyColumn           string
	needsGeneratedKey   bool
	keyIsShardingColumn bool
	needsAssistedColumn bool
	increment           int
	usePlaceholder      bool
}

func (e *InsertOptimizeEngine) plan() *rowPlan {
	table := e.stmt.Table
	p := &rowPlan{usePlaceholder: len(e.parameters) > 0}

	if column, ok := e.rule.FindGenerateKeyColumnName(table); ok && !e.stmt.HasColumn(column) {
		p.keyColumn = column
		p.needsGeneratedKey = true
		p.keyIsShardingColumn = e.rule.IsShardingColumn(column, table)
		p.increment++
	}

	if count, ok := e.rule.GetAssistedQueryColumnCount(table); ok && count > 0 && e.rule.HasQueryAssistedEncryptor(table) {
		p.needsAssistedColumn = true
		p.increment += count
	}
	return p
}

func (e *InsertOptimizeEngine) checkPreconditions() error {
	rows := len(e.stmt.InsertValues)
	groups := 0
	if e.stmt.RouteConditions != nil {
		groups = e.stmt.RouteConditions.Len()
	}
	if groups != rows {
		return errors.Annotatef(ErrRowCountMismatch, "table '%s', %d condition groups, %d rows", e.stmt.Table, groups, rows)
	}
	if required := e.stmt.ParametersCount(); len(e.parameters) < required {
		return errors.Annotatef(ErrInsufficientParameters, "table '%s', required %d, given %d", e.stmt.Table, required, len(e.parameters))
	}
	return nil
}

// Optimize runs a single pass over the rows. It is all or nothing: on error no result is returned.
func (e *InsertOptimizeEngine) Optimize() (*OptimizeResult, error) {
	if err := e.checkPreconditions(); err != nil {
		return nil, err
	}

	stmt := e.stmt
	table := stmt.Table
	p := e.plan()
	logger.Debugf("optimize insert into '%s': needsGeneratedKey=%t, needsAssistedColumn=%t, increment=%d, placeholder=%t",
		table, p.needsGeneratedKey, p.needsAssistedColumn, p.increment, p.usePlaceholder)

	var keys keygen.Iterator
	if p.needsGeneratedKey {
		if e.keys == nil {
			return nil, errors.Annotatef(ErrGeneratedKeyExhausted, "no generated key source for column '%s.%s'", table, p.keyColumn)
		}
		keys = e.keys.Iterator()
	}

	rowCount := len(stmt.InsertValues)
	columnValues := NewInsertColumnValues(stmt.InsertValuesType, stmt.InsertColumnNames()...)
	columnValues.parameters = make([]interface{}, len(e.parameters), len(e.parameters)+rowCount*p.increment)
	copy(columnValues.parameters, e.parameters)

	conditions := make([]*core.ShardingCondition, 0, rowCount)
	cursor := 0
	generated, assisted := 0, 0

	for i, insertValue := range stmt.InsertValues {
		rawCount := insertValue.ParametersCount
		row := columnValues.addRow(insertValue.ColumnValues, e.parameters[cursor:cursor+rawCount], p.increment)
		cursor += rawCount

		if p.usePlaceholder && rawCount == 0 && p.increment > 0 {
			mixedBatchLogger.Warnf("insert into '%s' row %d has no parameters, injected values are bound as parameters", table, i)
		}

		condition, err := e.shardingCondition(stmt.RouteConditions.AndConditions[i])
		if err != nil {
			return nil, errors.Annotatef(err, "row %d", i)
		}

		if p.needsGeneratedKey {
			key, err := keys.Next()
			if err != nil {
				if errors.Cause(err) == keygen.ErrKeysExhausted {
					return nil, errors.Annotatef(ErrGeneratedKeyExhausted, "row %d of %d", i, rowCount)
				}
				return nil, errors.Trace(err)
			}
			columnValues.AddColumnName(p.keyColumn)
			if err = fillValue(columnValues, row, key, p.usePlaceholder); err != nil {
				return nil, errors.Annotatef(err, "generated key of row %d", i)
			}
			if p.keyIsShardingColumn {
				keyCondition := statement.NewGeneratedKeyCondition(statement.NewColumn(p.keyColumn, table), -1, key)
				if err = e.addShardingValue(condition, keyCondition); err != nil {
					return nil, errors.Annotatef(err, "row %d", i)
				}
			}
			stmt.SetContainGeneratedKey(true)
			generated++
		}

		if p.needsAssistedColumn {
			n, err := e.fillAssistedColumns(columnValues, row, p.usePlaceholder)
			if err != nil {
				return nil, errors.Annotatef(err, "row %d", i)
			}
			assisted += n
		}
		conditions = append(conditions, condition)
	}

	columnCount := len(columnValues.ColumnNames())
	for i, row := range columnValues.ColumnValues() {
		if len(row.Values()) != columnCount {
			return nil, errors.Annotatef(ErrInconsistentColumnValues, "row %d has %d values, %d columns", i, len(row.Values()), columnCount)
		}
	}

	telemetry.OptimizedStatementInc(table)
	telemetry.GeneratedKeysAdd(table, generated)
	telemetry.AssistedValuesAdd(table, assisted)

	return NewOptimizeResult(core.NewShardingConditions(conditions), columnValues), nil
}

func (e *InsertOptimizeEngine) shardingCondition(group *statement.AndCondition) (*core.ShardingCondition, error) {
	condition := core.NewShardingCondition()
	if group == nil {
		return condition, nil
	}
	for _, c := range group.Conditions {
		if err := e.addShardingValue(condition, c); err != nil {
			return nil, err
		}
	}
	return condition, nil
}

func (e *InsertOptimizeEngine) addShardingValue(condition *core.ShardingCondition, c statement.ConditionValuer) error {
	values, err := c.ConditionValues(e.parameters)
	if err != nil {
		return err
	}
	column := c.GetColumn()
	table := column.TableName
	if table == "" {
		table = e.stmt.Table
	}
	condition.Add(core.NewListShardingValue(table, column.Name, values...))
	return nil
}

// fillAssistedColumns copies the value of every encrypted column into its assisted query column.
// Names are read from a snapshot so columns appended here are not revisited in the same row.
func (e *InsertOptimizeEngine) fillAssistedColumns(columnValues *InsertColumnValues, row *InsertColumnValue, usePlaceholder bool) (int, error) {
	table := e.stmt.Table
	filled := 0
	for _, name := range columnValues.ColumnNames() {
		assistedColumn, ok := e.rule.GetAssistedQueryColumn(table, name)
		if !ok || e.stmt.HasColumn(assistedColumn) {
			continue
		}
		value, err := row.ColumnValue(name)
		if err != nil {
			return filled, err
		}
		columnValues.AddColumnName(assistedColumn)
		if err = fillValue(columnValues, row, value, usePlaceholder); err != nil {
			return filled, errors.Annotatef(err, "assisted query column '%s'", assistedColumn)
		}
		filled++
	}
	return filled, nil
}

// fillValue appends value to row, either as a placeholder bound to the end of the accumulated parameters
// or as an embedded literal.
func fillValue(columnValues *InsertColumnValues, row *InsertColumnValue, value interface{}, usePlaceholder bool) error {
	if usePlaceholder {
		index := columnValues.appendParameter(value)
		row.AddColumnValue(statement.NewPlaceholderExpression(index))
		row.AddColumnParameter(value)
		return nil
	}
	expr, err := statement.NewLiteralExpression(value)
	if err != nil {
		return err
	}
	row.AddColumnValue(expr)
	return nil
}
