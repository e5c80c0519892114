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

package parser

import (
	"math"

	"github.com/endink/go-sharding/statement"
	"github.com/pingcap/errors"
	"github.com/pingcap/parser/ast"
	"github.com/pingcap/parser/opcode"
	"github.com/pingcap/tidb/types"
	driver "github.com/pingcap/tidb/types/parser_driver"
)

var ErrUnsupportedInsert = errors.New("unsupported insert statement")

// ShardingColumnChecker tells which columns route rows of a table.
type ShardingColumnChecker interface {
	IsShardingColumn(column string, table string) bool
}

// ParseInsert parses sql and builds the insert statement consumed by the optimizer.
func ParseInsert(sql string, checker ShardingColumnChecker) (*statement.InsertStatement, error) {
	node, err := ParseSQL(sql)
	if err != nil {
		return nil, errors.Trace(err)
	}
	insert, ok := node.(*ast.InsertStmt)
	if !ok {
		return nil, errors.Annotatef(ErrUnsupportedInsert, "%T is not an insert statement", node)
	}
	return BuildInsertStatement(insert, checker)
}

// BuildInsertStatement converts a parsed insert. Placeholders are numbered row by row across the statement.
func BuildInsertStatement(insert *ast.InsertStmt, checker ShardingColumnChecker) (*statement.InsertStatement, error) {
	if insert.Select != nil {
		return nil, errors.Annotate(ErrUnsupportedInsert, "insert ... select")
	}
	if len(insert.OnDuplicate) > 0 {
		return nil, errors.Annotate(ErrUnsupportedInsert, "on duplicate key update")
	}
	table, err := insertTableName(insert)
	if err != nil {
		return nil, err
	}
	if _, err = numberParamMarkers(insert); err != nil {
		return nil, errors.Trace(err)
	}

	if len(insert.Setlist) > 0 {
		columns := make([]string, len(insert.Setlist))
		row := make([]ast.ExprNode, len(insert.Setlist))
		for i, assignment := range insert.Setlist {
			columns[i] = assignment.Column.Name.L
			row[i] = assignment.Expr
		}
		stmt := statement.NewInsertStatement(table, columns...)
		stmt.InsertValuesType = statement.InsertSetClause
		if err = addRow(stmt, 0, row, checker); err != nil {
			return nil, err
		}
		return stmt, nil
	}

	if len(insert.Columns) == 0 {
		return nil, errors.Annotatef(ErrUnsupportedInsert, "column list is required for table '%s'", table)
	}
	columns := make([]string, len(insert.Columns))
	for i, c := range insert.Columns {
		columns[i] = c.Name.L
	}
	stmt := statement.NewInsertStatement(table, columns...)
	stmt.InsertValuesType = statement.InsertValuesClause
	for i, list := range insert.Lists {
		if len(list) != len(columns) {
			return nil, errors.Annotatef(ErrUnsupportedInsert, "column count doesn't match value count at row %d", i)
		}
		if err = addRow(stmt, i, list, checker); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func insertTableName(insert *ast.InsertStmt) (string, error) {
	if insert.Table == nil || insert.Table.TableRefs == nil {
		return "", errors.Annotate(ErrUnsupportedInsert, "missing table")
	}
	source, ok := insert.Table.TableRefs.Left.(*ast.TableSource)
	if !ok || insert.Table.TableRefs.Right != nil {
		return "", errors.Annotate(ErrUnsupportedInsert, "insert target must be a single table")
	}
	name, ok := source.Source.(*ast.TableName)
	if !ok {
		return "", errors.Annotatef(ErrUnsupportedInsert, "insert target %T", source.Source)
	}
	return name.Name.L, nil
}

func addRow(stmt *statement.InsertStatement, rowIndex int, row []ast.ExprNode, checker ShardingColumnChecker) error {
	values := make([]statement.SQLExpression, len(row))
	paramCount := 0
	condition := statement.NewAndCondition()
	for i, node := range row {
		expr, err := convertExpr(node)
		if err != nil {
			return errors.Annotatef(err, "row %d, column '%s'", rowIndex, stmt.Columns[i].Name)
		}
		if _, ok := expr.(*statement.SQLPlaceholderExpression); ok {
			paramCount++
		}
		values[i] = expr
		column := stmt.Columns[i]
		if checker != nil && checker.IsShardingColumn(column.Name, stmt.Table) {
			condition.Add(statement.NewEqualCondition(column, expr))
		}
	}
	stmt.AddRow(statement.NewInsertValue(paramCount, values...), condition)
	return nil
}

func convertExpr(node ast.ExprNode) (statement.SQLExpression, error) {
	switch n := node.(type) {
	case *driver.ParamMarkerExpr:
		return statement.NewPlaceholderExpression(n.Order), nil
	case *driver.ValueExpr:
		return convertValue(n)
	case *ast.UnaryOperationExpr:
		v, ok := n.V.(*driver.ValueExpr)
		if !ok {
			break
		}
		switch n.Op {
		case opcode.Plus:
			return convertValue(v)
		case opcode.Minus:
			return negateValue(v)
		}
	case *ast.ParenthesesExpr:
		return convertExpr(n.Expr)
	}
	return nil, errors.Annotatef(ErrUnsupportedInsert, "value expression %T", node)
}

func convertValue(v *driver.ValueExpr) (statement.SQLExpression, error) {
	switch v.Kind() {
	case types.KindInt64:
		return statement.NewNumberExpression(v.GetInt64()), nil
	case types.KindUint64:
		return statement.NewNumberExpression(v.GetUint64()), nil
	case types.KindFloat32:
		return statement.NewNumberExpression(v.GetFloat32()), nil
	case types.KindFloat64:
		return statement.NewNumberExpression(v.GetFloat64()), nil
	case types.KindMysqlDecimal:
		f, err := v.GetMysqlDecimal().ToFloat64()
		if err != nil {
			return nil, errors.Trace(err)
		}
		return statement.NewNumberExpression(f), nil
	case types.KindString, types.KindBytes:
		return statement.NewTextExpression(v.GetString()), nil
	case types.KindNull:
		return nil, errors.Annotate(ErrUnsupportedInsert, "null value")
	}
	return nil, errors.Annotatef(ErrUnsupportedInsert, "value kind %d", v.Kind())
}

func negateValue(v *driver.ValueExpr) (statement.SQLExpression, error) {
	switch v.Kind() {
	case types.KindInt64:
		return statement.NewNumberExpression(-v.GetInt64()), nil
	case types.KindUint64:
		u := v.GetUint64()
		if u > math.MaxInt64 {
			return nil, errors.Annotatef(ErrUnsupportedInsert, "-%d overflows bigint", u)
		}
		return statement.NewNumberExpression(-int64(u)), nil
	case types.KindFloat32:
		return statement.NewNumberExpression(-v.GetFloat32()), nil
	case types.KindFloat64:
		return statement.NewNumberExpression(-v.GetFloat64()), nil
	case types.KindMysqlDecimal:
		f, err := v.GetMysqlDecimal().ToFloat64()
		if err != nil {
			return nil, errors.Trace(err)
		}
		return statement.NewNumberExpression(-f), nil
	}
	return nil, errors.Annotatef(ErrUnsupportedInsert, "can not negate value kind %d", v.Kind())
}
