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

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/endink/go-sharding/config"
	"github.com/endink/go-sharding/core"
	"github.com/endink/go-sharding/keygen"
	"github.com/endink/go-sharding/logging"
	"github.com/endink/go-sharding/optimize"
	"github.com/endink/go-sharding/parser"
	"go.uber.org/zap/zapcore"
)

func main() {
	var configFile = flag.String("config", "", "go-sharding config file, searches the default locations when empty")
	var sql = flag.String("sql", "", "insert statement to optimize")
	var params = flag.String("params", "", "comma separated bind parameters")
	var debug = flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if *debug {
		logging.SetLevel("optimize", zapcore.DebugLevel)
	}
	if strings.TrimSpace(*sql) == "" {
		flag.Usage()
		os.Exit(2)
	}

	var mgr config.Manager
	var err error
	if *configFile == "" {
		mgr, err = config.NewManager()
	} else {
		mgr, err = config.NewManagerFromFile(*configFile)
	}
	if err != nil {
		logging.DefaultLogger.Fatalf("load config failed, error: %v", err)
		return
	}
	defer func() {
		_ = mgr.Close()
	}()

	if err = explainInsert(os.Stdout, mgr, *sql, parseParameters(*params)); err != nil {
		logging.DefaultLogger.Fatalf("optimize insert failed, error: %v", err)
	}
}

// parseParameters reads integers and decimals as numbers, everything else as text.
func parseParameters(s string) []interface{} {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	values := make([]interface{}, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if n, err := strconv.ParseInt(p, 10, 64); err == nil {
			values[i] = n
		} else if f, err := strconv.ParseFloat(p, 64); err == nil {
			values[i] = f
		} else {
			values[i] = p
		}
	}
	return values
}

// explainInsert prints the data node, values and parameters of every row.
func explainInsert(w io.Writer, mgr config.Manager, sql string, params []interface{}) error {
	rule := mgr.GetRule()
	stmt, err := parser.ParseInsert(sql, rule)
	if err != nil {
		return err
	}

	var keys optimize.GeneratedKeySource
	generatedKey, ok, err := keygen.NewGeneratedKey(rule, stmt, params)
	if err != nil {
		return err
	}
	if ok && generatedKey.IsGenerated() {
		keys = generatedKey
	}

	result, err := optimize.NewInsertOptimizeEngine(rule, stmt, params, keys).Optimize()
	if err != nil {
		return err
	}

	table, sharding := rule.GetShardingTable(stmt.Table)
	values := result.InsertColumnValues()
	sb := core.NewStringBuilder()
	sb.WriteLine("columns: ", strings.Join(values.ColumnNames(), ", "))
	for i, row := range values.ColumnValues() {
		node := stmt.Table
		if sharding {
			condition := result.ShardingConditions().Get(i)
			db, t, err := table.DataNode(condition.ScalarValues(stmt.Table))
			if err != nil {
				return err
			}
			node = db + "." + t
		}
		sb.WriteLineF("%s: %s %v", node, row, row.Parameters())
	}
	if len(params) > 0 {
		sb.WriteLineF("parameters: %v", values.Parameters())
	}
	_, err = fmt.Fprint(w, sb.String())
	return err
}
