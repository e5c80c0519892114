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

package telemetry

import (
	"errors"
	"strings"
	"unicode"

	"github.com/prometheus/client_golang/prometheus"
)

const Namespace = "go_sharding"

var (
	optimizedStatements = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: BuildMetricName(Namespace, "optimize", "StatementsTotal"),
			Help: "Counter of optimized insert statements.",
		},
		[]string{"table"},
	)

	generatedKeys = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: BuildMetricName(Namespace, "optimize", "GeneratedKeysTotal"),
			Help: "Counter of generated key values injected into insert rows.",
		},
		[]string{"table"},
	)

	assistedValues = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: BuildMetricName(Namespace, "optimize", "AssistedValuesTotal"),
			Help: "Counter of assisted query column values injected into insert rows.",
		},
		[]string{"table"},
	)
)

func init() {
	prometheus.MustRegister(optimizedStatements)
	prometheus.MustRegister(generatedKeys)
	prometheus.MustRegister(assistedValues)
}

// OptimizedStatementInc add 1
func OptimizedStatementInc(table string) {
	optimizedStatements.WithLabelValues(table).Inc()
}

func GeneratedKeysAdd(table string, count int) {
	if count > 0 {
		generatedKeys.WithLabelValues(table).Add(float64(count))
	}
}

func AssistedValuesAdd(table string, count int) {
	if count > 0 {
		assistedValues.WithLabelValues(table).Add(float64(count))
	}
}

// BuildMetricName joins the parts with '_', converting camel case to snake case and dropping punctuation.
func BuildMetricName(parts ...string) string {
	if len(parts) == 0 {
		panic(errors.New("name for 'BuildMetricName' can not be nil or empty"))
	}

	names := make([]string, 0, len(parts))
	sb := &strings.Builder{}
	for _, s := range parts {
		sb.Reset()
		prevLower := false
		separate := false
		for _, r := range s {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				separate = true
				prevLower = false
				continue
			}
			if unicode.IsUpper(r) {
				if prevLower {
					separate = true
				}
				r = unicode.ToLower(r)
				prevLower = false
			} else {
				prevLower = true
			}
			if separate && sb.Len() > 0 {
				sb.WriteByte('_')
			}
			separate = false
			sb.WriteRune(r)
		}
		if sb.Len() > 0 {
			names = append(names, sb.String())
		}
	}
	return strings.Join(names, "_")
}
