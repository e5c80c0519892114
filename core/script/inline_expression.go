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
	"strings"

	"github.com/endink/go-sharding/core"
)

var _ InlineExpression = &inlineExpr{}

// InlineExpression is a list of comma separated groups, every group joins literal text
// and ${script} segments, for example: ds${range(0,1)}.t_order${[0,1]} or t_order${order_id % 2}.
type InlineExpression interface {
	// Flat expands every group into the cartesian product of its segment values.
	Flat() ([]string, error)
	// Evaluate computes the single name produced by the expression for vars.
	Evaluate(vars map[string]interface{}) (string, error)
	RawExpression() string
}

type inlineSegment struct {
	text   string
	script CompiledScript
}

type inlineExpr struct {
	expression string
	groups     [][]*inlineSegment
}

func NewInlineExpression(expression string, varNames ...string) (InlineExpression, error) {
	groups, err := splitSegments(expression, varNames)
	if err != nil {
		return nil, err
	}
	return &inlineExpr{
		expression: expression,
		groups:     groups,
	}, nil
}

func (i *inlineExpr) RawExpression() string {
	return i.expression
}

func (i *inlineExpr) Flat() ([]string, error) {
	return i.expand(nil)
}

func (i *inlineExpr) Evaluate(vars map[string]interface{}) (string, error) {
	list, err := i.expand(vars)
	if err != nil {
		return "", err
	}
	if len(list) != 1 {
		return "", i.wrapExecuteError(fmt.Errorf("expression must produce exactly one name, but got %d", len(list)), vars)
	}
	return list[0], nil
}

func (i *inlineExpr) expand(vars map[string]interface{}) ([]string, error) {
	seen := make(map[string]struct{})
	list := make([]string, 0)

	for _, group := range i.groups {
		current := []string{""}
		for _, seg := range group {
			values := []string{seg.text}
			if seg.script != nil {
				l, err := seg.script.Run(vars)
				if err != nil {
					return nil, i.wrapExecuteError(err, vars)
				}
				values = l
			}
			current = product(current, values)
		}
		for _, c := range current {
			if c == "" {
				continue
			}
			if _, ok := seen[c]; !ok {
				seen[c] = core.Nothing
				list = append(list, c)
			}
		}
	}
	return list, nil
}

func product(prefixes []string, suffixes []string) []string {
	r := make([]string, 0, len(prefixes)*len(suffixes))
	for _, p := range prefixes {
		for _, s := range suffixes {
			r = append(r, p+s)
		}
	}
	return r
}

func (i *inlineExpr) wrapExecuteError(e error, vars map[string]interface{}) error {
	sb := core.NewStringBuilder()
	sb.WriteLine("inline sharding fault.")
	sb.WriteLine("Script: ", i.expression)
	sb.Write("Variables: ")
	if len(vars) > 0 {
		items := make([]interface{}, 0, len(vars))
		for k, v := range vars {
			items = append(items, fmt.Sprintf("%s=%v", k, v))
		}
		sb.WriteJoin(", ", items...)
	} else {
		sb.Write("<none>")
	}
	sb.WriteLine()
	sb.WriteLine("Error:")
	sb.Write(e.Error())

	return errors.New(sb.String())
}

func splitSegments(exp string, varNames []string) ([][]*inlineSegment, error) {
	syntaxError := func(message string, index int) error {
		var sb = core.NewStringBuilder()
		sb.WriteLine("inline expression syntax error")
		sb.WriteLine(message)
		sb.WriteLineF("expression: %s", exp)
		if index >= 0 {
			sb.WriteLineF("char index: %d", index)
		}
		return errors.New(sb.String())
	}

	var (
		groups   [][]*inlineSegment
		current  []*inlineSegment
		text     strings.Builder
		script   strings.Builder
		inScript bool
		depth    int
	)

	flushText := func() {
		t := text.String()
		if len(current) == 0 {
			t = strings.TrimLeft(t, " \t")
		}
		if t != "" {
			current = append(current, &inlineSegment{text: t})
		}
		text.Reset()
	}

	flushGroup := func() {
		flushText()
		if n := len(current); n > 0 && current[n-1].script == nil {
			current[n-1].text = strings.TrimRight(current[n-1].text, " \t")
		}
		if len(current) > 0 {
			groups = append(groups, current)
		}
		current = nil
	}

	for i := 0; i < len(exp); i++ {
		c := exp[i]
		if inScript {
			switch c {
			case '{':
				depth++
			case '}':
				if depth == 0 {
					raw := strings.TrimSpace(script.String())
					if raw == "" {
						return nil, syntaxError("script between '${' and '}' is empty", i)
					}
					compiled, err := Compile(raw, varNames...)
					if err != nil {
						return nil, syntaxError(err.Error(), i)
					}
					current = append(current, &inlineSegment{script: compiled})
					script.Reset()
					inScript = false
					continue
				}
				depth--
			}
			script.WriteByte(c)
			continue
		}

		switch c {
		case '$':
			if i == len(exp)-1 || exp[i+1] != '{' {
				return nil, syntaxError("'{' symbol is missing after the symbol '$'", i)
			}
			flushText()
			inScript = true
			i++
		case ',':
			flushGroup()
		default:
			text.WriteByte(c)
		}
	}

	if inScript {
		return nil, syntaxError("symbol '}' used to end the script are missing", -1)
	}
	flushGroup()

	if len(groups) == 0 {
		return nil, syntaxError("expression is empty", -1)
	}
	return groups, nil
}
