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

import "github.com/pingcap/parser/ast"

var _ ast.Visitor = &walkVisitor{}

// Visit is called for every node, returning false skips the children of the node.
type Visit func(node ast.Node) (kontinue bool, err error)

// Walk visits the nodes depth first and stops at the first error.
func Walk(visit Visit, nodes ...ast.Node) error {
	v := &walkVisitor{visit: visit}
	for _, node := range nodes {
		if node == nil {
			continue
		}
		v.err = nil
		node.Accept(v)
		if v.err != nil {
			return v.err
		}
	}
	return nil
}

type walkVisitor struct {
	err   error
	visit Visit
}

func (w *walkVisitor) Enter(n ast.Node) (ast.Node, bool) {
	if w.err != nil {
		return n, true
	}
	kontinue, err := w.visit(n)
	if err != nil {
		w.err = err
		return n, true
	}
	return n, !kontinue
}

func (w *walkVisitor) Leave(n ast.Node) (ast.Node, bool) {
	return n, w.err == nil
}
