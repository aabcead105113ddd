/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package expr

import (
	"fmt"

	"github.com/rulego/dataquery/types"
)

// 表达式节点类型
const (
	TypeNumber   = "number"   // 数字常量
	TypeField    = "field"    // 字段引用
	TypeOperator = "operator" // 运算符
	TypeFunction = "function" // 聚合函数调用
)

// ExprNode 表达式节点
type ExprNode struct {
	Type   string
	Value  string
	Number float64 // parsed value of a number node
	Left   *ExprNode
	Right  *ExprNode
	Args   []*ExprNode // 函数参数
}

// Call is one aggregate function call found in a formula
type Call struct {
	// Name is the function name as written
	Name string
	// Function is the normalised aggregate type
	Function types.AggregateType
	Args     []*ExprNode
}

// Column returns the argument name when the call has exactly one bare field argument
func (c Call) Column() (string, bool) {
	if len(c.Args) != 1 || c.Args[0].Type != TypeField {
		return "", false
	}
	return c.Args[0].Value, true
}

// Expression is a compiled formula
type Expression struct {
	Root   *ExprNode
	Source string
}

// Compile tokenizes and parses a formula.
// Anything outside the arithmetic grammar (strings, comparisons, unknown
// function names) is rejected.
func Compile(formula string) (*Expression, error) {
	tokens, err := tokenize(formula)
	if err != nil {
		return nil, fmt.Errorf("parse formula %q: %w", formula, err)
	}
	root, err := parseTokens(tokens)
	if err != nil {
		return nil, fmt.Errorf("parse formula %q: %w", formula, err)
	}
	return &Expression{Root: root, Source: formula}, nil
}

// MustCompile is like Compile but panics on error
func MustCompile(formula string) *Expression {
	e, err := Compile(formula)
	if err != nil {
		panic(err)
	}
	return e
}

// Fields returns the field references outside function calls, first-seen order
func (e *Expression) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	walk(e.Root, func(n *ExprNode) bool {
		if n.Type == TypeFunction {
			return false
		}
		if n.Type == TypeField && !seen[n.Value] {
			seen[n.Value] = true
			fields = append(fields, n.Value)
		}
		return true
	})
	return fields
}

// Calls returns every aggregate call in the formula, in source order
func (e *Expression) Calls() []Call {
	var calls []Call
	walk(e.Root, func(n *ExprNode) bool {
		if n.Type == TypeFunction {
			fn, _ := types.ParseAggregateType(n.Value)
			calls = append(calls, Call{Name: n.Value, Function: fn, Args: n.Args})
			return false
		}
		return true
	})
	return calls
}

// HasCalls reports whether the formula contains an aggregate call
func (e *Expression) HasCalls() bool {
	found := false
	walk(e.Root, func(n *ExprNode) bool {
		if n.Type == TypeFunction {
			found = true
		}
		return !found
	})
	return found
}

// String renders the formula in canonical form
func (e *Expression) String() string {
	return nodeToString(e.Root)
}

// RewriteAggregates returns a copy of e in which every FUNC(column) call is
// replaced by a reference to the flattened column "{column}_{function}".
// The flattened names are returned in first-seen order.
func RewriteAggregates(e *Expression) (*Expression, []string, error) {
	root := copyNode(e.Root)
	var refs []string
	seen := make(map[string]bool)
	var rewriteErr error

	var rewrite func(n *ExprNode) *ExprNode
	rewrite = func(n *ExprNode) *ExprNode {
		if n == nil || rewriteErr != nil {
			return n
		}
		if n.Type == TypeFunction {
			call := Call{Name: n.Value, Args: n.Args}
			call.Function, _ = types.ParseAggregateType(n.Value)
			column, ok := call.Column()
			if !ok {
				rewriteErr = fmt.Errorf("%s() expects a single column name", n.Value)
				return n
			}
			name := types.FlattenedName(column, call.Function)
			if !seen[name] {
				seen[name] = true
				refs = append(refs, name)
			}
			return &ExprNode{Type: TypeField, Value: name}
		}
		n.Left = rewrite(n.Left)
		n.Right = rewrite(n.Right)
		return n
	}

	root = rewrite(root)
	if rewriteErr != nil {
		return nil, nil, fmt.Errorf("rewrite formula %q: %w", e.Source, rewriteErr)
	}
	return &Expression{Root: root, Source: e.Source}, refs, nil
}

// walk visits nodes depth first, left to right. Returning false from fn skips
// the node's children.
func walk(n *ExprNode, fn func(*ExprNode) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	walk(n.Left, fn)
	walk(n.Right, fn)
	for _, arg := range n.Args {
		walk(arg, fn)
	}
}
