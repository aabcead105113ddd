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
	"errors"
	"fmt"
)

// ErrAggregateCall is returned when a formula containing an aggregate call is
// evaluated directly. Rewrite it with RewriteAggregates first.
var ErrAggregateCall = errors.New("aggregate function call cannot be evaluated per row")

// Resolver looks up a field value. ok is false when the value is missing;
// err is non-nil when the field cannot be resolved at all.
type Resolver func(name string) (value float64, ok bool, err error)

// Evaluate computes the formula. ok is false when any operand was missing.
// Division follows IEEE semantics, x/0 is ±Inf and 0/0 is NaN.
func (e *Expression) Evaluate(resolve Resolver) (float64, bool, error) {
	return evaluateNode(e.Root, resolve)
}

// MapResolver resolves fields from a map of float64 values; absent keys are errors
func MapResolver(values map[string]float64) Resolver {
	return func(name string) (float64, bool, error) {
		v, exists := values[name]
		if !exists {
			return 0, false, fmt.Errorf("field '%s' not found", name)
		}
		return v, true, nil
	}
}

func evaluateNode(node *ExprNode, resolve Resolver) (float64, bool, error) {
	if node == nil {
		return 0, false, fmt.Errorf("null expression node")
	}

	switch node.Type {
	case TypeNumber:
		return node.Number, true, nil
	case TypeField:
		return resolve(node.Value)
	case TypeOperator:
		return evaluateOperatorNode(node, resolve)
	case TypeFunction:
		return 0, false, fmt.Errorf("%s(): %w", node.Value, ErrAggregateCall)
	default:
		return 0, false, fmt.Errorf("unknown node type: %s", node.Type)
	}
}

// evaluateOperatorNode evaluates both sides before checking for missing
// operands so that resolution errors on either side are reported
func evaluateOperatorNode(node *ExprNode, resolve Resolver) (float64, bool, error) {
	left, leftOK, err := evaluateNode(node.Left, resolve)
	if err != nil {
		return 0, false, err
	}
	right, rightOK, err := evaluateNode(node.Right, resolve)
	if err != nil {
		return 0, false, err
	}
	if !leftOK || !rightOK {
		return 0, false, nil
	}

	switch node.Value {
	case "+":
		return left + right, true, nil
	case "-":
		return left - right, true, nil
	case "*":
		return left * right, true, nil
	case "/":
		return left / right, true, nil
	default:
		return 0, false, fmt.Errorf("unknown operator: %s", node.Value)
	}
}
