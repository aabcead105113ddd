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

package condition

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/rulego/dataquery/dataset"
	"github.com/rulego/dataquery/types"
)

// Condition is a compiled boolean expression
type Condition interface {
	Evaluate(env map[string]interface{}) (bool, error)
}

type ExprCondition struct {
	program *vm.Program
}

// NewExprCondition compiles an expr-lang boolean expression
func NewExprCondition(expression string) (Condition, error) {
	options := []expr.Option{
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	}
	program, err := expr.Compile(expression, options...)
	if err != nil {
		return nil, err
	}
	return &ExprCondition{program: program}, nil
}

func (ec *ExprCondition) Evaluate(env map[string]interface{}) (bool, error) {
	result, err := expr.Run(ec.program, env)
	if err != nil {
		return false, err
	}
	b, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("condition returned %T, want bool", result)
	}
	return b, nil
}

// 每个运算符对应的 expr-lang 表达式，v 为单元格值
var operatorExpressions = map[string]string{
	types.OpEq:      "v == arg",
	types.OpNe:      "v != arg",
	types.OpGt:      "v > arg",
	types.OpLt:      "v < arg",
	types.OpGte:     "v >= arg",
	types.OpLte:     "v <= arg",
	types.OpIn:      "v in arg",
	types.OpBetween: "v >= lo && v <= hi",
}

// compiled programs are immutable and shared by every Filter
var operatorConditions = func() map[string]Condition {
	m := make(map[string]Condition, len(operatorExpressions))
	for op, src := range operatorExpressions {
		c, err := NewExprCondition(src)
		if err != nil {
			panic(fmt.Sprintf("condition: compile %s: %v", op, err))
		}
		m[op] = c
	}
	return m
}()

// SupportedOperators lists the accepted filter operators
func SupportedOperators() []string {
	return []string{types.OpEq, types.OpNe, types.OpGt, types.OpLt, types.OpGte, types.OpLte, types.OpIn, types.OpBetween}
}

// Filter is one validated filter condition bound to a column
type Filter struct {
	column    dataset.Column
	operator  string
	condition Condition
	env       map[string]interface{}
}

// NewFilter validates fc against the table schema and prepares it for evaluation.
// The filter value is coerced to the column kind where possible.
func NewFilter(table *dataset.Table, fc types.FilterCondition) (*Filter, error) {
	col, ok := table.Column(fc.Column)
	if !ok {
		return nil, types.ErrUnknownColumn(fc.Column)
	}
	op := strings.ToLower(strings.TrimSpace(fc.Operator))
	cond, ok := operatorConditions[op]
	if !ok {
		return nil, types.NewError(types.ErrorTypeUnsupportedOperator, fc.Column,
			"unsupported operator '%s' on column '%s'", fc.Operator, fc.Column)
	}

	env := make(map[string]interface{}, 4)
	switch op {
	case types.OpIn:
		list, ok := toList(fc.Value)
		if !ok {
			return nil, types.NewError(types.ErrorTypeInvalidFilterValue, fc.Column,
				"operator 'in' on column '%s' requires a list value", fc.Column)
		}
		coerced := make([]interface{}, len(list))
		for i, v := range list {
			coerced[i] = coerceValue(v, col.Kind)
		}
		env["arg"] = coerced
	case types.OpBetween:
		list, ok := toList(fc.Value)
		if !ok || len(list) != 2 {
			return nil, types.NewError(types.ErrorTypeInvalidFilterValue, fc.Column,
				"operator 'between' on column '%s' requires exactly two values", fc.Column)
		}
		env["lo"] = coerceValue(list[0], col.Kind)
		env["hi"] = coerceValue(list[1], col.Kind)
	default:
		env["arg"] = coerceValue(fc.Value, col.Kind)
	}

	return &Filter{column: col, operator: op, condition: cond, env: env}, nil
}

// Column returns the filtered column name
func (f *Filter) Column() string {
	return f.column.Name
}

// Match evaluates the filter against one cell. Missing cells match only "ne".
// Filter is not safe for concurrent use.
func (f *Filter) Match(cell interface{}) (bool, error) {
	if dataset.IsMissing(cell) {
		return f.operator == types.OpNe, nil
	}
	f.env["v"] = cell
	ok, err := f.condition.Evaluate(f.env)
	if err != nil {
		return false, types.WrapError(types.ErrorTypeFilterEvaluation, f.column.Name, err,
			"cannot evaluate '%s' on %s column '%s'", f.operator, f.column.Kind, f.column.Name)
	}
	return ok, nil
}

// coerceValue converts a filter value to the column's representation. Text
// columns only take strings; a value that cannot be converted is returned as
// is so that ordering comparisons fail at evaluation time.
func coerceValue(v interface{}, kind dataset.Kind) interface{} {
	if kind == dataset.KindText {
		return v
	}
	c, err := dataset.Coerce(v, kind)
	if err != nil || c == nil {
		return v
	}
	return c
}

// toList converts any slice or array into []interface{}
func toList(v interface{}) ([]interface{}, bool) {
	if v == nil {
		return nil, false
	}
	if list, ok := v.([]interface{}); ok {
		return list, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
