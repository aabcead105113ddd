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

package measure

import (
	"github.com/rulego/dataquery/expr"
	"github.com/rulego/dataquery/types"
)

// Dependency is one raw aggregation an aggregate measure needs
type Dependency struct {
	Function types.AggregateType
	Column   string
}

// OutputName is the flattened column the aggregation produces
func (d Dependency) OutputName() string {
	return types.FlattenedName(d.Column, d.Function)
}

// Request converts the dependency into an aggregation request
func (d Dependency) Request() types.AggregationRequest {
	return types.AggregationRequest{Column: d.Column, Function: d.Function}
}

// ExtractDependencies returns every FUNC(column) pair of an aggregate formula,
// de-duplicated in first-seen order. "mean" is reported as avg.
func ExtractDependencies(formula string) ([]Dependency, error) {
	e, err := expr.Compile(formula)
	if err != nil {
		return nil, types.WrapError(types.ErrorTypeMalformedMeasureFormula, formula, err, "cannot parse formula '%s'", formula)
	}

	var deps []Dependency
	seen := make(map[Dependency]bool)
	for _, call := range e.Calls() {
		column, ok := call.Column()
		if !ok {
			return nil, types.NewError(types.ErrorTypeMalformedMeasureFormula, formula,
				"%s() in formula '%s' must take a single column name", call.Name, formula)
		}
		d := Dependency{Function: call.Function, Column: column}
		if !seen[d] {
			seen[d] = true
			deps = append(deps, d)
		}
	}
	return deps, nil
}

// ResolveMeasure is ExtractDependencies for a named measure; errors name the measure
func ResolveMeasure(m types.MeasureDefinition) ([]Dependency, error) {
	deps, err := ExtractDependencies(m.Formula)
	if err != nil {
		if qe, ok := err.(*types.QueryError); ok {
			qe.Column = m.Name
			qe.Message = "measure '" + m.Name + "': " + qe.Message
		}
		return nil, err
	}
	return deps, nil
}
